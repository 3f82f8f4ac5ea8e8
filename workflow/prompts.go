package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/scribe/internal/prompts"
)

var kindHints = map[ContentKind]string{
	KindDocument:  "The source is a document; anchor the post in its key findings.",
	KindCode:      "The source is source code; surface the engineering insight in terms a non-author can follow.",
	KindImage:     "The source is image analysis; lead with the visual's takeaway.",
	KindText:      "The source is plain text; stay close to its original framing.",
	KindAggregate: "The source aggregates multiple items; synthesize one coherent narrative rather than listing them.",
}

// composePrompt builds a stage prompt from tunable instructions, the
// immutable response-format spec, and stage-specific context sections.
func composePrompt(
	ctx context.Context,
	ps prompts.System,
	stage prompts.Stage,
	sections ...string,
) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	for _, section := range sections {
		if section == "" {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(section)
	}

	return sb.String(), nil
}

func audienceSection(params GenerationParams) string {
	return fmt.Sprintf(
		"Target audience: %s\nTone: %s",
		params.TargetAudience,
		params.Tone,
	)
}

func sourceSection(source SourceContent) (string, error) {
	data, err := json.MarshalIndent(source, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize source content: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Source material:\n\n")
	sb.Write(data)

	if hint, ok := kindHints[source.Kind]; ok {
		sb.WriteString("\n\n")
		sb.WriteString(hint)
	}

	return sb.String(), nil
}

func postSection(post *Post) (string, error) {
	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize post: %w", err)
	}
	return "Current post:\n\n" + string(data), nil
}

func critiqueSection(critique *CritiqueResult) (string, error) {
	data, err := json.MarshalIndent(critique, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize critique: %w", err)
	}
	return "Editorial critique to apply:\n\n" + string(data), nil
}

func guidanceSection(guidance string) string {
	if guidance == "" {
		return ""
	}
	return "Additional guidance from the reviewer:\n\n" + guidance
}
