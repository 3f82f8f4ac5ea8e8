package workflow

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/scribe/internal/prompts"
	"github.com/JaimeStill/scribe/pkg/capability"
	"github.com/JaimeStill/scribe/pkg/formatting"
)

var draftParams = capability.Params{Temperature: 0.7, MaxTokens: 1024}

type postResponse struct {
	Title           string   `json:"title"`
	Hook            string   `json:"hook"`
	Content         string   `json:"content"`
	CallToAction    string   `json:"call_to_action"`
	Hashtags        []string `json:"hashtags"`
	EngagementScore float64  `json:"engagement_score"`
}

// GenerateNode returns a state node that produces the initial post from
// the source content. A parse failure triggers one stricter-format retry;
// a second failure synthesizes a minimal low-confidence post from the raw
// insights so the workflow never halts on a malformed response. On
// success the iteration counter starts at 1 and control moves to critique.
func GenerateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ws, err := extractWorkflow(s)
		if err != nil {
			return s, fmt.Errorf("generate: %w", err)
		}

		ws.Phase = PhaseGenerating

		prompt, err := composeGeneratePrompt(ctx, rt, ws)
		if err != nil {
			return s, fmt.Errorf("generate: %w", err)
		}

		post, err := invokePost(ctx, rt, ws, prompt)
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "generation degraded to fallback post",
				"workflow", ws.ID,
				"error", err,
			)
			post = fallbackPost(ws.Source)
		}

		repairPost(ctx, rt, ws, post)
		ws.CurrentPost = post
		ws.Guidance = ""
		ws.Iteration = 1
		ws.Phase = PhaseCritiquing

		rt.Logger.InfoContext(
			ctx, "generate node complete",
			"workflow", ws.ID,
			"title", post.Title,
			"engagement_score", post.EngagementScore,
		)

		s = s.Set(KeyWorkflowState, *ws)
		return s, nil
	})
}

func composeGeneratePrompt(ctx context.Context, rt *Runtime, ws *WorkflowState) (string, error) {
	source, err := sourceSection(ws.Source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	return composePrompt(
		ctx, rt.Prompts, prompts.StageGenerate,
		audienceSection(ws.Params),
		source,
		guidanceSection(ws.Guidance),
	)
}

// invokePost performs one capability call expecting a post-shaped JSON
// response. A parse failure earns exactly one retry with the strict
// format suffix; capability errors surface after the chain has exhausted
// its own retries and fallbacks.
func invokePost(
	ctx context.Context,
	rt *Runtime,
	ws *WorkflowState,
	prompt string,
) (*Post, error) {
	raw, err := rt.Capability.Invoke(ctx, prompt, draftParams)
	ws.recordCall(err)
	if err != nil {
		return nil, err
	}

	parsed, perr := formatting.Parse[postResponse](raw)
	if perr == nil {
		return postFromResponse(parsed), nil
	}

	raw, err = rt.Capability.Invoke(ctx, prompt+prompts.StrictFormat, draftParams)
	ws.recordCall(err)
	if err != nil {
		return nil, err
	}

	parsed, perr = formatting.Parse[postResponse](raw)
	if perr != nil {
		return nil, perr
	}

	return postFromResponse(parsed), nil
}

func postFromResponse(resp postResponse) *Post {
	return &Post{
		Title:           strings.TrimSpace(resp.Title),
		Hook:            strings.TrimSpace(resp.Hook),
		Content:         strings.TrimSpace(resp.Content),
		CallToAction:    strings.TrimSpace(resp.CallToAction),
		Hashtags:        resp.Hashtags,
		EngagementScore: formatting.ClampScore(resp.EngagementScore),
	}
}

// fallbackPost synthesizes a minimal valid post from the source material.
// EngagementScore 0 flags the post as low-confidence.
func fallbackPost(source SourceContent) *Post {
	title := "Key Takeaways"
	if len(source.Insights) > 0 {
		title = truncate(source.Insights[0], 80)
	} else if line := firstLine(source.RawText); line != "" {
		title = truncate(line, 80)
	}

	content := strings.Join(source.Insights, "\n\n")
	if content == "" {
		content = truncate(source.RawText, MaxContentLen)
	}

	return &Post{
		Title:           title,
		Hook:            "Here's something worth your attention today.",
		Content:         content,
		CallToAction:    "What's your take? Share your perspective in the comments.",
		Hashtags:        defaultHashtags[:MinHashtags],
		EngagementScore: 0,
	}
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(line)
}

// truncate cuts text to at most limit bytes, backing up to a rune
// boundary and then to the last space so no rune or word is split.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	cut := text[:limit]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut
}
