package workflow

import (
	"context"
	"strings"
)

// defaultHashtags pads an under-populated hashtag list. Generic by
// intent; source-specific tags always rank ahead of these.
var defaultHashtags = []string{
	"#Insights",
	"#Innovation",
	"#Technology",
	"#Leadership",
	"#ProfessionalGrowth",
	"#Business",
	"#Strategy",
	"#IndustryTrends",
}

// repairPost enforces the post invariants in place after a successful
// parse: non-empty string fields and hashtag count within bounds. Every
// correction is logged; nothing is silently dropped.
func repairPost(ctx context.Context, rt *Runtime, ws *WorkflowState, post *Post) {
	if post.Title == "" {
		post.Title = "Key Takeaways"
		logRepair(ctx, rt, ws, "title", "filled empty title")
	}
	if post.Hook == "" {
		post.Hook = "Here's something worth your attention today."
		logRepair(ctx, rt, ws, "hook", "filled empty hook")
	}
	if post.Content == "" {
		post.Content = post.Hook
		logRepair(ctx, rt, ws, "content", "filled empty content from hook")
	}
	if post.CallToAction == "" {
		post.CallToAction = "What's your take? Share your perspective in the comments."
		logRepair(ctx, rt, ws, "call_to_action", "filled empty call to action")
	}

	post.Hashtags = repairHashtags(ctx, rt, ws, post.Hashtags)
}

// repairHashtags normalizes hashtag entries ("#" prefix, no blanks, no
// duplicates) and repairs count violations by truncation or padding from
// the default pool.
func repairHashtags(ctx context.Context, rt *Runtime, ws *WorkflowState, tags []string) []string {
	cleaned := make([]string, 0, MaxHashtags)
	seen := make(map[string]bool)

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "#" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, tag)
	}

	if len(cleaned) > MaxHashtags {
		logRepair(ctx, rt, ws, "hashtags", "truncated hashtags to upper bound")
		cleaned = cleaned[:MaxHashtags]
	}

	if len(cleaned) < MinHashtags {
		logRepair(ctx, rt, ws, "hashtags", "padded hashtags to lower bound")
		for _, tag := range defaultHashtags {
			if len(cleaned) >= MinHashtags {
				break
			}
			if seen[strings.ToLower(tag)] {
				continue
			}
			seen[strings.ToLower(tag)] = true
			cleaned = append(cleaned, tag)
		}
	}

	return cleaned
}

func logRepair(ctx context.Context, rt *Runtime, ws *WorkflowState, field, action string) {
	rt.Logger.WarnContext(
		ctx, "post invariant repaired",
		"workflow", ws.ID,
		"field", field,
		"action", action,
	)
}
