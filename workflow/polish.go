package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/scribe/internal/prompts"
	"github.com/JaimeStill/scribe/pkg/capability"
	"github.com/JaimeStill/scribe/pkg/formatting"
)

var polishParams = capability.Params{Temperature: 0.3, MaxTokens: 1024}

// PolishNode returns the exit node of the workflow graph. Suspended runs
// (phase AWAITING_HUMAN) pass through untouched so the controller can
// hand the pending review back to the caller. Otherwise the node applies
// deterministic normalization (whitespace, hashtag bounds, content
// length) and, when enabled, a single tone-smoothing inference that must
// not alter factual content. No further critique pass runs; the workflow
// then completes.
func PolishNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ws, err := extractWorkflow(s)
		if err != nil {
			return s, fmt.Errorf("polish: %w", err)
		}

		if ws.Phase == PhaseAwaitingHuman {
			return s, nil
		}

		if ws.CurrentPost == nil {
			return s, fmt.Errorf("%w: no post to polish", ErrPolishFailed)
		}

		ws.Phase = PhasePolishing

		if rt.Options.Polish {
			smoothPost(ctx, rt, ws)
		}

		normalizePost(ctx, rt, ws)
		ws.Phase = PhaseCompleted

		rt.Logger.InfoContext(
			ctx, "polish node complete",
			"workflow", ws.ID,
			"iterations", ws.Iteration,
			"hashtags", len(ws.CurrentPost.Hashtags),
		)

		s = s.Set(KeyWorkflowState, *ws)
		return s, nil
	})
}

// smoothPost performs the optional polish inference. A single attempt;
// any capability or parse failure keeps the current post.
func smoothPost(ctx context.Context, rt *Runtime, ws *WorkflowState) {
	post, err := postSection(ws.CurrentPost)
	if err != nil {
		return
	}

	prompt, err := composePrompt(
		ctx, rt.Prompts, prompts.StagePolish,
		audienceSection(ws.Params),
		post,
	)
	if err != nil {
		return
	}

	raw, err := rt.Capability.Invoke(ctx, prompt, polishParams)
	ws.recordCall(err)
	if err != nil {
		rt.Logger.WarnContext(
			ctx, "polish inference skipped",
			"workflow", ws.ID,
			"error", err,
		)
		return
	}

	parsed, perr := formatting.Parse[postResponse](raw)
	if perr != nil {
		rt.Logger.WarnContext(
			ctx, "polish response unparseable, keeping current post",
			"workflow", ws.ID,
		)
		return
	}

	polished := postFromResponse(parsed)
	// Tone smoothing only: the hashtag set and self-estimate carry over.
	polished.Hashtags = ws.CurrentPost.Hashtags
	polished.EngagementScore = ws.CurrentPost.EngagementScore
	ws.CurrentPost = polished
}

// normalizePost applies the deterministic final cleanup: trimmed fields,
// hashtag bounds, and the content length ceiling. Under-length content is
// logged but not padded.
func normalizePost(ctx context.Context, rt *Runtime, ws *WorkflowState) {
	post := ws.CurrentPost

	post.Title = strings.TrimSpace(post.Title)
	post.Hook = strings.TrimSpace(post.Hook)
	post.Content = strings.TrimSpace(post.Content)
	post.CallToAction = strings.TrimSpace(post.CallToAction)

	repairPost(ctx, rt, ws, post)

	if len(post.Content) > MaxContentLen {
		post.Content = truncate(post.Content, MaxContentLen)
		logRepair(ctx, rt, ws, "content", "truncated content to upper bound")
	}
	if len(post.Content) < MinContentLen {
		rt.Logger.WarnContext(
			ctx, "post content below target length",
			"workflow", ws.ID,
			"length", len(post.Content),
		)
	}
}
