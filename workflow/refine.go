package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/scribe/internal/prompts"
)

// RefineNode returns a state node that rewrites the current post
// according to the latest critique. Refinement is corrective: the prompt
// carries the prior post verbatim, every improvement suggestion must be
// applied, and listed strengths must survive. An unparseable response
// keeps the prior post unchanged, a non-productive iteration rather
// than corrupted state. The iteration counter advances either way and
// control returns to critique.
func RefineNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ws, err := extractWorkflow(s)
		if err != nil {
			return s, fmt.Errorf("refine: %w", err)
		}

		if ws.CurrentPost == nil {
			return s, fmt.Errorf("%w: no post to refine", ErrRefineFailed)
		}

		ws.Phase = PhaseRefining

		critique := refineInput(ws)
		if critique == nil {
			return s, fmt.Errorf("%w: no critique to apply", ErrRefineFailed)
		}

		prompt, err := composeRefinePrompt(ctx, rt, ws, critique)
		if err != nil {
			return s, fmt.Errorf("refine: %w", err)
		}

		post, err := invokePost(ctx, rt, ws, prompt)
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "refinement non-productive, keeping prior post",
				"workflow", ws.ID,
				"iteration", ws.Iteration,
				"error", err,
			)
			post = ws.CurrentPost
		} else {
			repairPost(ctx, rt, ws, post)
		}

		ws.CurrentPost = post
		ws.Iteration++
		ws.Phase = PhaseCritiquing

		rt.Logger.InfoContext(
			ctx, "refine node complete",
			"workflow", ws.ID,
			"iteration", ws.Iteration,
		)

		s = s.Set(KeyWorkflowState, *ws)
		return s, nil
	})
}

// refineInput selects the critique driving this refinement pass.
// Reviewer guidance supplied on resume acts as a critique-equivalent and
// is consumed here, skipping a redundant critique call; otherwise the
// latest history entry applies.
func refineInput(ws *WorkflowState) *CritiqueResult {
	if ws.Guidance != "" {
		critique := critiqueFromFeedback(ws.Guidance, ws.Params.QualityThreshold)
		ws.Guidance = ""
		return critique
	}
	return ws.LatestCritique()
}

// critiqueFromFeedback wraps reviewer feedback text as a synthetic
// critique. It never enters the history; the next real critique pass
// produces the recorded score.
func critiqueFromFeedback(feedback string, threshold float64) *CritiqueResult {
	return &CritiqueResult{
		OverallScore:           threshold,
		Weaknesses:             []string{"Rejected by human reviewer."},
		ImprovementSuggestions: []string{feedback},
	}
}

func composeRefinePrompt(
	ctx context.Context,
	rt *Runtime,
	ws *WorkflowState,
	critique *CritiqueResult,
) (string, error) {
	post, err := postSection(ws.CurrentPost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefineFailed, err)
	}

	feedback, err := critiqueSection(critique)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefineFailed, err)
	}

	return composePrompt(
		ctx, rt.Prompts, prompts.StageRefine,
		audienceSection(ws.Params),
		post,
		feedback,
	)
}
