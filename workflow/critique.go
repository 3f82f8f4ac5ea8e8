package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/scribe/internal/prompts"
	"github.com/JaimeStill/scribe/pkg/capability"
	"github.com/JaimeStill/scribe/pkg/formatting"
)

var critiqueParams = capability.Params{Temperature: 0.2, MaxTokens: 768}

type critiqueResponse struct {
	OverallScore           float64            `json:"overall_score"`
	DimensionScores        map[string]float64 `json:"dimension_scores"`
	Strengths              []string           `json:"strengths"`
	Weaknesses             []string           `json:"weaknesses"`
	ImprovementSuggestions []string           `json:"improvement_suggestions"`
}

// CritiqueNode returns a state node that scores the current post across
// the fixed dimensions and appends the result to the critique history.
// The critique never fails the workflow: an unparseable response degrades
// to a score recovered from the prose, then to the configured neutral
// fallback. After scoring, the node routes the workflow: below the gate
// it refines; at or above the gate (or with the iteration budget spent)
// it suspends for human review when enabled, otherwise polishes.
func CritiqueNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ws, err := extractWorkflow(s)
		if err != nil {
			return s, fmt.Errorf("critique: %w", err)
		}

		if ws.CurrentPost == nil {
			return s, fmt.Errorf("%w: no post to critique", ErrCritiqueFailed)
		}

		ws.Phase = PhaseCritiquing

		critique, err := invokeCritique(ctx, rt, ws)
		if err != nil {
			return s, fmt.Errorf("critique: %w", err)
		}

		normalizeCritique(critique)
		ws.CritiqueHistory = append(ws.CritiqueHistory, *critique)
		ws.Phase = nextPhase(ws)

		rt.Logger.InfoContext(
			ctx, "critique node complete",
			"workflow", ws.ID,
			"iteration", ws.Iteration,
			"score", critique.OverallScore,
			"next_phase", ws.Phase,
		)

		s = s.Set(KeyWorkflowState, *ws)
		return s, nil
	})
}

func nextPhase(ws *WorkflowState) Phase {
	if !ws.GatePassed() {
		return PhaseRefining
	}
	if ws.ReviewEnabled {
		return PhaseAwaitingHuman
	}
	return PhasePolishing
}

func invokeCritique(ctx context.Context, rt *Runtime, ws *WorkflowState) (*CritiqueResult, error) {
	post, err := postSection(ws.CurrentPost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCritiqueFailed, err)
	}

	prompt, err := composePrompt(
		ctx, rt.Prompts, prompts.StageCritique,
		audienceSection(ws.Params),
		post,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCritiqueFailed, err)
	}

	raw, err := rt.Capability.Invoke(ctx, prompt, critiqueParams)
	ws.recordCall(err)
	if err != nil {
		return fallbackCritique(ctx, rt, ws, ""), nil
	}

	parsed, perr := formatting.Parse[critiqueResponse](raw)
	if perr == nil {
		return critiqueFromResponse(parsed), nil
	}

	retry, err := rt.Capability.Invoke(ctx, prompt+prompts.StrictFormat, critiqueParams)
	ws.recordCall(err)
	if err == nil {
		if parsed, perr = formatting.Parse[critiqueResponse](retry); perr == nil {
			return critiqueFromResponse(parsed), nil
		}
		raw = retry
	}

	return fallbackCritique(ctx, rt, ws, raw), nil
}

func critiqueFromResponse(resp critiqueResponse) *CritiqueResult {
	return &CritiqueResult{
		OverallScore:           resp.OverallScore,
		DimensionScores:        resp.DimensionScores,
		Strengths:              resp.Strengths,
		Weaknesses:             resp.Weaknesses,
		ImprovementSuggestions: resp.ImprovementSuggestions,
	}
}

// fallbackCritique builds a conservative critique when the capability
// produced no parseable scores. A score recovered from response prose
// wins over the configured neutral default.
func fallbackCritique(ctx context.Context, rt *Runtime, ws *WorkflowState, raw string) *CritiqueResult {
	score := rt.Options.FallbackScore
	origin := "neutral default"

	if raw != "" {
		if recovered, ok := formatting.ExtractScore(raw); ok {
			score = recovered
			origin = "recovered from prose"
		}
	}

	rt.Logger.WarnContext(
		ctx, "critique degraded to fallback score",
		"workflow", ws.ID,
		"iteration", ws.Iteration,
		"score", score,
		"origin", origin,
	)

	dims := make(map[string]float64, len(Dimensions))
	for _, dim := range Dimensions {
		dims[dim] = score
	}

	return &CritiqueResult{
		OverallScore:    score,
		DimensionScores: dims,
		ImprovementSuggestions: []string{
			"Structured critique was unavailable; review the post manually before publishing.",
		},
	}
}

// normalizeCritique clamps all scores to [0, 10] and keeps the overall
// score consistent with the dimension scores. Missing dimensions are
// backfilled from the overall score.
func normalizeCritique(c *CritiqueResult) {
	if len(c.DimensionScores) == 0 {
		c.OverallScore = formatting.ClampScore(c.OverallScore)
		c.DimensionScores = make(map[string]float64, len(Dimensions))
		for _, dim := range Dimensions {
			c.DimensionScores[dim] = c.OverallScore
		}
		return
	}

	var sum float64
	for dim, score := range c.DimensionScores {
		score = formatting.ClampScore(score)
		c.DimensionScores[dim] = score
		sum += score
	}
	c.OverallScore = sum / float64(len(c.DimensionScores))
}
