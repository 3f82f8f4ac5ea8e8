package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Start runs the generation workflow for one source content. It returns
// either a terminal WorkflowResult or, when human review is enabled and
// the quality gate opens, a PendingReview carrying the resumable state.
// An entry-invariant violation yields a failed result, not an error;
// errors are reserved for controller-level problems (graph construction,
// unexpected node failures).
func Start(
	ctx context.Context,
	rt *Runtime,
	source SourceContent,
	params GenerationParams,
	enableReview bool,
) (*Outcome, error) {
	if err := source.Validate(); err != nil {
		return failedOutcome(uuid.New(), err), nil
	}

	params.Normalize()
	rt.Options.normalize()

	ws := WorkflowState{
		ID:            uuid.New(),
		Source:        source,
		Params:        params,
		ReviewEnabled: enableReview,
		Phase:         PhaseGenerating,
	}

	return run(ctx, rt, ws, nodeGenerate)
}

// Resume continues a workflow suspended at AWAITING_HUMAN. Approval moves
// straight to polish; a regeneration request resets the iteration counter
// and critique history and generates fresh with the feedback as guidance;
// plain rejection feeds the feedback text directly into a refinement pass,
// skipping a redundant critique call. A resumed run re-enters the quality
// gate and may suspend again while review remains enabled.
func Resume(
	ctx context.Context,
	rt *Runtime,
	ws WorkflowState,
	feedback HumanFeedback,
) (*Outcome, error) {
	if ws.Phase != PhaseAwaitingHuman {
		return nil, fmt.Errorf("%w: phase %s", ErrNotSuspended, ws.Phase)
	}

	rt.Options.normalize()

	switch {
	case feedback.RequestsRegeneration:
		ws.CurrentPost = nil
		ws.CritiqueHistory = nil
		ws.Iteration = 0
		ws.Guidance = feedback.FeedbackText
		ws.Phase = PhaseGenerating
		return run(ctx, rt, ws, nodeGenerate)

	case feedback.Approved:
		ws.Phase = PhasePolishing
		return run(ctx, rt, ws, nodePolish)

	default:
		ws.Guidance = feedback.FeedbackText
		ws.Phase = PhaseRefining
		return run(ctx, rt, ws, nodeRefine)
	}
}

// Graph node names.
const (
	nodeGenerate = "generate"
	nodeCritique = "critique"
	nodeRefine   = "refine"
	nodePolish   = "polish"
)

func run(ctx context.Context, rt *Runtime, ws WorkflowState, entry string) (*Outcome, error) {
	graph, err := buildGraph(rt, entry)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyWorkflowState, ws)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	final, err := extractWorkflow(finalState)
	if err != nil {
		return nil, err
	}

	return outcome(final), nil
}

// buildGraph assembles the refinement state graph. The edge conditions
// read the phase set by the critique node, so every critique outcome has
// exactly one matching edge: below the gate the refine cycle continues;
// past the gate control reaches polish, which passes suspended runs
// through untouched. The entry point varies by invocation (generate for
// start and regeneration, refine for rejection feedback, polish for
// approval); the exit point is always polish.
func buildGraph(rt *Runtime, entry string) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("scribe-post")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode(nodeGenerate, GenerateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode(nodeCritique, CritiqueNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode(nodeRefine, RefineNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode(nodePolish, PolishNode(rt)); err != nil {
		return nil, err
	}

	// generate → critique (unconditional)
	if err := graph.AddEdge(nodeGenerate, nodeCritique, nil); err != nil {
		return nil, err
	}

	// critique → refine (gate closed: score below threshold, budget left)
	if err := graph.AddEdge(nodeCritique, nodeRefine, phaseIs(PhaseRefining)); err != nil {
		return nil, err
	}

	// critique → polish (gate open: finalize or suspend for review)
	if err := graph.AddEdge(nodeCritique, nodePolish, state.Not(phaseIs(PhaseRefining))); err != nil {
		return nil, err
	}

	// refine → critique (unconditional, closes the refinement cycle)
	if err := graph.AddEdge(nodeRefine, nodeCritique, nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint(entry); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint(nodePolish); err != nil {
		return nil, err
	}

	return graph, nil
}

func phaseIs(phase Phase) func(state.State) bool {
	return func(s state.State) bool {
		ws, err := extractWorkflow(s)
		if err != nil {
			return false
		}
		return ws.Phase == phase
	}
}

func extractWorkflow(s state.State) (*WorkflowState, error) {
	val, ok := s.Get(KeyWorkflowState)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyWorkflowState)
	}

	ws, ok := val.(WorkflowState)
	if !ok {
		return nil, fmt.Errorf("%s is not WorkflowState", KeyWorkflowState)
	}

	return &ws, nil
}

func outcome(ws *WorkflowState) *Outcome {
	// Total unreachability wins over suspension: a run in which every
	// capability call failed holds nothing but fallback output, and a
	// reviewer must never be asked to approve it.
	if ws.Unreachable() {
		return failedOutcome(ws.ID, ErrCapabilityUnavailable)
	}

	if ws.Phase == PhaseAwaitingHuman {
		return &Outcome{
			Pending: &PendingReview{
				DraftPost:      *ws.CurrentPost,
				LatestCritique: *ws.LatestCritique(),
				State:          *ws,
			},
		}
	}

	result := &WorkflowResult{
		ID:              ws.ID,
		Post:            *ws.CurrentPost,
		Iterations:      ws.Iteration,
		CritiqueHistory: ws.CritiqueHistory,
		Status:          StatusCompleted,
		CompletedAt:     time.Now(),
	}

	if latest := ws.LatestCritique(); latest != nil {
		result.QualityScore = latest.OverallScore
	}

	return &Outcome{Result: result}
}

func failedOutcome(id uuid.UUID, err error) *Outcome {
	return &Outcome{
		Result: &WorkflowResult{
			ID:          id,
			Status:      StatusFailed,
			Error:       err.Error(),
			CompletedAt: time.Now(),
		},
	}
}
