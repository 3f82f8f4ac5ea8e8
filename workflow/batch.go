package workflow

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchInput is one independent workflow invocation within a batch.
type BatchInput struct {
	Source SourceContent    `json:"source"`
	Params GenerationParams `json:"params"`
}

// Batch processes independent source contents concurrently with bounded
// workers. Each input gets its own workflow instance and WorkflowState;
// nothing is shared between instances. Human review is not available in
// batch mode, since a batch cannot suspend, so every slot resolves to a
// terminal result, including per-input entry-invariant failures.
func Batch(ctx context.Context, rt *Runtime, inputs []BatchInput) ([]*WorkflowResult, error) {
	results := make([]*WorkflowResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(inputs)))

	for i, input := range inputs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			out, err := Start(gctx, rt, input.Source, input.Params, false)
			if err != nil {
				return fmt.Errorf("input %d: %w", i+1, err)
			}

			results[i] = out.Result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func workerCount(n int) int {
	return max(min(runtime.NumCPU(), n), 1)
}
