package posts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/scribe/internal/reviews"
	"github.com/JaimeStill/scribe/workflow"
)

type service struct {
	rt     *workflow.Runtime
	store  reviews.Store
	logger *slog.Logger
}

// New creates the posts System from a workflow runtime and a pending
// review store.
func New(rt *workflow.Runtime, store reviews.Store, logger *slog.Logger) System {
	return &service{
		rt:     rt,
		store:  store,
		logger: logger.With("system", "posts"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Generate(ctx context.Context, cmd GenerateCommand) (*Outcome, error) {
	out, err := workflow.Start(ctx, s.rt, cmd.Source, cmd.Params, cmd.EnableReview)
	if err != nil {
		return nil, fmt.Errorf("start workflow: %w", err)
	}

	return s.resolve(ctx, out)
}

func (s *service) GenerateBatch(ctx context.Context, cmd BatchCommand) ([]*workflow.WorkflowResult, error) {
	if len(cmd.Inputs) == 0 {
		return nil, ErrEmptyBatch
	}

	results, err := workflow.Batch(ctx, s.rt, cmd.Inputs)
	if err != nil {
		return nil, fmt.Errorf("batch workflow: %w", err)
	}

	return results, nil
}

func (s *service) Pending(ctx context.Context, id uuid.UUID) (*PendingResponse, error) {
	record, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	return pendingResponse(record), nil
}

func (s *service) Resume(ctx context.Context, id uuid.UUID, cmd ResumeCommand) (*Outcome, error) {
	record, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := workflow.Resume(ctx, s.rt, record.Review.State, cmd.Feedback)
	if err != nil {
		return nil, fmt.Errorf("resume workflow: %w", err)
	}

	// The suspended record is consumed either way: a terminal outcome
	// retires it, and a re-suspension saves a fresh record under the
	// same workflow id.
	if out.Pending == nil {
		if err := s.store.Delete(ctx, id); err != nil {
			s.logger.Warn("failed to retire pending review", "review", id, "error", err)
		}
	}

	return s.resolve(ctx, out)
}

// resolve maps a workflow outcome to the domain outcome, persisting a
// suspension and rendering the preview for a completed post.
func (s *service) resolve(ctx context.Context, out *workflow.Outcome) (*Outcome, error) {
	if out.Pending != nil {
		record := &reviews.PendingRecord{
			ID:     out.Pending.State.ID,
			Review: *out.Pending,
		}
		if err := s.store.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("persist pending review: %w", err)
		}

		s.logger.InfoContext(
			ctx, "workflow suspended for review",
			"review", record.ID,
			"expires_at", record.ExpiresAt,
		)

		return &Outcome{Pending: pendingResponse(record)}, nil
	}

	result := &Outcome{Result: out.Result}

	if out.Result.Status == workflow.StatusCompleted {
		html, err := Preview(out.Result.Post)
		if err != nil {
			s.logger.Warn("preview rendering failed", "workflow", out.Result.ID, "error", err)
		} else {
			result.PreviewHTML = html
		}
	}

	return result, nil
}

func pendingResponse(record *reviews.PendingRecord) *PendingResponse {
	return &PendingResponse{
		ReviewID:       record.ID,
		DraftPost:      record.Review.DraftPost,
		LatestCritique: record.Review.LatestCritique,
		ExpiresAt:      record.ExpiresAt,
	}
}
