package posts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/scribe/workflow"
)

// System defines the public contract for post domain operations.
type System interface {
	Handler() *Handler

	Generate(ctx context.Context, cmd GenerateCommand) (*Outcome, error)
	GenerateBatch(ctx context.Context, cmd BatchCommand) ([]*workflow.WorkflowResult, error)
	Pending(ctx context.Context, id uuid.UUID) (*PendingResponse, error)
	Resume(ctx context.Context, id uuid.UUID, cmd ResumeCommand) (*Outcome, error)
}
