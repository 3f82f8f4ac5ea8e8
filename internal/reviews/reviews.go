// Package reviews implements the pending-review persistence port.
// The workflow controller performs no I/O; suspended WorkflowStates are
// persisted here by the posts domain at suspension and resume boundaries.
package reviews

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/scribe/workflow"
)

// PendingRecord is one suspended workflow awaiting human feedback.
type PendingRecord struct {
	ID        uuid.UUID              `json:"id"`
	Review    workflow.PendingReview `json:"review"`
	CreatedAt time.Time              `json:"created_at"`
	ExpiresAt time.Time              `json:"expires_at"`
}

// Expired reports whether the record's review window has closed.
func (r *PendingRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Store is the persistence contract for pending reviews. Implementations
// must round-trip the embedded WorkflowState exactly; resumption depends
// on it.
type Store interface {
	Save(ctx context.Context, record *PendingRecord) error
	Load(ctx context.Context, id uuid.UUID) (*PendingRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
