// Package posts implements the post generation domain for Scribe.
// It drives the workflow package on behalf of API callers, persists
// suspended reviews through the reviews store, and renders publish
// previews of finished posts.
package posts

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/scribe/workflow"
)

// GenerateCommand carries the data needed to start a generation workflow.
type GenerateCommand struct {
	Source       workflow.SourceContent    `json:"source"`
	Params       workflow.GenerationParams `json:"params"`
	EnableReview bool                      `json:"enable_review"`
}

// BatchCommand carries independent generation inputs processed
// concurrently. Batch runs never suspend for review.
type BatchCommand struct {
	Inputs []workflow.BatchInput `json:"inputs"`
}

// ResumeCommand carries reviewer feedback for a suspended workflow.
type ResumeCommand struct {
	Feedback workflow.HumanFeedback `json:"feedback"`
}

// PendingResponse is the API-facing view of a suspended workflow. The
// full resumable state stays server-side in the reviews store; callers
// hold only the review id.
type PendingResponse struct {
	ReviewID       uuid.UUID               `json:"review_id"`
	DraftPost      workflow.Post           `json:"draft_post"`
	LatestCritique workflow.CritiqueResult `json:"latest_critique"`
	ExpiresAt      time.Time               `json:"expires_at"`
}

// Outcome is the domain-level union of a workflow invocation: exactly
// one of Result or Pending is non-nil. PreviewHTML accompanies a
// completed result.
type Outcome struct {
	Result      *workflow.WorkflowResult `json:"result,omitempty"`
	Pending     *PendingResponse         `json:"pending,omitempty"`
	PreviewHTML string                   `json:"preview_html,omitempty"`
}
