package workflow

import (
	"time"

	"github.com/google/uuid"
)

// KeyWorkflowState is the state-bag key under which the running
// WorkflowState is stored between graph nodes.
const KeyWorkflowState = "workflow_state"

// ContentKind describes what the source material was extracted from.
// It informs tone defaults during prompt composition.
type ContentKind string

// Valid content kinds.
const (
	KindDocument  ContentKind = "document"
	KindCode      ContentKind = "code"
	KindImage     ContentKind = "image"
	KindText      ContentKind = "text"
	KindAggregate ContentKind = "aggregate"
)

// SourceContent is the normalized input produced by the ingestion pipeline.
// Immutable once constructed; at least one of RawText or Insights must be
// populated.
type SourceContent struct {
	RawText  string      `json:"raw_text"`
	Insights []string    `json:"insights"`
	Kind     ContentKind `json:"content_kind"`
}

// Validate enforces the entry invariant: raw text or insights present.
func (s *SourceContent) Validate() error {
	if s.RawText == "" && len(s.Insights) == 0 {
		return ErrInvalidSource
	}
	return nil
}

// Default generation parameters.
const (
	DefaultAudience         = "general professional audience"
	DefaultTone             = "professional and engaging"
	DefaultMaxIterations    = 3
	DefaultQualityThreshold = 8.0
)

// GenerationParams tunes a single workflow invocation.
type GenerationParams struct {
	TargetAudience   string  `json:"target_audience"`
	Tone             string  `json:"tone"`
	MaxIterations    int     `json:"max_iterations"`
	QualityThreshold float64 `json:"quality_threshold"`
}

// Normalize applies defaults to zero-valued fields and bounds the
// quality threshold to the [0, 10] scoring scale.
func (p *GenerationParams) Normalize() {
	if p.TargetAudience == "" {
		p.TargetAudience = DefaultAudience
	}
	if p.Tone == "" {
		p.Tone = DefaultTone
	}
	if p.MaxIterations < 1 {
		p.MaxIterations = DefaultMaxIterations
	}
	if p.QualityThreshold < 0 {
		p.QualityThreshold = 0
	}
	if p.QualityThreshold > 10 {
		p.QualityThreshold = 10
	}
}

// Structural bounds for a publishable post.
const (
	MinHashtags   = 5
	MaxHashtags   = 8
	MinContentLen = 150
	MaxContentLen = 1300
)

// Post is one immutable snapshot of the generated post. Each iteration
// produces a new snapshot; the workflow never edits one in place.
type Post struct {
	Title           string   `json:"title"`
	Hook            string   `json:"hook"`
	Content         string   `json:"content"`
	CallToAction    string   `json:"call_to_action"`
	Hashtags        []string `json:"hashtags"`
	EngagementScore float64  `json:"engagement_score"`
}

// Dimensions are the fixed critique scoring dimensions.
var Dimensions = []string{
	"clarity",
	"engagement",
	"professionalism",
	"platform_optimization",
	"value",
}

// CritiqueResult is one iteration's quality assessment, produced once per
// critique pass and never modified afterward.
type CritiqueResult struct {
	OverallScore           float64            `json:"overall_score"`
	DimensionScores        map[string]float64 `json:"dimension_scores"`
	Strengths              []string           `json:"strengths"`
	Weaknesses             []string           `json:"weaknesses"`
	ImprovementSuggestions []string           `json:"improvement_suggestions"`
}

// Phase identifies where a workflow invocation currently is.
type Phase string

// Workflow phases.
const (
	PhaseGenerating    Phase = "GENERATING"
	PhaseCritiquing    Phase = "CRITIQUING"
	PhaseRefining      Phase = "REFINING"
	PhaseAwaitingHuman Phase = "AWAITING_HUMAN"
	PhasePolishing     Phase = "POLISHING"
	PhaseCompleted     Phase = "COMPLETED"
	PhaseFailed        Phase = "FAILED"
)

// HumanFeedback is the reviewer's verdict supplied when resuming a
// suspended workflow.
type HumanFeedback struct {
	Approved             bool   `json:"approved"`
	FeedbackText         string `json:"feedback_text"`
	RequestsRegeneration bool   `json:"requests_regeneration"`
}

// WorkflowState is the single mutable aggregate of a workflow invocation.
// It is owned exclusively by the controller, mutated only as phases
// complete, and round-trips through JSON so a suspended invocation can be
// resumed from another process.
type WorkflowState struct {
	ID              uuid.UUID        `json:"id"`
	Source          SourceContent    `json:"source"`
	Params          GenerationParams `json:"params"`
	ReviewEnabled   bool             `json:"review_enabled"`
	CurrentPost     *Post            `json:"current_post"`
	CritiqueHistory []CritiqueResult `json:"critique_history"`
	Iteration       int              `json:"iteration"`
	Phase           Phase            `json:"phase"`

	// Guidance carries reviewer feedback text into the next generate or
	// refine pass. Cleared once consumed.
	Guidance string `json:"guidance,omitempty"`

	// Capability call accounting across the whole invocation. A run in
	// which every call failed is reported as unreachable rather than
	// degraded.
	CapabilityCalls    int `json:"capability_calls"`
	CapabilityFailures int `json:"capability_failures"`
}

// LatestCritique returns the most recent critique, or nil before the
// first critique pass completes.
func (w *WorkflowState) LatestCritique() *CritiqueResult {
	if len(w.CritiqueHistory) == 0 {
		return nil
	}
	return &w.CritiqueHistory[len(w.CritiqueHistory)-1]
}

// GatePassed reports whether the quality gate releases the post: the
// latest score meets the threshold, or the iteration budget is spent.
// Threshold comparison uses >= so a post scoring exactly the threshold
// passes.
func (w *WorkflowState) GatePassed() bool {
	latest := w.LatestCritique()
	if latest == nil {
		return false
	}
	return latest.OverallScore >= w.Params.QualityThreshold ||
		w.Iteration >= w.Params.MaxIterations
}

// Terminal reports whether the state is final and immutable.
func (w *WorkflowState) Terminal() bool {
	return w.Phase == PhaseCompleted || w.Phase == PhaseFailed
}

// Unreachable reports whether every capability call in the invocation
// failed.
func (w *WorkflowState) Unreachable() bool {
	return w.CapabilityCalls > 0 && w.CapabilityFailures == w.CapabilityCalls
}

func (w *WorkflowState) recordCall(err error) {
	w.CapabilityCalls++
	if err != nil {
		w.CapabilityFailures++
	}
}

// Workflow result statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// WorkflowResult is the terminal output of a workflow invocation: the
// finished post plus its decision trail.
type WorkflowResult struct {
	ID              uuid.UUID        `json:"id"`
	Post            Post             `json:"post"`
	QualityScore    float64          `json:"quality_score"`
	Iterations      int              `json:"iterations"`
	CritiqueHistory []CritiqueResult `json:"critique_history"`
	Status          string           `json:"status"`
	Error           string           `json:"error,omitempty"`
	CompletedAt     time.Time        `json:"completed_at"`
}

// PendingReview is returned when the workflow suspends for human review.
// State is the full resumable WorkflowState; the caller persists it and
// supplies it back to Resume together with the reviewer's feedback.
type PendingReview struct {
	DraftPost      Post           `json:"draft_post"`
	LatestCritique CritiqueResult `json:"latest_critique"`
	State          WorkflowState  `json:"resumable_state"`
}

// Outcome is the union returned by Start and Resume: exactly one of
// Result or Pending is non-nil.
type Outcome struct {
	Result  *WorkflowResult `json:"result,omitempty"`
	Pending *PendingReview  `json:"pending,omitempty"`
}
