// Package workflow implements the post generation workflow for Scribe.
// It provides the shared data model, prompt composition, response parsing
// fallbacks, and the bounded refinement state graph
// (generate → critique ⇄ refine → polish) with an optional human review
// suspension between the quality gate and the final polish.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrInvalidSource         = errors.New("source content requires raw text or insights")
	ErrGenerateFailed        = errors.New("generation failed")
	ErrCritiqueFailed        = errors.New("critique failed")
	ErrRefineFailed          = errors.New("refinement failed")
	ErrPolishFailed          = errors.New("polish failed")
	ErrNotSuspended          = errors.New("workflow is not awaiting human review")
	ErrCapabilityUnavailable = errors.New("capability unreachable in every phase")
)
