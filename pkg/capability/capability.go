// Package capability abstracts text-generation services behind a uniform
// client contract. Concrete clients wrap a provider SDK; Chain composes
// clients into a ranked fallback sequence with per-call timeouts and a
// single retry on transient failure.
package capability

import (
	"context"
	"errors"
)

// Sentinel errors for capability operations.
var (
	ErrUnavailable   = errors.New("no capability provider available")
	ErrEmptyResponse = errors.New("provider returned empty response")
)

// Params controls a single completion request. Zero values defer to the
// provider's configured defaults.
type Params struct {
	Temperature float64
	MaxTokens   int
}

// Client is a text-generation capability: one prompt in, one completion out.
type Client interface {
	// Name identifies the client for logging and error context.
	Name() string

	// Invoke sends a prompt and returns the raw completion text.
	Invoke(ctx context.Context, prompt string, params Params) (string, error)
}
