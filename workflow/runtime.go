package workflow

import (
	"log/slog"

	"github.com/JaimeStill/scribe/internal/prompts"
	"github.com/JaimeStill/scribe/pkg/capability"
)

// DefaultFallbackScore is the neutral critique score applied when the
// capability fails to produce parseable dimension scores.
const DefaultFallbackScore = 5.0

// Options tunes workflow-level policy, independent of a single
// invocation's GenerationParams.
type Options struct {
	// FallbackScore replaces an unparseable critique score. Zero or
	// negative selects DefaultFallbackScore.
	FallbackScore float64

	// Polish enables the optional tone-smoothing inference during the
	// polish phase. Deterministic normalization runs regardless.
	Polish bool
}

func (o *Options) normalize() {
	if o.FallbackScore <= 0 {
		o.FallbackScore = DefaultFallbackScore
	}
	if o.FallbackScore > 10 {
		o.FallbackScore = 10
	}
}

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems; the workflow itself performs no I/O beyond
// capability calls.
type Runtime struct {
	Capability capability.Client
	Prompts    prompts.System
	Logger     *slog.Logger
	Options    Options
}
