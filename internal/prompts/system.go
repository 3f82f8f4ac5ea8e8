package prompts

import "context"

// System defines the public contract for prompt material lookup.
// Instructions may be overridden per stage; specs are immutable because
// response parsing depends on them.
type System interface {
	Instructions(ctx context.Context, stage Stage) (string, error)
	Spec(ctx context.Context, stage Stage) (string, error)
}

type system struct {
	overrides map[Stage]string
}

// New creates a prompt System. Overrides replace the default instructions
// for the given stages; unknown stage keys are ignored at lookup time.
func New(overrides map[Stage]string) System {
	return &system{overrides: overrides}
}

func (s *system) Instructions(_ context.Context, stage Stage) (string, error) {
	if text, ok := s.overrides[stage]; ok && text != "" {
		return text, nil
	}
	return Instructions(stage)
}

func (s *system) Spec(_ context.Context, stage Stage) (string, error) {
	return Spec(stage)
}
