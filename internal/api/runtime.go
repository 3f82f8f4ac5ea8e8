package api

import (
	"time"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/internal/infrastructure"
	"github.com/JaimeStill/scribe/internal/prompts"
	"github.com/JaimeStill/scribe/workflow"
)

// Runtime extends Infrastructure with API-specific configuration and the
// assembled workflow runtime shared by domain systems.
type Runtime struct {
	*infrastructure.Infrastructure
	Workflow  *workflow.Runtime
	ReviewTTL time.Duration
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:  infra.Lifecycle,
			Logger:     logger,
			Capability: infra.Capability,
		},
		Workflow: &workflow.Runtime{
			Capability: infra.Capability,
			Prompts:    prompts.New(cfg.Workflow.StageInstructions()),
			Logger:     logger,
			Options: workflow.Options{
				FallbackScore: cfg.Workflow.FallbackScore,
				Polish:        cfg.Workflow.Polish,
			},
		},
		ReviewTTL: cfg.Workflow.ReviewTTLDuration(),
	}
}
