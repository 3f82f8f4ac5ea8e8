// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, lifecycle, capability providers) that
// domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/pkg/capability"
	"github.com/JaimeStill/scribe/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, and the ranked capability provider chain.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Capability capability.Client
}

// New creates an Infrastructure from the application configuration.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	chain, err := buildCapability(&cfg.Capability, logger)
	if err != nil {
		return nil, fmt.Errorf("capability init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle:  lc,
		Logger:     logger,
		Capability: chain,
	}, nil
}

// buildCapability assembles the ranked provider chain: the required primary
// agent, then the fallback agent and OpenAI provider when configured.
func buildCapability(cfg *config.CapabilityConfig, logger *slog.Logger) (capability.Client, error) {
	clients := []capability.Client{
		capability.NewAgentClient(cfg.Primary.AgentConfig()),
	}

	if cfg.Fallback.Configured() {
		clients = append(clients, capability.NewAgentClient(cfg.Fallback.AgentConfig()))
	}

	if cfg.OpenAI.Configured() {
		client, err := capability.NewOpenAIClient(
			cfg.OpenAI.Model,
			cfg.OpenAI.APIKey,
			cfg.OpenAI.BaseURL,
		)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return capability.NewChain(clients, cfg.TimeoutDuration(), logger)
}
