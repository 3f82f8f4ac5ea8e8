package capability

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// AgentClient implements Client on top of a go-agents Chat agent.
// Sampling parameters (temperature, token limits) are owned by the
// AgentConfig; Params passed to Invoke are advisory for this client.
type AgentClient struct {
	cfg gaconfig.AgentConfig
}

// NewAgentClient creates an AgentClient from a finalized agent configuration.
func NewAgentClient(cfg gaconfig.AgentConfig) *AgentClient {
	return &AgentClient{cfg: cfg}
}

// Name returns the configured agent name.
func (c *AgentClient) Name() string {
	return c.cfg.Name
}

// Invoke creates an agent per call (agents are cheap, connection state lives
// in the provider) and performs a single Chat inference.
func (c *AgentClient) Invoke(ctx context.Context, prompt string, _ Params) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent %s: %w", c.cfg.Name, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	content := strings.TrimSpace(resp.Content())
	if content == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}
