package config

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvCapabilityTimeout = "SCRIBE_CAPABILITY_TIMEOUT"

	EnvAgentProvider = "SCRIBE_AGENT_PROVIDER"
	EnvAgentBaseURL  = "SCRIBE_AGENT_BASE_URL"
	EnvAgentModel    = "SCRIBE_AGENT_MODEL"
	EnvAgentToken    = "SCRIBE_AGENT_TOKEN"

	EnvFallbackProvider = "SCRIBE_FALLBACK_PROVIDER"
	EnvFallbackBaseURL  = "SCRIBE_FALLBACK_BASE_URL"
	EnvFallbackModel    = "SCRIBE_FALLBACK_MODEL"
	EnvFallbackToken    = "SCRIBE_FALLBACK_TOKEN"

	EnvOpenAIModel   = "SCRIBE_OPENAI_MODEL"
	EnvOpenAIAPIKey  = "SCRIBE_OPENAI_API_KEY"
	EnvOpenAIBaseURL = "SCRIBE_OPENAI_BASE_URL"
)

// ProviderConfig describes one go-agents-backed capability provider.
type ProviderConfig struct {
	Name     string `toml:"name"`
	Provider string `toml:"provider"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
	Token    string `toml:"token"`
}

// Configured reports whether the provider has enough fields to build an
// agent.
func (c *ProviderConfig) Configured() bool {
	return c.Provider != "" && c.Model != ""
}

// AgentConfig applies Scribe's three-phase finalize pattern to a go-agents
// AgentConfig: defaults from go-agents DefaultAgentConfig, then the
// provider fields layered on top.
func (c *ProviderConfig) AgentConfig() gaconfig.AgentConfig {
	cfg := gaconfig.DefaultAgentConfig()

	cfg.Name = c.Name
	if cfg.Provider == nil {
		cfg.Provider = &gaconfig.ProviderConfig{}
	}
	if cfg.Provider.Options == nil {
		cfg.Provider.Options = make(map[string]any)
	}
	if cfg.Model == nil {
		cfg.Model = &gaconfig.ModelConfig{}
	}

	cfg.Provider.Name = c.Provider
	cfg.Provider.BaseURL = c.BaseURL
	cfg.Model.Name = c.Model
	if c.Token != "" {
		cfg.Provider.Options["token"] = c.Token
	}

	return cfg
}

// OpenAIConfig describes the optional OpenAI-backed capability provider.
// Active only when an API key is supplied.
type OpenAIConfig struct {
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Configured reports whether the OpenAI provider should join the chain.
func (c *OpenAIConfig) Configured() bool {
	return c.APIKey != "" && c.Model != ""
}

// CapabilityConfig holds the ranked capability provider settings: a
// required primary, an optional fallback, an optional OpenAI tail, and
// the per-call timeout applied by the chain.
type CapabilityConfig struct {
	Timeout  string         `toml:"timeout"`
	Primary  ProviderConfig `toml:"primary"`
	Fallback ProviderConfig `toml:"fallback"`
	OpenAI   OpenAIConfig   `toml:"openai"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *CapabilityConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CapabilityConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CapabilityConfig) Merge(overlay *CapabilityConfig) {
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	c.Primary.merge(&overlay.Primary)
	c.Fallback.merge(&overlay.Fallback)

	if overlay.OpenAI.Model != "" {
		c.OpenAI.Model = overlay.OpenAI.Model
	}
	if overlay.OpenAI.APIKey != "" {
		c.OpenAI.APIKey = overlay.OpenAI.APIKey
	}
	if overlay.OpenAI.BaseURL != "" {
		c.OpenAI.BaseURL = overlay.OpenAI.BaseURL
	}
}

func (p *ProviderConfig) merge(overlay *ProviderConfig) {
	if overlay.Name != "" {
		p.Name = overlay.Name
	}
	if overlay.Provider != "" {
		p.Provider = overlay.Provider
	}
	if overlay.BaseURL != "" {
		p.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		p.Model = overlay.Model
	}
	if overlay.Token != "" {
		p.Token = overlay.Token
	}
}

func (c *CapabilityConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if c.Primary.Name == "" {
		c.Primary.Name = "scribe-primary"
	}
	if c.Primary.Provider == "" {
		c.Primary.Provider = "ollama"
	}
	if c.Primary.Model == "" {
		c.Primary.Model = "llama3.2"
	}
	if c.Fallback.Name == "" {
		c.Fallback.Name = "scribe-fallback"
	}
}

func (c *CapabilityConfig) loadEnv() {
	if v := os.Getenv(EnvCapabilityTimeout); v != "" {
		c.Timeout = v
	}

	if v := os.Getenv(EnvAgentProvider); v != "" {
		c.Primary.Provider = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Primary.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModel); v != "" {
		c.Primary.Model = v
	}
	if v := os.Getenv(EnvAgentToken); v != "" {
		c.Primary.Token = v
	}

	if v := os.Getenv(EnvFallbackProvider); v != "" {
		c.Fallback.Provider = v
	}
	if v := os.Getenv(EnvFallbackBaseURL); v != "" {
		c.Fallback.BaseURL = v
	}
	if v := os.Getenv(EnvFallbackModel); v != "" {
		c.Fallback.Model = v
	}
	if v := os.Getenv(EnvFallbackToken); v != "" {
		c.Fallback.Token = v
	}

	if v := os.Getenv(EnvOpenAIModel); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(EnvOpenAIBaseURL); v != "" {
		c.OpenAI.BaseURL = v
	}
}

func (c *CapabilityConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if !c.Primary.Configured() {
		return fmt.Errorf("primary provider requires provider and model")
	}
	return nil
}
