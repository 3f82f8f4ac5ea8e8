package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/internal/prompts"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.2.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "10m"
shutdown_timeout = "30s"

[api]
base_path = "/api"

[api.cors]
enabled = false

[capability]
timeout = "90s"

[capability.primary]
name = "test-agent"
provider = "ollama"
base_url = "http://localhost:11434"
model = "llama3.1:8b"

[workflow]
fallback_score = 4.5
polish = true
review_ttl = "12h"

[workflow.instructions]
generate = "Write like a staff engineer sharing hard-won lessons."
`

const overlayConfig = `
[server]
port = 9090

[capability.primary]
model = "llama3.1:70b"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Version != "0.2.0" {
		t.Errorf("version: got %s", cfg.Version)
	}
	if cfg.Capability.Timeout != "90s" {
		t.Errorf("capability timeout: got %s", cfg.Capability.Timeout)
	}
	if cfg.Capability.Primary.Model != "llama3.1:8b" {
		t.Errorf("primary model: got %s", cfg.Capability.Primary.Model)
	}
	if cfg.Workflow.FallbackScore != 4.5 {
		t.Errorf("fallback score: got %v", cfg.Workflow.FallbackScore)
	}
	if !cfg.Workflow.Polish {
		t.Error("polish should be enabled")
	}
	if cfg.Workflow.ReviewTTLDuration() != 12*time.Hour {
		t.Errorf("review ttl: got %v", cfg.Workflow.ReviewTTLDuration())
	}
}

func TestLoadWithoutConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"server host", cfg.Server.Host, "0.0.0.0"},
		{"server port", cfg.Server.Port, 8080},
		{"base path", cfg.API.BasePath, "/api"},
		{"shutdown timeout", cfg.ShutdownTimeout, "30s"},
		{"capability timeout", cfg.Capability.Timeout, "60s"},
		{"primary provider", cfg.Capability.Primary.Provider, "ollama"},
		{"fallback score", cfg.Workflow.FallbackScore, 5.0},
		{"review ttl", cfg.Workflow.ReviewTTL, "24h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv("SCRIBE_ENV", "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("overlay port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Capability.Primary.Model != "llama3.1:70b" {
		t.Errorf("overlay model: got %s", cfg.Capability.Primary.Model)
	}
	// Fields absent from the overlay keep their base values.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host: got %s", cfg.Server.Host)
	}
	if cfg.Workflow.FallbackScore != 4.5 {
		t.Errorf("fallback score: got %v", cfg.Workflow.FallbackScore)
	}
}

func TestEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SCRIBE_SERVER_PORT", "3000")
	t.Setenv("SCRIBE_AGENT_MODEL", "qwen2.5:14b")
	t.Setenv("SCRIBE_AGENT_BASE_URL", "http://inference:11434")
	t.Setenv("SCRIBE_OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("SCRIBE_OPENAI_API_KEY", "sk-test")
	t.Setenv("SCRIBE_WORKFLOW_FALLBACK_SCORE", "3.5")
	t.Setenv("SCRIBE_WORKFLOW_REVIEW_TTL", "1h")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Capability.Primary.Model != "qwen2.5:14b" {
		t.Errorf("model: got %s", cfg.Capability.Primary.Model)
	}
	if cfg.Capability.Primary.BaseURL != "http://inference:11434" {
		t.Errorf("base url: got %s", cfg.Capability.Primary.BaseURL)
	}
	if !cfg.Capability.OpenAI.Configured() {
		t.Error("openai provider should be configured")
	}
	if cfg.Workflow.FallbackScore != 3.5 {
		t.Errorf("fallback score: got %v", cfg.Workflow.FallbackScore)
	}
	if cfg.Workflow.ReviewTTLDuration() != time.Hour {
		t.Errorf("review ttl: got %v", cfg.Workflow.ReviewTTLDuration())
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad shutdown timeout", "shutdown_timeout = \"soon\"\n"},
		{"bad capability timeout", "[capability]\ntimeout = \"forever\"\n"},
		{"fallback score out of range", "[workflow]\nfallback_score = 11.0\n"},
		{"bad review ttl", "[workflow]\nreview_ttl = \"a while\"\n"},
		{"unknown instructions stage", "[workflow.instructions]\nsummarize = \"nope\"\n"},
		{"port out of range", "[server]\nport = 99999\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "config.toml", tt.content)
			chdir(t, dir)

			if _, err := config.Load(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestProviderAgentConfig(t *testing.T) {
	provider := config.ProviderConfig{
		Name:     "scribe-primary",
		Provider: "azure",
		BaseURL:  "https://scribe.openai.azure.com",
		Model:    "gpt-4o",
		Token:    "secret",
	}

	cfg := provider.AgentConfig()
	if cfg.Name != "scribe-primary" {
		t.Errorf("name: got %s", cfg.Name)
	}
	if cfg.Provider.Name != "azure" {
		t.Errorf("provider: got %s", cfg.Provider.Name)
	}
	if cfg.Provider.BaseURL != "https://scribe.openai.azure.com" {
		t.Errorf("base url: got %s", cfg.Provider.BaseURL)
	}
	if cfg.Model.Name != "gpt-4o" {
		t.Errorf("model: got %s", cfg.Model.Name)
	}
	if cfg.Provider.Options["token"] != "secret" {
		t.Error("token option missing")
	}
}

func TestStageInstructions(t *testing.T) {
	wf := config.WorkflowConfig{
		Instructions: map[string]string{
			"generate": "custom generate",
			"critique": "custom critique",
		},
	}

	overrides := wf.StageInstructions()
	if len(overrides) != 2 {
		t.Fatalf("overrides: got %d, want 2", len(overrides))
	}
	if overrides[prompts.StageGenerate] != "custom generate" {
		t.Errorf("generate override: got %q", overrides[prompts.StageGenerate])
	}
	if overrides[prompts.StageCritique] != "custom critique" {
		t.Errorf("critique override: got %q", overrides[prompts.StageCritique])
	}
}
