package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/scribe/internal/prompts"
)

const (
	EnvWorkflowFallbackScore = "SCRIBE_WORKFLOW_FALLBACK_SCORE"
	EnvWorkflowPolish        = "SCRIBE_WORKFLOW_POLISH"
	EnvWorkflowReviewTTL     = "SCRIBE_WORKFLOW_REVIEW_TTL"
)

// WorkflowConfig tunes workflow execution behavior. Generation parameter
// defaults such as iteration and quality limits are request-scoped and
// live with the workflow package; this config carries the service-level
// knobs.
type WorkflowConfig struct {
	// FallbackScore is the neutral score assigned when a critique cannot
	// be parsed and no score can be extracted from the raw response.
	FallbackScore float64 `toml:"fallback_score"`

	// Polish enables an additional capability call during the polish
	// stage. When disabled, polish performs deterministic normalization
	// only.
	Polish bool `toml:"polish"`

	// ReviewTTL bounds how long a suspended workflow waits for human
	// feedback before its review record expires.
	ReviewTTL string `toml:"review_ttl"`

	// Instructions overrides the built-in stage instructions. Keys must
	// be valid stage names.
	Instructions map[string]string `toml:"instructions"`
}

// ReviewTTLDuration returns ReviewTTL as a time.Duration.
func (c *WorkflowConfig) ReviewTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReviewTTL)
	return d
}

// StageInstructions converts the Instructions map into stage-keyed
// overrides for the prompt system.
func (c *WorkflowConfig) StageInstructions() map[prompts.Stage]string {
	if len(c.Instructions) == 0 {
		return nil
	}

	overrides := make(map[prompts.Stage]string, len(c.Instructions))
	for name, text := range c.Instructions {
		stage, err := prompts.ParseStage(name)
		if err != nil {
			continue
		}
		overrides[stage] = text
	}
	return overrides
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.FallbackScore != 0 {
		c.FallbackScore = overlay.FallbackScore
	}
	if overlay.Polish {
		c.Polish = overlay.Polish
	}
	if overlay.ReviewTTL != "" {
		c.ReviewTTL = overlay.ReviewTTL
	}
	for name, text := range overlay.Instructions {
		if c.Instructions == nil {
			c.Instructions = make(map[string]string)
		}
		c.Instructions[name] = text
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.FallbackScore == 0 {
		c.FallbackScore = 5.0
	}
	if c.ReviewTTL == "" {
		c.ReviewTTL = "24h"
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvWorkflowFallbackScore); v != "" {
		if score, err := strconv.ParseFloat(v, 64); err == nil {
			c.FallbackScore = score
		}
	}
	if v := os.Getenv(EnvWorkflowPolish); v != "" {
		if polish, err := strconv.ParseBool(v); err == nil {
			c.Polish = polish
		}
	}
	if v := os.Getenv(EnvWorkflowReviewTTL); v != "" {
		c.ReviewTTL = v
	}
}

func (c *WorkflowConfig) validate() error {
	if c.FallbackScore < 0 || c.FallbackScore > 10 {
		return fmt.Errorf("fallback_score must be within [0, 10]: %v", c.FallbackScore)
	}
	if _, err := time.ParseDuration(c.ReviewTTL); err != nil {
		return fmt.Errorf("invalid review_ttl: %w", err)
	}
	for name := range c.Instructions {
		if _, err := prompts.ParseStage(name); err != nil {
			return fmt.Errorf("invalid instructions key: %w", err)
		}
	}
	return nil
}
