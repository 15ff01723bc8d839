// Package llm provides the model configuration, prompts and client used to
// analyze job descriptions.
package llm

import (
	"os"
	"time"
)

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for field extraction from a single description
	TierLite ModelTier = "lite"
	// TierStandard is for comparing two postings
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider, the only one wired today.
const ProviderGemini Provider = "gemini"

// Defaults for generation settings.
const (
	DefaultTemperature     = 0.1
	DefaultRequestTimeout  = 45 * time.Second
	DefaultMaxOutputTokens = 2048
)

// Config selects models and generation settings.
type Config struct {
	Provider        Provider
	Models          map[ModelTier]string
	Temperature     float32
	RequestTimeout  time.Duration // zero leaves the caller's deadline alone
	MaxOutputTokens int32         // zero uses the model default
}

// DefaultConfig returns the Gemini configuration. GEMINI_MODEL, when set,
// replaces the lite model; GEMINI_COMPARE_MODEL replaces the standard one.
func DefaultConfig() *Config {
	cfg := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature:     DefaultTemperature,
		RequestTimeout:  DefaultRequestTimeout,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
	if m := os.Getenv("GEMINI_MODEL"); m != "" {
		cfg.Models[TierLite] = m
	}
	if m := os.Getenv("GEMINI_COMPARE_MODEL"); m != "" {
		cfg.Models[TierStandard] = m
	}
	return cfg
}

// GetModel returns the model for tier, falling back to the standard and then
// the lite model. It returns "" when nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c with model set for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	cp := *c
	cp.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		cp.Models[k] = v
	}
	cp.Models[tier] = model
	return &cp
}
