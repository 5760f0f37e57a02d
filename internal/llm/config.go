// Package llm wraps the Gemini API for structured job posting extraction.
package llm

// ModelTier selects which Gemini model handles a request. Posting
// extraction defaults to TierStandard; TierLite is enough for short
// classification prompts and TierAdvanced helps on long, messy postings.
type ModelTier string

const (
	// TierLite is the cheapest model, for short prompts
	TierLite ModelTier = "lite"
	// TierStandard is the default for posting extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or badly structured postings
	TierAdvanced ModelTier = "advanced"
)

// Config maps model tiers to Gemini model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the current Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// Model resolves a tier to a model name. An unconfigured tier falls back to
// standard, then lite; the empty string means nothing is configured at all.
func (c *Config) Model(tier ModelTier) string {
	if name, ok := c.Models[tier]; ok {
		return name
	}
	if name, ok := c.Models[TierStandard]; ok {
		return name
	}
	return c.Models[TierLite]
}
