// Package llm provides the client for the external widget generator.
// The pipeline only consumes its structured JSON output; prompt content
// and retry policy belong to the caller layer.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for simple extraction tasks
	TierLite ModelTier = "lite"
	// TierStandard is for structured widget generation
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}
