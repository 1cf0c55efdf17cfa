package model

// Config holds parameters for the Anthropic Messages API client.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string `json:"api_key,omitempty"`
	// Model names the model to query.
	Model string `json:"model,omitempty"`
	// MaxTokens caps the length of each completion.
	MaxTokens int `json:"max_tokens,omitempty"`
	// BaseURL is the Messages API endpoint. Overridable for tests.
	BaseURL string `json:"base_url,omitempty"`
}

// DefaultConfig returns the default model configuration.
func DefaultConfig() Config {
	return Config{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 4000,
		BaseURL:   "https://api.anthropic.com/v1/messages",
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.MaxTokens > 0 {
		c.MaxTokens = source.MaxTokens
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
}
