package session

// Config holds the conversation window bounds.
type Config struct {
	// MaxTurns is the number of most recent turns retained.
	MaxTurns int `json:"max_turns,omitempty"`
	// MaxAssistantChars caps stored assistant turn content.
	MaxAssistantChars int `json:"max_assistant_chars,omitempty"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		MaxTurns:          10,
		MaxAssistantChars: 2000,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MaxTurns > 0 {
		c.MaxTurns = source.MaxTurns
	}
	if source.MaxAssistantChars > 0 {
		c.MaxAssistantChars = source.MaxAssistantChars
	}
}

// New creates a Session from configuration. Currently returns an in-memory session.
func New(cfg *Config) (Session, error) {
	return NewMemorySession(*cfg), nil
}
