package kernel

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailored-agentic-units/hostpilot/memory"
	"github.com/tailored-agentic-units/hostpilot/model"
	"github.com/tailored-agentic-units/hostpilot/remote"
	"github.com/tailored-agentic-units/hostpilot/session"
)

// Config holds initialization parameters for all kernel subsystems.
// Each subsystem section delegates to that subsystem's config-driven constructor.
type Config struct {
	Model        model.Config   `json:"model"`
	Remote       remote.Config  `json:"remote"`
	Session      session.Config `json:"session"`
	Memory       memory.Config  `json:"memory"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Model:        model.DefaultConfig(),
		Remote:       remote.DefaultConfig(),
		Session:      session.DefaultConfig(),
		Memory:       memory.DefaultConfig(),
		SystemPrompt: DefaultSystemPrompt,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Model.Merge(&source.Model)
	c.Remote.Merge(&source.Remote)
	c.Session.Merge(&source.Session)
	c.Memory.Merge(&source.Memory)

	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
