// Package model abstracts the language model behind the assistant. The
// kernel depends only on the Client interface; the Anthropic Messages API
// implementation lives alongside it.
package model

import (
	"context"
	"errors"

	"github.com/tailored-agentic-units/hostpilot/core/protocol"
)

// Sentinel errors for model operations.
var (
	ErrMissingAPIKey = errors.New("api key is required")
	ErrEmptyResponse = errors.New("model returned no content")
)

// Client produces one assistant completion for a conversation window.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete sends the system content and conversation turns and returns
	// the assistant's text.
	Complete(ctx context.Context, system string, turns []protocol.Turn) (string, error)
}
