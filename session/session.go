// Package session manages the bounded conversation window for the assistant
// loop.
package session

import (
	"github.com/tailored-agentic-units/hostpilot/core/protocol"
)

// Session holds an ordered, size-bounded sequence of conversation turns.
// Implementations must be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// AddTurn appends a turn, applying per-turn and window bounds.
	AddTurn(turn protocol.Turn)
	// Turns returns a defensive copy of the conversation window.
	Turns() []protocol.Turn
	// Clear resets the conversation window.
	Clear()
}
