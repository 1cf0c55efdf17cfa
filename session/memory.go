package session

import (
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tailored-agentic-units/hostpilot/core/protocol"
)

type memorySession struct {
	id       string
	maxTurns int
	maxChars int
	turns    []protocol.Turn
	mu       sync.RWMutex
}

// NewMemorySession creates a Session backed by an in-memory slice.
// The session is assigned a unique UUIDv7 identifier.
func NewMemorySession(cfg Config) Session {
	defaults := DefaultConfig()
	defaults.Merge(&cfg)
	return &memorySession{
		id:       uuid.Must(uuid.NewV7()).String(),
		maxTurns: defaults.MaxTurns,
		maxChars: defaults.MaxAssistantChars,
	}
}

func (s *memorySession) ID() string {
	return s.id
}

// AddTurn appends a turn. Assistant content is capped at MaxAssistantChars
// before storage, and the window is re-bounded to the MaxTurns most recent
// turns after every append, so the invariant holds even if configuration
// shrank between calls.
func (s *memorySession) AddTurn(turn protocol.Turn) {
	if turn.Role == protocol.RoleAssistant && len(turn.Content) > s.maxChars {
		cut := s.maxChars
		// Back up to a rune boundary so the stored content stays valid UTF-8.
		for cut > 0 && !utf8.RuneStart(turn.Content[cut]) {
			cut--
		}
		turn.Content = turn.Content[:cut]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	if excess := len(s.turns) - s.maxTurns; excess > 0 {
		s.turns = slices.Delete(s.turns, 0, excess)
	}
}

func (s *memorySession) Turns() []protocol.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.turns)
}

func (s *memorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
