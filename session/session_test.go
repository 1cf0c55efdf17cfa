package session_test

import (
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/tailored-agentic-units/hostpilot/core/protocol"
	"github.com/tailored-agentic-units/hostpilot/session"
)

func TestNew(t *testing.T) {
	s := session.NewMemorySession(session.Config{})

	if s.ID() == "" {
		t.Error("session ID should not be empty")
	}
	if len(s.Turns()) != 0 {
		t.Errorf("new session should have 0 turns, got %d", len(s.Turns()))
	}
}

func TestSession_ID_Unique(t *testing.T) {
	s1 := session.NewMemorySession(session.Config{})
	s2 := session.NewMemorySession(session.Config{})

	if s1.ID() == s2.ID() {
		t.Errorf("two sessions should have different IDs, both got %q", s1.ID())
	}
}

func TestSession_AddTurn_And_Turns(t *testing.T) {
	s := session.NewMemorySession(session.Config{})

	s.AddTurn(protocol.NewTurn(protocol.RoleUser, "check memory usage"))
	turns := s.Turns()

	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if turns[0].Role != protocol.RoleUser {
		t.Errorf("got role %q, want %q", turns[0].Role, protocol.RoleUser)
	}
	if turns[0].Content != "check memory usage" {
		t.Errorf("got content %q, want %q", turns[0].Content, "check memory usage")
	}
}

func TestSession_Turns_Order(t *testing.T) {
	s := session.NewMemorySession(session.Config{})

	contents := []string{"first", "second", "third"}
	for _, c := range contents {
		s.AddTurn(protocol.NewTurn(protocol.RoleUser, c))
	}

	turns := s.Turns()
	if len(turns) != len(contents) {
		t.Fatalf("got %d turns, want %d", len(turns), len(contents))
	}
	for i, turn := range turns {
		if turn.Content != contents[i] {
			t.Errorf("turn %d: got content %q, want %q", i, turn.Content, contents[i])
		}
	}
}

func TestSession_Window_DropsOldest(t *testing.T) {
	s := session.NewMemorySession(session.Config{MaxTurns: 10})

	for i := 0; i < 15; i++ {
		s.AddTurn(protocol.NewTurn(protocol.RoleUser, string(rune('a'+i))))
	}

	turns := s.Turns()
	if len(turns) != 10 {
		t.Fatalf("got %d turns, want 10", len(turns))
	}
	// The 5 oldest entries are gone; the window starts at the 6th.
	if turns[0].Content != "f" {
		t.Errorf("got oldest content %q, want %q", turns[0].Content, "f")
	}
	if turns[9].Content != "o" {
		t.Errorf("got newest content %q, want %q", turns[9].Content, "o")
	}
}

func TestSession_Window_HoldsAfterEveryAppend(t *testing.T) {
	s := session.NewMemorySession(session.Config{MaxTurns: 3})

	for i := 0; i < 20; i++ {
		s.AddTurn(protocol.NewTurn(protocol.RoleUser, "turn"))
		if n := len(s.Turns()); n > 3 {
			t.Fatalf("after append %d: got %d turns, want <= 3", i+1, n)
		}
	}
}

func TestSession_AssistantContent_Capped(t *testing.T) {
	s := session.NewMemorySession(session.Config{})

	long := strings.Repeat("x", 5000)
	s.AddTurn(protocol.NewTurn(protocol.RoleAssistant, long))

	turns := s.Turns()
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if len(turns[0].Content) != 2000 {
		t.Errorf("got stored content length %d, want 2000", len(turns[0].Content))
	}
}

func TestSession_AssistantCap_RuneBoundary(t *testing.T) {
	s := session.NewMemorySession(session.Config{})

	// 700 three-byte runes; the 2000-byte cap falls mid-rune.
	long := strings.Repeat("日", 700)
	s.AddTurn(protocol.NewTurn(protocol.RoleAssistant, long))

	turns := s.Turns()
	if !utf8.ValidString(turns[0].Content) {
		t.Error("stored content is not valid UTF-8")
	}
	if len(turns[0].Content) != 1998 {
		t.Errorf("got stored content length %d, want 1998 (rune boundary below the cap)", len(turns[0].Content))
	}
}

func TestSession_UserContent_NotCapped(t *testing.T) {
	s := session.NewMemorySession(session.Config{})

	long := strings.Repeat("x", 5000)
	s.AddTurn(protocol.NewTurn(protocol.RoleUser, long))

	turns := s.Turns()
	if len(turns[0].Content) != 5000 {
		t.Errorf("got stored content length %d, want 5000", len(turns[0].Content))
	}
}

func TestSession_Turns_DefensiveCopy(t *testing.T) {
	s := session.NewMemorySession(session.Config{})
	s.AddTurn(protocol.NewTurn(protocol.RoleUser, "hello"))
	s.AddTurn(protocol.NewTurn(protocol.RoleAssistant, "hi"))

	turns := s.Turns()
	turns[0] = protocol.NewTurn(protocol.RoleAssistant, "tampered")

	original := s.Turns()
	if original[0].Content != "hello" {
		t.Errorf("first turn was mutated: got %q, want %q", original[0].Content, "hello")
	}
}

func TestSession_Clear(t *testing.T) {
	s := session.NewMemorySession(session.Config{})
	s.AddTurn(protocol.NewTurn(protocol.RoleUser, "hello"))
	s.AddTurn(protocol.NewTurn(protocol.RoleAssistant, "hi"))

	s.Clear()

	if len(s.Turns()) != 0 {
		t.Errorf("got %d turns after Clear, want 0", len(s.Turns()))
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := session.DefaultConfig()

	if cfg.MaxTurns != 10 {
		t.Errorf("got MaxTurns %d, want 10", cfg.MaxTurns)
	}
	if cfg.MaxAssistantChars != 2000 {
		t.Errorf("got MaxAssistantChars %d, want 2000", cfg.MaxAssistantChars)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.Merge(&session.Config{MaxTurns: 4})

	if cfg.MaxTurns != 4 {
		t.Errorf("got MaxTurns %d, want 4", cfg.MaxTurns)
	}
	if cfg.MaxAssistantChars != 2000 {
		t.Errorf("merge should not reset MaxAssistantChars, got %d", cfg.MaxAssistantChars)
	}
}

func TestSession_Concurrent_AddTurn(t *testing.T) {
	s := session.NewMemorySession(session.Config{MaxTurns: 10})
	const n = 100

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.AddTurn(protocol.NewTurn(protocol.RoleUser, "turn"))
		}()
	}
	wg.Wait()

	if got := len(s.Turns()); got != 10 {
		t.Errorf("got %d turns, want the 10-turn window", got)
	}
}

func TestSession_Concurrent_AddAndRead(t *testing.T) {
	s := session.NewMemorySession(session.Config{})
	const n = 100

	var wg sync.WaitGroup
	wg.Add(2 * n)

	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.AddTurn(protocol.NewTurn(protocol.RoleUser, "turn"))
		}()
		go func() {
			defer wg.Done()
			_ = s.Turns()
		}()
	}
	wg.Wait()
}
