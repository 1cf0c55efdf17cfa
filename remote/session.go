// Package remote provides the command channel to a managed host: an
// authenticated session that executes arbitrary text commands and returns
// their output and exit status, plus a closed set of named management
// operations built on top of it.
package remote

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for session operations.
var (
	ErrNotConnected = errors.New("not connected to host")
	ErrTimeout      = errors.New("command timed out")
)

// Result holds the output of one remote command execution.
// ExitCode == 0 is the sole success criterion.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Session is an authenticated channel to a host. A Session is exclusively
// owned by one conversation for its lifetime; implementations must be safe
// for use from a single conversation at a time.
//
// Execute honors the given per-command timeout. A timeout fails that command
// only; it does not cancel work already issued on a host with no native
// cancel primitive.
type Session interface {
	// Connect opens the channel. Safe to call once per session lifecycle.
	Connect(ctx context.Context) error
	// Close tears the channel down. Idempotent.
	Close() error
	// Connected reports whether the channel is currently open.
	Connected() bool
	// Execute runs a command and returns its output and exit status.
	// Returns ErrNotConnected before Connect and ErrTimeout on deadline.
	Execute(ctx context.Context, command string, timeout time.Duration) (Result, error)
}
