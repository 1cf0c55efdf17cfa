// Package kernel implements the directive loop that lets a language model
// operate a remote host: plan, extract embedded command directives, execute
// them over the remote session, and interpret the results.
//
// The kernel initializes from configuration via New, creating all subsystems
// internally. Functional options allow test overrides of any subsystem.
//
//	k, err := kernel.New(&cfg)
//	reply, err := k.Run(ctx, "check memory usage")
package kernel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/tailored-agentic-units/hostpilot/core/protocol"
	"github.com/tailored-agentic-units/hostpilot/directive"
	"github.com/tailored-agentic-units/hostpilot/memory"
	"github.com/tailored-agentic-units/hostpilot/model"
	"github.com/tailored-agentic-units/hostpilot/observability"
	"github.com/tailored-agentic-units/hostpilot/remote"
	"github.com/tailored-agentic-units/hostpilot/session"
)

// Output bounds for a single run. Reporter caps bound what the Reporter
// callback receives; context caps bound what is embedded in the
// interpretation prompt, whose total size is bounded by SummaryCap.
const (
	MaxDirectives      = 5
	ReporterCommandCap = 100
	ReporterStdoutCap  = 500
	ReporterStderrCap  = 300
	ContextStdoutCap   = 1000
	ContextStderrCap   = 500
	SummaryCap         = 3000
)

const summaryTruncationMarker = "\n... (results truncated)"

// Option configures a Kernel after config-driven initialization.
// Applied by New after cold start — overrides replace config-created defaults.
type Option func(*Kernel)

// WithModel overrides the config-created model client.
func WithModel(c model.Client) Option {
	return func(k *Kernel) { k.model = c }
}

// WithRemote overrides the config-created remote session.
func WithRemote(s remote.Session) Option {
	return func(k *Kernel) { k.remote = s }
}

// WithSession overrides the config-created conversation session.
func WithSession(s session.Session) Option {
	return func(k *Kernel) { k.session = s }
}

// WithMemoryStore overrides the config-created notes store.
func WithMemoryStore(s memory.Store) Option {
	return func(k *Kernel) { k.store = s }
}

// WithObserver overrides the default SlogObserver.
func WithObserver(o observability.Observer) Option {
	return func(k *Kernel) { k.observer = o }
}

// WithRunner overrides the default SyncRunner.
func WithRunner(r Runner) Option {
	return func(k *Kernel) { k.runner = r }
}

// WithReporter overrides the default NoOpReporter.
func WithReporter(r Reporter) Option {
	return func(k *Kernel) { k.reporter = r }
}

// Kernel coordinates one conversation against one remote host.
type Kernel struct {
	model        model.Client
	remote       remote.Session
	session      session.Session
	store        memory.Store
	observer     observability.Observer
	runner       Runner
	reporter     Reporter
	systemPrompt string

	runMu sync.Mutex
}

// New creates a Kernel from configuration. Subsystems (model, remote,
// session, notes store) are initialized from their respective config
// sections. Functional options applied after initialization can override any
// subsystem for testing. A model client is required: supply an API key in
// the config or a client via WithModel.
func New(cfg *Config, opts ...Option) (*Kernel, error) {
	sesh, err := session.New(&cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	store, err := memory.NewStore(&cfg.Memory)
	if err != nil {
		return nil, fmt.Errorf("failed to create notes store: %w", err)
	}

	var client model.Client
	if cfg.Model.APIKey != "" {
		client, err = model.NewAnthropicClient(cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
	}

	k := &Kernel{
		model:        client,
		remote:       remote.NewSSHSession(cfg.Remote),
		session:      sesh,
		store:        store,
		observer:     observability.NewSlogObserver(slog.Default()),
		runner:       SyncRunner{},
		reporter:     NoOpReporter{},
		systemPrompt: cfg.SystemPrompt,
	}

	for _, opt := range opts {
		opt(k)
	}

	if k.model == nil {
		return nil, model.ErrMissingAPIKey
	}

	return k, nil
}

// Remote returns the kernel's remote session, whose connect/disconnect
// lifecycle is owned by the caller.
func (k *Kernel) Remote() remote.Session {
	return k.remote
}

// Session returns the kernel's conversation session.
func (k *Kernel) Session() session.Session {
	return k.session
}

// Run processes one user input: request a planning completion, execute up to
// MaxDirectives embedded directives sequentially against the remote session,
// then request an interpretation completion over the execution results. When
// the planning turn contains no directives its text is returned directly.
//
// Model failures are converted to a short diagnostic string, not an error,
// so a single bad turn never crashes the surrounding shell. Run returns
// ErrBusy if another run is in flight and remote.ErrNotConnected before the
// session is connected.
func (k *Kernel) Run(ctx context.Context, input string) (string, error) {
	if !k.runMu.TryLock() {
		return "", ErrBusy
	}
	defer k.runMu.Unlock()

	if !k.remote.Connected() {
		return "", remote.ErrNotConnected
	}

	systemContent, err := k.buildSystemContent(ctx)
	if err != nil {
		return "", err
	}

	k.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "kernel.Run",
		Data:      map[string]any{"input_length": len(input)},
	})

	planning, diag := k.complete(ctx, systemContent, input)
	if diag != "" {
		return diag, nil
	}

	raws := directive.Extract(planning)
	if len(raws) == 0 {
		k.observer.OnEvent(ctx, observability.Event{
			Type:      EventResponse,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    "kernel.Run",
			Data:      map[string]any{"directives": 0, "response_length": len(planning)},
		})
		return planning, nil
	}
	if len(raws) > MaxDirectives {
		raws = raws[:MaxDirectives]
	}

	results := k.execute(ctx, raws)

	summary := buildSummary(results)
	interpretation := fmt.Sprintf("Based on these command results, answer: '%s'\n\n%s", input, summary)

	final, diag := k.complete(ctx, systemContent, interpretation)
	if diag != "" {
		return diag, nil
	}

	k.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunComplete,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "kernel.Run",
		Data:      map[string]any{"directives": len(results), "response_length": len(final)},
	})

	return final, nil
}

// complete appends the user content to the session, requests a completion
// over the full window, and stores the assistant turn. A model failure
// returns a non-empty diagnostic string in place of content.
func (k *Kernel) complete(ctx context.Context, systemContent, userContent string) (content, diagnostic string) {
	k.session.AddTurn(protocol.NewTurn(protocol.RoleUser, userContent))

	reply, err := k.model.Complete(ctx, systemContent, k.session.Turns())
	if err != nil {
		k.observer.OnEvent(ctx, observability.Event{
			Type:      EventError,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    "kernel.complete",
			Data:      map[string]any{"error": err.Error()},
		})
		return "", "API request failed: " + truncate(err.Error(), 200)
	}

	k.session.AddTurn(protocol.NewTurn(protocol.RoleAssistant, reply))
	return reply, ""
}

// execute runs each raw directive in order. Parse and execution failures
// become failed results; they never abort the loop. Every result is reported
// to the Reporter immediately after its execution.
func (k *Kernel) execute(ctx context.Context, raws []string) []directive.ExecutionResult {
	results := make([]directive.ExecutionResult, 0, len(raws))

	for _, raw := range raws {
		d, ok, err := directive.Parse(raw)
		if err != nil {
			results = append(results, k.report(ctx, directive.ParseFailure(raw, err)))
			continue
		}
		if !ok {
			continue
		}

		k.observer.OnEvent(ctx, observability.Event{
			Type:      EventDirectiveExecute,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "kernel.execute",
			Data:      map[string]any{"command": d.Command},
		})

		res := k.runner.Do(ctx, func(ctx context.Context) directive.ExecutionResult {
			r, err := k.remote.Execute(ctx, d.Command, remote.DefaultTimeout)
			if err != nil {
				return directive.ExecutionResult{
					Command:  d.Command,
					Stderr:   "Execution error: " + err.Error(),
					ExitCode: -1,
				}
			}
			return directive.ExecutionResult{
				Command:  d.Command,
				Success:  r.ExitCode == 0,
				Stdout:   strings.TrimSpace(r.Stdout),
				Stderr:   strings.TrimSpace(r.Stderr),
				ExitCode: r.ExitCode,
			}
		})

		results = append(results, k.report(ctx, res))
	}

	return results
}

func (k *Kernel) report(ctx context.Context, res directive.ExecutionResult) directive.ExecutionResult {
	k.reporter.Report(
		truncate(res.Command, ReporterCommandCap),
		res.Success,
		truncate(res.Stdout, ReporterStdoutCap),
		truncate(res.Stderr, ReporterStderrCap),
	)

	k.observer.OnEvent(ctx, observability.Event{
		Type:      EventDirectiveComplete,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "kernel.execute",
		Data: map[string]any{
			"command":   res.Command,
			"success":   res.Success,
			"exit_code": res.ExitCode,
		},
	})

	return res
}

// buildSummary renders the execution results for the interpretation prompt.
// Output fields are capped per result and the whole summary is capped at
// SummaryCap with a marker appended when exceeded.
func buildSummary(results []directive.ExecutionResult) string {
	var b strings.Builder
	b.WriteString("Command execution results:\n")
	for _, res := range results {
		fmt.Fprintf(&b, "Command: %s\n", res.Command)
		fmt.Fprintf(&b, "Success: %v\n", res.Success)
		if res.Stdout != "" {
			fmt.Fprintf(&b, "Output: %s\n", truncate(res.Stdout, ContextStdoutCap))
		}
		if res.Stderr != "" {
			fmt.Fprintf(&b, "Error: %s\n", truncate(res.Stderr, ContextStderrCap))
		}
		b.WriteString("---\n")
	}

	summary := b.String()
	if len(summary) > SummaryCap {
		summary = summary[:SummaryCap] + summaryTruncationMarker
	}
	return summary
}

// buildSystemContent appends stored host notes to the system prompt, when a
// notes store is configured.
func (k *Kernel) buildSystemContent(ctx context.Context) (string, error) {
	content := k.systemPrompt

	if k.store == nil {
		return content, nil
	}

	keys, err := k.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list note keys: %w", err)
	}
	if len(keys) == 0 {
		return content, nil
	}

	entries, err := k.store.Load(ctx, keys...)
	if err != nil {
		return "", fmt.Errorf("failed to load notes: %w", err)
	}

	for _, entry := range entries {
		content += "\n\n" + string(entry.Value)
	}

	return content, nil
}

// truncate caps s at limit bytes, backing up to a rune boundary so the
// result is always valid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
