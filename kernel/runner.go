package kernel

import (
	"context"

	"github.com/tailored-agentic-units/hostpilot/directive"
)

// Task executes one directive and produces its result.
type Task func(ctx context.Context) directive.ExecutionResult

// Runner controls where directive tasks execute. Do must not return until
// the task completes, so directives stay strictly sequential regardless of
// the implementation.
type Runner interface {
	Do(ctx context.Context, task Task) directive.ExecutionResult
}

// SyncRunner executes tasks inline on the calling goroutine.
type SyncRunner struct{}

func (SyncRunner) Do(ctx context.Context, task Task) directive.ExecutionResult {
	return task(ctx)
}

// WorkerRunner executes tasks on a single dedicated goroutine and awaits
// each one, keeping the calling goroutine free to cooperate with a
// scheduler. Close releases the worker; Do after Close falls back to inline
// execution.
type WorkerRunner struct {
	tasks chan workerTask
	done  chan struct{}
}

type workerTask struct {
	ctx   context.Context
	task  Task
	reply chan directive.ExecutionResult
}

// NewWorkerRunner starts the worker goroutine.
func NewWorkerRunner() *WorkerRunner {
	r := &WorkerRunner{
		tasks: make(chan workerTask),
		done:  make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *WorkerRunner) loop() {
	for {
		select {
		case t := <-r.tasks:
			t.reply <- t.task(t.ctx)
		case <-r.done:
			return
		}
	}
}

func (r *WorkerRunner) Do(ctx context.Context, task Task) directive.ExecutionResult {
	reply := make(chan directive.ExecutionResult, 1)
	select {
	case r.tasks <- workerTask{ctx: ctx, task: task, reply: reply}:
		return <-reply
	case <-r.done:
		return task(ctx)
	}
}

// Close stops the worker goroutine. Call once.
func (r *WorkerRunner) Close() {
	close(r.done)
}
