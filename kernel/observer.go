package kernel

import "github.com/tailored-agentic-units/hostpilot/observability"

// Kernel event types emitted during the directive loop.
const (
	EventRunStart          observability.EventType = "kernel.run.start"
	EventRunComplete       observability.EventType = "kernel.run.complete"
	EventDirectiveExecute  observability.EventType = "kernel.directive.execute"
	EventDirectiveComplete observability.EventType = "kernel.directive.complete"
	EventResponse          observability.EventType = "kernel.response"
	EventError             observability.EventType = "kernel.error"
)
