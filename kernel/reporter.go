package kernel

// Reporter receives per-directive execution feedback as it happens, before
// the interpretation turn. The kernel guarantees the command is capped at
// ReporterCommandCap, stdout at ReporterStdoutCap, and stderr at
// ReporterStderrCap; rendering is entirely the implementation's concern.
type Reporter interface {
	Report(command string, success bool, stdout, stderr string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(command string, success bool, stdout, stderr string)

func (f ReporterFunc) Report(command string, success bool, stdout, stderr string) {
	f(command, success, stdout, stderr)
}

// NoOpReporter discards all reports.
type NoOpReporter struct{}

func (NoOpReporter) Report(command string, success bool, stdout, stderr string) {}
