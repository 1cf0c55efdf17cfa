package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	outputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d6dae0"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
)

// consoleReporter renders per-directive execution feedback to the terminal
// as each command completes. Output arrives pre-truncated from the kernel.
type consoleReporter struct {
	w io.Writer
}

func newConsoleReporter(w io.Writer) *consoleReporter {
	return &consoleReporter{w: w}
}

func (r *consoleReporter) Report(command string, success bool, stdout, stderr string) {
	status := successStyle.Render("ok")
	if !success {
		status = failureStyle.Render("failed")
	}
	fmt.Fprintf(r.w, "%s %s\n", status, commandStyle.Render("$ "+command))

	if stdout != "" {
		fmt.Fprintln(r.w, outputStyle.Render(stdout))
	}
	if stderr != "" {
		fmt.Fprintln(r.w, errorStyle.Render(stderr))
	}
}
