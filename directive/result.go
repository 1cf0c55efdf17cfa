package directive

// ExecutionResult records the outcome of one executed (or failed-to-parse)
// directive. Immutable once built: it is consumed once to build the
// interpretation prompt and once to report to the Reporter.
type ExecutionResult struct {
	Command  string
	Success  bool
	Stdout   string
	Stderr   string
	ExitCode int
}

// ParseFailure builds the failed ExecutionResult for a raw directive string
// that could not be decoded. The raw text stands in for the command so the
// failure still surfaces to the user instead of being dropped.
func ParseFailure(raw string, err error) ExecutionResult {
	return ExecutionResult{
		Command:  raw,
		Success:  false,
		Stderr:   "JSON parse error: " + err.Error(),
		ExitCode: -1,
	}
}
