// Package directive extracts embedded command directives from model output.
//
// Directives are flat JSON objects carrying a "cmd" key, found anywhere in
// free-form text. Extraction and validation are separate stages (find, then
// parse) so one broken directive never blocks its siblings.
package directive

import (
	"encoding/json"
	"regexp"
)

// pattern matches a single-level brace-delimited object containing the
// literal key "cmd". The scan is shallow: no nested braces are permitted
// inside a match, so a command value that itself contains '{' or '}' breaks
// extraction.
var pattern = regexp.MustCompile(`\{[^{}]*"cmd"[^{}]*\}`)

// Directive is a parsed command request.
type Directive struct {
	Command string `json:"cmd"`
}

// Extract returns the raw directive-shaped substrings of text, left to right
// in order of appearance. No deduplication, no reordering. Extract always
// terminates and never fails, even on truncated or unbalanced braces.
func Extract(text string) []string {
	return pattern.FindAllString(text, -1)
}

// Parse decodes a raw directive string. A decode failure is returned as an
// error; a well-formed object without a "cmd" key yields ok=false and must
// be skipped silently.
func Parse(raw string) (d Directive, ok bool, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Directive{}, false, err
	}

	cmd, exists := fields["cmd"]
	if !exists {
		return Directive{}, false, nil
	}
	if err := json.Unmarshal(cmd, &d.Command); err != nil {
		return Directive{}, false, err
	}
	return d, true, nil
}
