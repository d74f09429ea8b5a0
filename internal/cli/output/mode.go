// Package output renders command results for terminals, pipes and machines.
//
// A Renderer resolves the configured mode once: auto becomes styled text on
// a terminal and markdown everywhere else, so piped output stays readable
// in chat logs and CI artifacts.
package output

import "strings"

// OutputMode selects how results are rendered.
type OutputMode string

// Supported output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a configuration value into an OutputMode.
// Unknown and empty values fall back to ModeAuto.
func Mode(s string) OutputMode {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeText:
		return ModeText
	case ModeMarkdown, "md":
		return ModeMarkdown
	case ModeJSON:
		return ModeJSON
	default:
		return ModeAuto
	}
}

// String implements fmt.Stringer.
func (m OutputMode) String() string { return string(m) }
