package preprocess

import "regexp"

var (
	lintOffPattern      = regexp.MustCompile(`(?i)//\s*ece2300-lint\s+off`)
	lintRedirectPattern = regexp.MustCompile("(?i)//\\s*ece2300-lint\\s*\\n\\s*`include\\s+\"([^\"]+)\"")
)

// TargetMode describes how the input file selects its lint target.
type TargetMode int

// TargetMode values.
const (
	// TargetSelf lints the input file itself.
	TargetSelf TargetMode = iota
	// TargetRedirect lints the file named by the include after the marker.
	TargetRedirect
	// TargetOff disables linting for the input file.
	TargetOff
)

// DetectTarget inspects raw input text for lint markers. For TargetRedirect
// the included name is returned.
func DetectTarget(raw string) (TargetMode, string) {
	if lintOffPattern.MatchString(raw) {
		return TargetOff, ""
	}
	if m := lintRedirectPattern.FindStringSubmatch(raw); m != nil {
		return TargetRedirect, m[1]
	}
	return TargetSelf, ""
}
