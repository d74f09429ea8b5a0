package lint

import (
	"regexp"
	"sort"
	"strings"

	"github.com/leapstack-labs/rtllint/pkg/core"
)

// Rule groups.
const (
	GroupLatch     = "latch"
	GroupXOptimism = "xoptimism"
	GroupAlways    = "always"
	GroupGateLevel = "gatelevel"
)

// Rule is an immutable catalog entry. Name is the rule's identity.
type Rule struct {
	ID          string // Documentation ID, e.g. "R101"
	Name        string // Identity, e.g. "LATCH"
	Group       string
	Description string
	Message     string // Template with {placeholder} fields
	Severity    core.Severity

	// Documentation fields
	Rationale   string
	BadExample  string
	GoodExample string
}

// Args holds the values substituted into a message template.
type Args map[string]string

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Format renders the message template. Unknown placeholders are left as-is.
func (r Rule) Format(args Args) string {
	if len(args) == 0 {
		return r.Message
	}
	return placeholderPattern.ReplaceAllStringFunc(r.Message, func(m string) string {
		if v, ok := args[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Placeholders returns the sorted placeholder names used by the template.
func (r Rule) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(r.Message, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Info returns the documentation DTO for the rule.
func (r Rule) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		Message:         r.Message,
		DefaultSeverity: r.Severity,
		Placeholders:    r.Placeholders(),
	}
}

// String returns "NAME (ID)".
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if r.ID != "" {
		b.WriteString(" (")
		b.WriteString(r.ID)
		b.WriteString(")")
	}
	return b.String()
}
