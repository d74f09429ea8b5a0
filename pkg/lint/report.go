package lint

import (
	"fmt"
	"io"
	"sort"
)

// Sort orders violations by module name, then line, then rule name.
// The empty module name sorts first.
func Sort(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}

// String renders the violation as a report line body.
func (v Violation) String() string {
	return fmt.Sprintf("Module '%s': [%s] %s (line %d)", v.Module, v.Rule, v.Message, v.Line)
}

// WriteReport writes the plain-text report for a sorted violation list.
// Nothing is written when the list is empty.
func WriteReport(w io.Writer, vs []Violation) error {
	if len(vs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Found %d violation(s):\n", len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		if _, err := fmt.Fprintf(w, "  - %s\n", v); err != nil {
			return err
		}
	}
	return nil
}
