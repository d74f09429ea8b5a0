package commands

import (
	"github.com/leapstack-labs/rtllint/internal/cli/output"
	"github.com/leapstack-labs/rtllint/pkg/lint"
	"github.com/leapstack-labs/rtllint/pkg/preprocess"
)

func findingsJSON(fs []preprocess.Finding) []output.LintFinding {
	if len(fs) == 0 {
		return nil
	}
	out := make([]output.LintFinding, 0, len(fs))
	for _, f := range fs {
		out = append(out, output.LintFinding{
			Path:        f.Path,
			Line:        f.Line,
			Column:      f.Column,
			Category:    f.Category,
			Description: f.Description,
			Text:        f.Text,
		})
	}
	return out
}

func violationJSON(module, rule, message string, line int) output.LintViolation {
	v := output.LintViolation{
		Module:  module,
		Rule:    rule,
		Message: message,
		Line:    line,
	}
	if r, ok := lint.GetByName(rule); ok {
		v.RuleID = r.ID
	}
	return v
}
