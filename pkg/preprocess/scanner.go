package preprocess

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Finding is one prohibited construct occurrence. Column is 1-based and
// counts characters.
type Finding struct {
	Path        string `json:"path"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Text        string `json:"text"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// String renders the finding as path:line:col: description ('text').
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d:%d: %s ('%s')", f.Path, f.Line, f.Column, f.Description, f.Text)
}

type compiledConstruct struct {
	category    string
	description string
	re          *regexp.Regexp
}

// Scanner flags prohibited constructs in stripped source text.
type Scanner struct {
	rules []compiledConstruct
}

// NewScanner compiles the catalog. Patterns that fail to compile are
// logged and skipped.
func NewScanner(catalog []Category, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scanner{}
	for _, cat := range catalog {
		for _, c := range cat.Constructs {
			if c.Pattern == "" {
				continue
			}
			re, err := regexp.Compile("(?i)" + c.Pattern)
			if err != nil {
				logger.Warn("invalid prohibited-construct pattern, skipping",
					slog.String("category", cat.Name),
					slog.String("pattern", c.Pattern),
					slog.Any("error", err))
				continue
			}
			desc := c.Description
			if desc == "" {
				desc = "Prohibited construct: " + c.Pattern
			}
			s.rules = append(s.rules, compiledConstruct{category: cat.Name, description: desc, re: re})
		}
	}
	return s
}

// Len returns the number of usable patterns.
func (s *Scanner) Len() int { return len(s.rules) }

// Scan checks stripped text and attributes findings to path. Findings are
// ordered by catalog entry, then line, then column.
func (s *Scanner) Scan(path, stripped string) []Finding {
	lines := strings.Split(stripped, "\n")
	var findings []Finding
	for _, rule := range s.rules {
		for i, line := range lines {
			for _, loc := range rule.re.FindAllStringIndex(line, -1) {
				findings = append(findings, Finding{
					Path:        path,
					Line:        i + 1,
					Column:      utf8.RuneCountInString(line[:loc[0]]) + 1,
					Text:        line[loc[0]:loc[1]],
					Description: rule.description,
					Category:    rule.category,
				})
			}
		}
	}
	return findings
}

// WriteFindings writes the findings report. Nothing is written when there
// are no findings.
func WriteFindings(w io.Writer, findings []Finding) error {
	if len(findings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Found %d prohibited construct(s) in the cleaned files.\n\n", len(findings)); err != nil {
		return err
	}
	for _, f := range findings {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
	}
	return nil
}
