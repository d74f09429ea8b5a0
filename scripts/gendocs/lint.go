package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/rtllint/pkg/lint"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"latch":     "Rules that catch inferred latches and ordering hazards in combinational blocks.",
	"xoptimism": "Rules that make unknown values propagate instead of being silently resolved.",
	"always":    "Rules about the kind of always block and the assignments used inside it.",
	"gatelevel": "Rules for modules that must be written as structural gate-level netlists.",
}

// generateLintDocs generates all lint documentation files.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateLintIndex(outDir); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	if err := generateRulesPage(outDir, lint.GetAll()); err != nil {
		return err
	}
	log.Printf("  Generated rules.md")

	return nil
}

// generateLintIndex generates the main linting overview page.
func generateLintIndex(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Linting", "RTL style rules checked by rtllint")
	w.GeneratedMarker()

	w.Header(1, "Linting")
	w.Paragraph(fmt.Sprintf("rtllint ships %d rules in %d groups. Rules only run for the modules that "+
		"enable them in the rule configuration file.", lint.Count(), len(lint.Groups())))

	w.Header(2, "Rule Configuration")
	w.Paragraph("The rule configuration file maps module names to rule names or to named rule sets. " +
		"Rule sets may include other rule sets.")
	w.CodeBlock("yaml", strings.TrimSpace(`
rule-sets:
  seq: [BLKSEQ, NEGEDGE, ASYNCRESET]
  comb: [LATCH, NONBLKCOMBI]
  all: [seq, comb]
modules:
  alu: [all]
  regfile: [seq]
`))

	w.Header(2, "Rule Groups")
	var rows [][]string
	for _, group := range lint.Groups() {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/linting/rules#%s)", InlineCode(group), group),
			fmt.Sprintf("%d", len(lint.GetByGroup(group))),
			groupDescriptions[group],
		})
	}
	w.Table([]string{"Group", "Rules", "Description"}, rows)

	w.Header(2, "Disabling Linting")
	w.Paragraph("A file whose text contains " + InlineCode("// ece2300-lint off") + " is skipped entirely.")

	filename := filepath.Join(outDir, "index.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

// generateRulesPage documents every rule, grouped.
func generateRulesPage(outDir string, rules []lint.Rule) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Reference for every rtllint rule")
	w.GeneratedMarker()

	w.Header(1, "Rules")

	titleCaser := cases.Title(language.English)
	byGroup := make(map[string][]lint.Rule)
	for _, rule := range rules {
		byGroup[rule.Group] = append(byGroup[rule.Group], rule)
	}

	for _, group := range lint.Groups() {
		groupRules := byGroup[group]
		if len(groupRules) == 0 {
			continue
		}
		w.Line(fmt.Sprintf("## %s {#%s}", titleCaser.String(group), group))
		w.Newline()
		if desc := groupDescriptions[group]; desc != "" {
			w.Paragraph(desc)
		}
		for _, rule := range groupRules {
			writeRuleDoc(w, rule)
		}
	}

	filename := filepath.Join(outDir, "rules.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.Rule) {
	// ### R303 - BLKSEQ {#R303}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", rule.ID, rule.Name, rule.ID))
	w.Newline()

	w.Line(fmt.Sprintf("%s %s", Bold("Severity:"), InlineCode(rule.Severity.String())))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description))
	w.Line(fmt.Sprintf("%s %s", Bold("Message:"), InlineCode(rule.Message)))
	w.Newline()

	if rule.Rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(rule.Rationale)
	}
	if rule.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("verilog", rule.BadExample)
	}
	if rule.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("verilog", rule.GoodExample)
	}

	w.Line("---")
	w.Newline()
}
