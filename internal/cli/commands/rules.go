package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/rtllint/internal/cli/output"
	"github.com/leapstack-labs/rtllint/pkg/core"
	"github.com/leapstack-labs/rtllint/pkg/lint"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by group (latch, xoptimism, always, gatelevel). A rule
can be looked up by name or by documentation ID. Rule names are what the
rule configuration file and --override refer to.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  rtllint rules

  # Show details for a specific rule
  rtllint rules LATCH
  rtllint rules R101

  # List rules in the always group
  rtllint rules --group always

  # Output as JSON
  rtllint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	var rules []lint.Rule
	if opts.Group != "" {
		rules = lint.GetByGroup(opts.Group)
		if len(rules) == 0 {
			return fmt.Errorf("unknown rule group %q (expected one of: %s)",
				opts.Group, strings.Join(lint.Groups(), ", "))
		}
	} else {
		rules = lint.GetAll()
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		listRulesMarkdown(r, rules, opts.Verbose)
	default:
		listRulesText(r, rules, opts.Verbose)
	}
	return nil
}

// groupRules splits rules by group, keeping the order of first appearance.
func groupRules(rules []lint.Rule) ([]string, map[string][]lint.Rule) {
	var order []string
	byGroup := make(map[string][]lint.Rule)
	for _, rule := range rules {
		if _, ok := byGroup[rule.Group]; !ok {
			order = append(order, rule.Group)
		}
		byGroup[rule.Group] = append(byGroup[rule.Group], rule)
	}
	return order, byGroup
}

func listRulesText(r *output.Renderer, rules []lint.Rule, verbose bool) {
	styles := r.Styles()
	titleCaser := cases.Title(language.English)

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	order, byGroup := groupRules(rules)
	for _, group := range order {
		r.Println(styles.Header2.Render(titleCaser.String(group)))

		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		if verbose {
			t.AppendHeader(table.Row{"ID", "Name", "Severity", "Description", "Rationale"})
		} else {
			t.AppendHeader(table.Row{"ID", "Name", "Severity", "Description"})
		}
		for _, rule := range byGroup[group] {
			row := table.Row{rule.ID, rule.Name, rule.Severity.String(), rule.Description}
			if verbose {
				row = append(row, truncateOneLine(rule.Rationale, 60))
			}
			t.AppendRow(row)
		}
		t.Render()
		r.Println("")
	}

	r.Println(styles.Muted.Render("Use 'rtllint rules <rule>' for detailed documentation"))
	r.Println("")
}

func listRulesMarkdown(r *output.Renderer, rules []lint.Rule, verbose bool) {
	titleCaser := cases.Title(language.English)

	r.Println(output.FormatHeader(1, "Lint Rules"))
	r.Println("")

	order, byGroup := groupRules(rules)
	for _, group := range order {
		r.Println(output.FormatHeader(2, titleCaser.String(group)))
		r.Println("")
		for _, rule := range byGroup[group] {
			r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Name, rule.Severity.String())
			if verbose {
				r.Println("  " + rule.Description)
				if rule.Rationale != "" {
					r.Println("  > " + rule.Rationale)
				}
			}
		}
		r.Println("")
	}
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules  []core.RuleInfo `json:"rules"`
	Groups map[string]int  `json:"groups"`
	Total  int             `json:"total"`
}

func listRulesJSON(r *output.Renderer, rules []lint.Rule) error {
	out := RulesJSONOutput{
		Rules:  make([]core.RuleInfo, 0, len(rules)),
		Groups: make(map[string]int),
		Total:  len(rules),
	}
	for _, rule := range rules {
		out.Rules = append(out.Rules, rule.Info())
		out.Groups[rule.Group]++
	}
	return r.JSON(out)
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	rule, ok := lint.GetByName(name)
	if !ok {
		return fmt.Errorf("rule %q not found", name)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(ruleDetailJSON(rule))
	case output.ModeMarkdown:
		showRuleMarkdown(r, rule)
	default:
		showRuleText(r, rule)
	}
	return nil
}

// RuleDetailJSON is the JSON output for a single rule.
type RuleDetailJSON struct {
	core.RuleInfo
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
}

func ruleDetailJSON(rule lint.Rule) RuleDetailJSON {
	return RuleDetailJSON{
		RuleInfo:    rule.Info(),
		Rationale:   rule.Rationale,
		BadExample:  rule.BadExample,
		GoodExample: rule.GoodExample,
	}
}

func showRuleText(r *output.Renderer, rule lint.Rule) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"),
		severityStyle(styles, rule.Severity).Render(rule.Severity.String()))
	r.Printf("  %s: %s\n", styles.Bold.Render("Message"), rule.Message)
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}
}

func showRuleMarkdown(r *output.Renderer, rule lint.Rule) {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Group:** %s | **Severity:** `%s`\n\n", rule.Group, rule.Severity.String())
	r.Println(rule.Description)
	r.Println("")
	r.Println(output.FormatKeyValue("Message", "`"+rule.Message+"`"))
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}
	if rule.BadExample != "" {
		r.Println("## Bad Example")
		r.Println("")
		r.Println(output.FormatCodeBlock("verilog", rule.BadExample))
		r.Println("")
	}
	if rule.GoodExample != "" {
		r.Println("## Good Example")
		r.Println("")
		r.Println(output.FormatCodeBlock("verilog", rule.GoodExample))
		r.Println("")
	}
}

func severityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
