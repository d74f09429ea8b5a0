package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/rtllint/internal/cli/output"
	"github.com/spf13/cobra"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format    string // Output format: text, markdown, json
	Override  string // JSON module -> rules replacing the configured rules
	XpropComb string // JSON module -> signals declared with the combinational macro
	XpropSeq  string // JSON module -> signals declared with the sequential macro
	Watch     bool   // Re-run when a visited file changes
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint <file>...",
		Short: "Lint Verilog/SystemVerilog sources",
		Long: `Check RTL sources against the configured style rules.

Each input is resolved through its include closure, cleaned into the scratch
directory and scanned for prohibited constructs. The cleaned top-level
targets are then parsed and every module is checked against the rules
enabled for it in the rule configuration file.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint one file with the rules in lint_config.yaml
  rtllint lint rtl/alu.v

  # Lint every source below rtl/ with extra include directories
  rtllint lint -I rtl/include -I ip 'rtl/**/*.sv'

  # Replace the configured rules for one module
  rtllint lint top.v --override '{"top": ["LATCH", "CASEDEFAULT"]}'

  # Report prohibited constructs without failing
  rtllint lint --test tb/alu_tb.v

  # Re-run on every save and keep a history
  rtllint lint --watch --record rtl/alu.v`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	addPipelineFlags(cmd.Flags())
	cmd.Flags().StringP("rules", "c", "", "Rule configuration file (default lint_config.yaml)")
	cmd.Flags().StringSlice("disable", nil, "Rule names to disable for every module")
	cmd.Flags().Bool("record", false, "Record the run in the history database")
	cmd.Flags().StringVar(&opts.Override, "override", "", "JSON object of module -> rule names replacing the configured rules")
	cmd.Flags().StringVar(&opts.XpropComb, "xprop-comb", "", "JSON object of module -> signals treated as combinational xprop declarations")
	cmd.Flags().StringVar(&opts.XpropSeq, "xprop-seq", "", "JSON object of module -> signals treated as sequential xprop declarations")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when any file in the include closure changes")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)

	inputs, err := ExpandInputs(args)
	if err != nil {
		return err
	}

	p, err := newPipeline(cmdCtx.Cfg, cmdCtx.Logger, pipelineOptions{
		Override:  opts.Override,
		XpropComb: opts.XpropComb,
		XpropSeq:  opts.XpropSeq,
	})
	if err != nil {
		return err
	}

	if opts.Watch {
		return watchLint(cmd.Context(), cmdCtx, p, inputs)
	}

	report := lintOnce(cmd.Context(), cmdCtx, p, inputs)
	if report.Totals().Failed() {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// lintOnce runs the pipeline, records the run when configured and renders
// the report.
func lintOnce(ctx context.Context, cmdCtx *CommandContext, p *pipeline, inputs []string) *lintReport {
	if ctx == nil {
		ctx = context.Background()
	}
	report := p.Run(ctx, inputs)

	var runID string
	if cmdCtx.Cfg.Record {
		id, err := recordRun(ctx, cmdCtx, inputs, report)
		if err != nil {
			cmdCtx.Logger.Warn("failed to record lint run", slog.String("error", err.Error()))
		}
		runID = id
	}

	renderLintReport(cmdCtx.Renderer, report, runID)
	return report
}

// renderLintReport writes the report in the renderer's mode.
func renderLintReport(r *output.Renderer, report *lintReport, runID string) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(lintJSON(report, runID))
		return
	}

	styles := r.Styles()
	for _, f := range report.Files {
		if f.Disabled {
			r.Println(styles.Muted.Render(fmt.Sprintf("%s: linting disabled by marker", f.Path)))
			continue
		}

		hasOutput := len(f.Findings) > 0 || len(f.Violations) > 0 || len(f.Errors) > 0
		if !hasOutput {
			r.StatusLine(f.Path, "clean", "")
			continue
		}

		if r.EffectiveMode() == output.ModeMarkdown {
			r.Println(output.FormatHeader(2, f.Path))
		} else {
			r.Println(styles.FilePath.Render(f.Path))
		}
		r.Println("")

		if len(f.Findings) > 0 {
			r.Printf("Found %d prohibited construct(s) in the cleaned files.\n\n", len(f.Findings))
			for _, finding := range f.Findings {
				r.Println(styles.Warning.Render(finding.String()))
			}
			if !f.findingsFail() {
				r.Println(styles.Muted.Render("Test mode: prohibited constructs are reported but do not fail the run."))
			} else {
				r.Println(styles.Muted.Render("Analysis skipped until the prohibited constructs are removed."))
			}
			r.Println("")
		}

		for _, fe := range f.Errors {
			r.Println(styles.Error.Render("Error: " + fe.Error()))
		}
		if len(f.Errors) > 0 {
			r.Println("")
		}

		if len(f.Violations) > 0 {
			r.Printf("Found %d violation(s):\n", len(f.Violations))
			for _, v := range f.Violations {
				r.Printf("  - Module '%s': [%s] %s (line %d)\n",
					styles.Module.Render(v.Module), styles.Rule.Render(v.Rule), v.Message, v.Line)
			}
			r.Println("")
		}
	}

	totals := report.Totals()
	if totals.Failed() {
		r.Println(styles.Error.Render(fmt.Sprintf("Linting finished with %d total violation(s)/error(s).",
			totals.Violations+totals.Findings+totals.Errors)))
	} else {
		r.Success("No violations found")
	}
	if runID != "" {
		r.Println(styles.Muted.Render("Recorded run " + runID))
	}
}

func lintJSON(report *lintReport, runID string) output.LintOutput {
	totals := report.Totals()
	out := output.LintOutput{
		Summary: output.LintSummary{
			Files:      len(report.Files),
			Violations: totals.Violations,
			Findings:   totals.Findings,
			Errors:     totals.Errors,
			Passed:     !totals.Failed(),
		},
		Files: make([]output.LintFileResult, 0, len(report.Files)),
		RunID: runID,
	}
	for _, f := range report.Files {
		fr := output.LintFileResult{
			Path:     f.Path,
			Disabled: f.Disabled,
			Targets:  f.Targets,
			Findings: findingsJSON(f.Findings),
		}
		for _, v := range f.Violations {
			fr.Violations = append(fr.Violations, violationJSON(v.Module, v.Rule, v.Message, v.Line))
		}
		for _, fe := range f.Errors {
			fr.Errors = append(fr.Errors, fe.Error())
		}
		out.Files = append(out.Files, fr)
	}
	return out
}
