package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/rtllint/internal/cli/output"
	"github.com/leapstack-labs/rtllint/internal/state"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history commands.
type HistoryOptions struct {
	Limit  int
	Format string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded lint runs",
		Long: `List lint runs recorded with 'rtllint lint --record', newest first.

Runs are stored in the state database (default .rtllint/history.db).
Use 'rtllint history show <id>' to see the violations of one run. A unique
prefix of the run ID is enough.`,
		Example: `  rtllint history
  rtllint history --limit 5
  rtllint history show 3f2a`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")

	cmd.AddCommand(newHistoryShowCommand(opts))
	return cmd
}

func newHistoryShowCommand(opts *HistoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the results of one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, args[0], opts)
		},
	}
}

func runHistoryList(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	r := cmdCtx.Renderer

	store, err := openStore(cmdCtx.Cfg.StatePath, cmdCtx.Logger, false)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := make([]output.HistoryRun, 0, len(runs))
	for _, run := range runs {
		out = append(out, historyRun(run))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Lint History"))
		r.Println("")
		if len(out) == 0 {
			r.Println("No recorded runs.")
			return nil
		}
		r.Println("| ID | Started | Status | Violations | Findings | Errors | Inputs |")
		r.Println("|----|---------|--------|------------|----------|--------|--------|")
		for _, run := range out {
			r.Printf("| %s | %s | %s | %d | %d | %d | %s |\n",
				shortID(run.ID), run.StartedAt.Local().Format(time.DateTime), run.Status,
				run.Violations, run.Findings, run.Errors, strings.Join(run.Inputs, ", "))
		}
	default:
		if len(out) == 0 {
			r.Muted("No recorded runs.")
			return nil
		}
		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Started", "Status", "Violations", "Findings", "Errors", "Inputs"})
		for _, run := range out {
			t.AppendRow(table.Row{
				shortID(run.ID),
				run.StartedAt.Local().Format(time.DateTime),
				run.Status,
				run.Violations,
				run.Findings,
				run.Errors,
				strings.Join(run.Inputs, ", "),
			})
		}
		t.Render()
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, id string, opts *HistoryOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	r := cmdCtx.Renderer
	ctx := cmd.Context()

	store, err := openStore(cmdCtx.Cfg.StatePath, cmdCtx.Logger, false)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, state.ErrRunNotFound) {
			return fmt.Errorf("run %q not found", id)
		}
		return err
	}
	violations, err := store.GetViolations(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to load violations: %w", err)
	}
	findings, err := store.GetFindings(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to load findings: %w", err)
	}
	fileErrors, err := store.GetErrors(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to load errors: %w", err)
	}

	detail := output.HistoryDetail{
		HistoryRun:    historyRun(run),
		ViolationList: make([]output.LintViolation, 0, len(violations)),
		FindingList:   findingsJSON(findings),
	}
	if detail.FindingList == nil {
		detail.FindingList = []output.LintFinding{}
	}
	for _, v := range violations {
		detail.ViolationList = append(detail.ViolationList, violationJSON(v.Module, v.Rule, v.Message, v.Line))
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(detail)
	}

	styles := r.Styles()
	r.Header(1, "Run "+run.ID)
	r.Println(output.FormatKeyValue("Status", string(run.Status)))
	r.Println(output.FormatKeyValue("Started", run.StartedAt.Local().Format(time.DateTime)))
	if run.FinishedAt != nil {
		r.Println(output.FormatKeyValue("Duration", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()))
	}
	r.Println(output.FormatKeyValue("Inputs", strings.Join(run.Inputs, ", ")))
	r.Println("")

	file := ""
	for _, v := range violations {
		if v.File != file {
			file = v.File
			r.Println(styles.FilePath.Render(file))
		}
		r.Printf("  - %s\n", v.Violation.String())
	}
	if len(violations) > 0 {
		r.Println("")
	}
	if len(findings) > 0 {
		r.Printf("Found %d prohibited construct(s):\n", len(findings))
		for _, f := range findings {
			r.Println("  " + f.String())
		}
		r.Println("")
	}
	for _, fe := range fileErrors {
		r.Println(styles.Error.Render(fmt.Sprintf("Error: %s: %s", fe.Path, fe.Message)))
	}

	if run.Status == state.RunStatusPassed {
		r.Success("No violations recorded")
	}
	return nil
}

func historyRun(run *state.Run) output.HistoryRun {
	inputs := run.Inputs
	if inputs == nil {
		inputs = []string{}
	}
	return output.HistoryRun{
		ID:         run.ID,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Inputs:     inputs,
		Status:     string(run.Status),
		Violations: run.Totals.Violations,
		Findings:   run.Totals.Findings,
		Errors:     run.Totals.Errors,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
