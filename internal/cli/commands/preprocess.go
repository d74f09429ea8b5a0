package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/rtllint/internal/cli/output"
	"github.com/leapstack-labs/rtllint/pkg/preprocess"
	"github.com/spf13/cobra"
)

// PreprocessOptions holds options for the preprocess command.
type PreprocessOptions struct {
	Format string
}

// NewPreprocessCommand creates the preprocess command.
func NewPreprocessCommand() *cobra.Command {
	opts := &PreprocessOptions{}
	cmd := &cobra.Command{
		Use:   "preprocess <file>...",
		Short: "Resolve includes and write cleaned sources",
		Long: `Run include resolution without parsing or rule checks.

Every file reachable through include directives is cleaned into the scratch
directory and scanned for prohibited constructs. The command prints the
cleaned top-level targets and the X-propagation declarations found in each
module, which is useful for checking what the linter will see.`,
		Example: `  rtllint preprocess -I rtl/include rtl/top.v
  rtllint preprocess --format json rtl/top.v`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocess(cmd, args, opts)
		},
	}

	addPipelineFlags(cmd.Flags())
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runPreprocess(cmd *cobra.Command, args []string, opts *PreprocessOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	r := cmdCtx.Renderer

	inputs, err := ExpandInputs(args)
	if err != nil {
		return err
	}

	resolver := newResolver(cmdCtx.Cfg, cmdCtx.Logger)
	var files []output.PreprocessFile
	failed := 0
	for _, input := range inputs {
		res, err := resolver.Run(cmd.Context(), input)
		if err != nil {
			files = append(files, output.PreprocessFile{Input: input, Error: err.Error()})
			failed++
			continue
		}
		if res.Failed() {
			failed++
		}
		files = append(files, output.PreprocessFile{
			Input:    input,
			Disabled: res.Disabled,
			Targets:  res.Targets,
			Visited:  res.Visited,
			Comb:     res.Comb,
			Seq:      res.Seq,
			Findings: findingsJSON(res.Findings),
			TestMode: res.TestMode,
		})
		if r.EffectiveMode() != output.ModeJSON {
			renderPreprocessFile(r, input, res)
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		if files == nil {
			files = []output.PreprocessFile{}
		}
		if err := r.JSON(output.PreprocessOutput{Files: files}); err != nil {
			return err
		}
	} else {
		for _, f := range files {
			if f.Error != "" {
				r.Error(fmt.Sprintf("%s: %s", f.Input, f.Error))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("preprocessing failed for %d file(s)", failed)
	}
	return nil
}

func renderPreprocessFile(r *output.Renderer, input string, res *preprocess.Result) {
	r.Header(2, input)
	if res.Disabled {
		r.Muted("linting disabled by marker")
		r.Println("")
		return
	}

	r.Println(output.FormatKeyValue("Targets", strings.Join(res.Targets, ", ")))
	r.Println(output.FormatKeyValue("Visited", fmt.Sprintf("%d file(s)", len(res.Visited))))
	r.Println(output.FormatKeyValue("xprop (comb)", formatRegistry(res.Comb)))
	r.Println(output.FormatKeyValue("xprop (seq)", formatRegistry(res.Seq)))
	r.Println("")

	if len(res.Findings) > 0 {
		_ = preprocess.WriteFindings(r.Writer(), res.Findings)
		if res.TestMode {
			r.Muted("Test mode: prohibited constructs are reported but do not fail the run.")
		}
		r.Println("")
	}
}

// formatRegistry renders "mod: a, b; mod2: c" in module order.
func formatRegistry(reg preprocess.Registry) string {
	if len(reg) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(reg))
	for _, module := range reg.Modules() {
		parts = append(parts, module+": "+strings.Join(reg[module], ", "))
	}
	return strings.Join(parts, "; ")
}
