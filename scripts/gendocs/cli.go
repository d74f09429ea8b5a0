package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/rtllint/internal/cli"
	"github.com/leapstack-labs/rtllint/internal/cli/commands"
	"github.com/leapstack-labs/rtllint/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configCommands load the project configuration, so their flags map onto
// config keys.
var configCommands = []string{"lint", "preprocess"}

// exitStatus describes when each command exits with status 1.
var exitStatus = map[string]string{
	"lint":       "a rule violation, a file error, or a prohibited construct outside test mode",
	"preprocess": "a prohibited construct or an input whose includes cannot be resolved",
	"rules":      "an unknown rule name or group",
	"history":    "no history database, or a run ID that matches nothing",
}

var envDescriptions = map[string]string{
	"include_dirs":          "Include search directories",
	"defines":               "Preprocessor defines (`NAME` or `NAME=VALUE`)",
	"scratch_dir":           "Directory for cleaned sources",
	"parser_command":        "External parser command, split on whitespace",
	"test_mode":             "Report prohibited constructs without failing",
	"rules_file":            "Rule configuration file",
	"disable":               "Rule names disabled for every module",
	"prohibited_constructs": "Per-module constructs (set in rtllint.yaml)",
	"output":                "Output format",
	"verbose":               "Verbose logging",
	"record":                "Record lint runs in the history database",
	"state_path":            "Lint history database path",
}

// generateCLIDocs writes index.md and one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	if err := writePage(outDir, "index.md", cliIndex(rootCmd)); err != nil {
		return err
	}
	for _, cmd := range visibleCommands(rootCmd) {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd)); err != nil {
			return err
		}
	}
	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	log.Printf("  Generated %s", name)
	return nil
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "completion" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func cliIndex(rootCmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for rtllint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("rtllint checks Verilog and SystemVerilog sources against per-module RTL style rules, reports prohibited constructs, and keeps a history of lint runs.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/rtllint/cmd/rtllint@latest\nrtllint lint rtl/*.v")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(rootCmd) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags(), true)

	w.Header(2, "Pipeline Options")
	w.Paragraph("`lint` and `preprocess` share the flags that control include resolution and macro cleaning:")
	writeFlagsTable(w, commands.PipelineFlags(), true)

	writeConfiguration(w)

	w.Header(2, "Exit Status")
	exitRows := [][]string{{InlineCode("0"), "Success"}}
	for _, cmd := range visibleCommands(rootCmd) {
		if when, ok := exitStatus[cmd.Name()]; ok {
			exitRows = append(exitRows, []string{InlineCode("1"), fmt.Sprintf("%s: %s", InlineCode(cmd.Name()), when)})
		}
	}
	w.Table([]string{"Code", "Meaning"}, exitRows)
	return w
}

// writeConfiguration documents how values are layered and the RTLLINT_*
// variables, one per config key.
func writeConfiguration(w *MarkdownWriter) {
	w.Header(2, "Configuration")
	w.Paragraph("Each setting is resolved from these sources, later ones winning:")
	w.BulletList([]string{
		"built-in defaults",
		"`rtllint.yaml` in the project root, or the file named by `--config`",
		fmt.Sprintf("%s environment variables", InlineCode(config.EnvPrefix+"*")),
		"command-line flags that were set explicitly",
	})
	w.Paragraph("Relative paths are resolved against the directory holding the config file.")

	w.Header(3, "Environment Variables")
	var rows [][]string
	for _, key := range config.Keys {
		desc := envDescriptions[key]
		if slices.Contains(config.ListKeys, key) {
			desc += " (comma separated)"
		}
		rows = append(rows, []string{
			InlineCode(config.EnvPrefix + strings.ToUpper(key)),
			InlineCode(key),
			desc,
		})
	}
	w.Table([]string{"Variable", "Config key", "Description"}, rows)
}

func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	useLine := "rtllint " + strings.TrimPrefix(cmd.UseLine(), "rtllint ")
	if cmd.HasSubCommands() {
		useLine = fmt.Sprintf("rtllint %s <subcommand> [options]", cmd.Name())
	}
	w.CodeBlock("bash", useLine)

	if cmd.HasSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if !sub.Hidden {
				rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
			}
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	configBacked := slices.Contains(configCommands, cmd.Name())
	pipeline := commands.PipelineFlags()
	own := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	shared := pflag.NewFlagSet("pipeline", pflag.ContinueOnError)
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if pipeline.Lookup(f.Name) != nil {
			shared.AddFlag(f)
		} else {
			own.AddFlag(f)
		}
	})
	cmd.PersistentFlags().VisitAll(own.AddFlag)

	if own.HasAvailableFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, own, configBacked)
	}
	if shared.HasAvailableFlags() {
		w.Header(2, "Pipeline Options")
		writeFlagsTable(w, shared, true)
	}
	if cmd.HasAvailableInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags(), true)
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	if when, ok := exitStatus[cmd.Name()]; ok {
		w.Header(2, "Exit Status")
		w.Paragraph(fmt.Sprintf("Exits 1 on %s, and 0 otherwise.", when))
	}
	return w
}

// writeFlagsTable lists flags. With configBacked set, a flag that overrides
// a config key shows that key.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet, configBacked bool) {
	headers := []string{"Option", "Short", "Default", "Description"}
	if configBacked {
		headers = append(headers, "Config key")
	}

	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		defVal := f.DefValue
		if f.Value.Type() == "string" && defVal != "" {
			defVal = InlineCode(defVal)
		}
		if defVal == "[]" {
			defVal = ""
		}

		row := []string{InlineCode("--" + f.Name), short, defVal, cleanDescription(f.Usage)}
		if configBacked {
			key := ""
			if k, ok := config.FlagKey(f.Name); ok {
				key = InlineCode(k)
			}
			row = append(row, key)
		}
		rows = append(rows, row)
	})
	w.Table(headers, rows)
}

// dedent strips the indentation shared by every non-blank line of s.
func dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first || !strings.HasPrefix(indent, prefix) {
			prefix = commonPrefix(prefix, indent, first)
		}
		first = false
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func commonPrefix(a, b string, first bool) string {
	if first {
		return b
	}
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}
