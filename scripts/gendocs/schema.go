package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/rtllint/internal/cli/config"
	"github.com/leapstack-labs/rtllint/pkg/preprocess"
)

// generateSchemaDocs generates the rtllint.yaml reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration doc: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField describes one key of rtllint.yaml.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "input", "lint", "output"
}

// getConfigSchema mirrors the koanf keys of config.Config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "include_dirs", Type: "[]string", Description: "Directories searched for include files", Category: "input"},
		{Name: "defines", Type: "[]string", Description: "Preprocessor defines passed to the parser", Category: "input"},
		{Name: "scratch_dir", Type: "string", Default: config.DefaultScratchDir, Description: "Directory that receives cleaned sources", Category: "input"},
		{Name: "parser_command", Type: "[]string", Description: "External parser command that prints a JSON syntax tree", Category: "input"},
		{Name: "test_mode", Type: "bool", Default: "false", Description: "Report prohibited constructs without failing", Category: "input"},

		{Name: "rules_file", Type: "string", Default: config.DefaultRulesFile, Description: "Rule configuration file with rule-sets and modules", Category: "lint"},
		{Name: "disable", Type: "[]string", Description: "Rules removed from every module", Category: "lint"},
		{Name: "prohibited_constructs", Type: "map[string][]construct", Description: "Extra prohibited constructs by category", Category: "lint"},

		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, markdown, json", Category: "output"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Enable debug logging", Category: "output"},
		{Name: "record", Type: "bool", Default: "false", Description: "Record lint runs in the history database", Category: "output"},
		{Name: "state_path", Type: "string", Default: config.DefaultStateFile, Description: "Path of the lint history database", Category: "output"},
	}
}

var configCategories = []struct {
	key, title, intro string
}{
	{"input", "Input Settings", "How sources are located and preprocessed:"},
	{"lint", "Lint Settings", "Which rules run and which constructs are prohibited:"},
	{"output", "Output Settings", "Reporting and run history:"},
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "rtllint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("rtllint reads `rtllint.yaml` (or `rtllint.yml`) from the current directory or the nearest parent. " +
		"Values are layered: defaults, then the file, then `RTLLINT_*` environment variables, then command-line flags. " +
		"Relative paths in the file are resolved against the directory that contains it.")

	fields := getConfigSchema()
	headers := []string{"Field", "Type", "Default", "Description"}
	for _, cat := range configCategories {
		w.Header(2, cat.title)
		w.Paragraph(cat.intro)

		var rows [][]string
		for _, f := range fields {
			if f.Category != cat.key {
				continue
			}
			defVal := "-"
			if f.Default != "" {
				defVal = InlineCode(f.Default)
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, f.Description})
		}
		w.Table(headers, rows)
	}

	w.Header(2, "Prohibited Constructs")
	w.Paragraph("These constructs are always reported. Entries under `prohibited_constructs` are added to them:")
	for _, cat := range preprocess.DefaultCatalog() {
		w.Header(3, cat.Name)
		var rows [][]string
		for _, c := range cat.Constructs {
			rows = append(rows, []string{InlineCode(c.Pattern), c.Description})
		}
		w.Table([]string{"Pattern", "Description"}, rows)
	}

	w.Header(2, "Example")
	w.CodeBlock("yaml", strings.TrimSpace(`
include_dirs:
  - rtl/include
defines:
  - SYNTHESIS
scratch_dir: .rtllint/build
rules_file: lint_config.yaml
parser_command: ["rtl-parse", "--json"]
disable:
  - NEGEDGE
prohibited_constructs:
  Verification:
    - pattern: '\$display'
      description: "$display calls"
`))

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
