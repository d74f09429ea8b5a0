// Package config provides configuration management for the rtllint CLI.
//
// Settings are layered with koanf: built-in defaults, then rtllint.yaml,
// then RTLLINT_* environment variables, then explicitly set flags.
package config

import "github.com/leapstack-labs/rtllint/pkg/preprocess"

// Config holds all CLI configuration options.
type Config struct {
	IncludeDirs          []string                          `koanf:"include_dirs"`
	Defines              []string                          `koanf:"defines"`
	ScratchDir           string                            `koanf:"scratch_dir"`
	RulesFile            string                            `koanf:"rules_file"`
	ParserCommand        []string                          `koanf:"parser_command"`
	TestMode             bool                              `koanf:"test_mode"`
	Verbose              bool                              `koanf:"verbose"`
	OutputFormat         string                            `koanf:"output"`
	Record               bool                              `koanf:"record"`
	StatePath            string                            `koanf:"state_path"`
	Disable              []string                          `koanf:"disable"`
	ProhibitedConstructs map[string][]preprocess.Construct `koanf:"prohibited_constructs"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Keys lists every configuration key in the order rtllint.yaml documents them.
var Keys = []string{
	"include_dirs", "defines", "scratch_dir", "parser_command", "test_mode",
	"rules_file", "disable", "prohibited_constructs",
	"output", "verbose", "record", "state_path",
}

// ListKeys are the keys whose RTLLINT_* variable is a comma separated list.
var ListKeys = []string{"include_dirs", "defines", "disable"}

// Default configuration values.
const (
	DefaultScratchDir = preprocess.DefaultScratchDir
	DefaultRulesFile  = "lint_config.yaml"
	DefaultStateFile  = ".rtllint/history.db"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Default returns a configuration populated with defaults only.
func Default() *Config {
	return &Config{
		ScratchDir:   DefaultScratchDir,
		RulesFile:    DefaultRulesFile,
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
	}
}
