package commands

import (
	"log/slog"

	"github.com/leapstack-labs/rtllint/internal/cli/config"
	"github.com/leapstack-labs/rtllint/internal/cli/output"
	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd. The renderer follows
// the configured output mode unless format is set.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := getConfig(cmd)
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration. When a command runs
// without the root command (as in tests), the configuration is loaded from
// the command's own flags.
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cfg, err := config.LoadConfig("", cmd.Flags())
	if err != nil {
		config.GetLogger(cmd.Context()).Warn("using default configuration", slog.String("error", err.Error()))
		return config.Default()
	}
	return cfg
}

// newParser builds the HDL front-end from the configured command.
// Tests replace it to avoid depending on an external tool.
var newParser = func(command []string) ast.Parser {
	return ast.NewCommandParser(command)
}
