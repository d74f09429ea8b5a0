package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// EnvPrefix is the prefix of environment variables read into the configuration.
const EnvPrefix = "RTLLINT_"

// configNames lists the config file names looked up in a directory, in order.
var configNames = []string{"rtllint.yaml", "rtllint.yml"}

// flagKeys maps flag names whose config key is not the snake_case form of the flag.
var flagKeys = map[string]string{
	"include-dir": "include_dirs",
	"define":      "defines",
	"rules":       "rules_file",
	"test":        "test_mode",
	"parser":      "parser_command",
	"state":       "state_path",
}

// pathFlags are flags holding paths that are made absolute against the
// working directory rather than the project root.
var pathFlags = []string{"rules", "scratch-dir", "state"}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// findConfigFile finds the config file to use.
// Priority: explicit path > rtllint.yaml > rtllint.yml in dir
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// configExistsIn checks if an rtllint config file exists in the directory.
func configExistsIn(dir string) bool {
	return findConfigFile("", dir) != ""
}

// findProjectRootUpward searches upward from startDir for an rtllint config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot determines the project root.
// Priority:
//  1. Directory of an explicit --config file
//  2. Search upward from CWD for rtllint.yaml
//  3. Current working directory
func inferProjectRoot(cfgFile string) string {
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
		return filepath.Dir(cfgFile)
	}

	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := findProjectRootUpward(cwd); root != "" {
		return root
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// FlagKey returns the config key a flag overrides. ok is false for flags
// that only affect a single command.
func FlagKey(name string) (key string, ok bool) {
	key = flagKey(name)
	for _, k := range Keys {
		if k == key {
			return key, true
		}
	}
	return "", false
}

// flagKey returns the config key a flag loads into.
func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// envValue converts an RTLLINT_* variable into a config key and value.
// List keys are comma separated, so RTLLINT_INCLUDE_DIRS=a,b behaves like
// two -I flags.
func envValue(name, value string) (string, interface{}) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	switch key {
	case "include_dirs", "defines", "disable": // ListKeys
		return key, splitNonEmpty(value, ",")
	case "parser_command":
		return key, strings.Fields(value)
	}
	return key, value
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	projectRoot := inferProjectRoot(cfgFile)

	// Paths given as flags are relative to CWD, not the project root.
	flagPaths := make(map[string]string)
	var flagIncludeDirs []string
	if flags != nil {
		for _, name := range pathFlags {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if v := f.Value.String(); v != "" {
					abs, err := filepath.Abs(v)
					if err != nil {
						abs = v
					}
					flagPaths[flagKey(name)] = abs
				}
			}
		}
		if f := flags.Lookup("include-dir"); f != nil && f.Changed {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				for _, dir := range sv.GetSlice() {
					abs, err := filepath.Abs(dir)
					if err != nil {
						abs = dir
					}
					flagIncludeDirs = append(flagIncludeDirs, abs)
				}
			}
		}
	}

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"scratch_dir": DefaultScratchDir,
		"rules_file":  DefaultRulesFile,
		"state_path":  DefaultStateFile,
		"test_mode":   false,
		"verbose":     false,
		"record":      false,
		"output":      DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile, projectRoot)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (RTLLINT_ prefix)
	// Transform: RTLLINT_SCRATCH_DIR -> scratch_dir
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key := flagKey(f.Name)
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				return key, sv.GetSlice()
			}
			if key == "parser_command" {
				return key, strings.Fields(f.Value.String())
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Set project root and resolve relative paths
	cfg.ProjectRoot = projectRoot
	if flagIncludeDirs != nil {
		cfg.IncludeDirs = flagIncludeDirs
	} else {
		for i, dir := range cfg.IncludeDirs {
			cfg.IncludeDirs[i] = resolvePathRelativeTo(dir, projectRoot)
		}
	}
	cfg.ScratchDir = resolveField(cfg.ScratchDir, flagPaths["scratch_dir"], projectRoot)
	cfg.RulesFile = resolveField(cfg.RulesFile, flagPaths["rules_file"], projectRoot)
	cfg.StatePath = resolveField(cfg.StatePath, flagPaths["state_path"], projectRoot)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// resolveField prefers the pre-computed flag path, otherwise resolves the
// configured value against the project root.
func resolveField(value, fromFlag, root string) string {
	if fromFlag != "" {
		return fromFlag
	}
	return resolvePathRelativeTo(value, root)
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
