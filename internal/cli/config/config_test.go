package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/rtllint/pkg/preprocess"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "rtllint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestLoadConfig_Defaults tests that defaults are applied and resolved against the project root.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := writeConfig(t, tmpDir, "verbose: false\n")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, tmpDir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(tmpDir, DefaultScratchDir), cfg.ScratchDir)
	assert.Equal(t, filepath.Join(tmpDir, DefaultRulesFile), cfg.RulesFile)
	assert.Equal(t, filepath.Join(tmpDir, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.TestMode)
	assert.Empty(t, cfg.IncludeDirs)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

// TestLoadConfig_FileValues tests reading every key from rtllint.yaml.
func TestLoadConfig_FileValues(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := writeConfig(t, tmpDir, `include_dirs:
  - rtl
  - /opt/ip
defines: [SYNTHESIS, WIDTH=8]
scratch_dir: out/clean
rules_file: cfg/rules.yaml
parser_command: [vfront, --json]
test_mode: true
record: true
disable: [ASSIGNORDER]
prohibited_constructs:
  custom:
    - pattern: '\bfork\b'
      description: fork blocks are not synthesizable
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(tmpDir, "rtl"), "/opt/ip"}, cfg.IncludeDirs)
	assert.Equal(t, []string{"SYNTHESIS", "WIDTH=8"}, cfg.Defines)
	assert.Equal(t, filepath.Join(tmpDir, "out", "clean"), cfg.ScratchDir)
	assert.Equal(t, filepath.Join(tmpDir, "cfg", "rules.yaml"), cfg.RulesFile)
	assert.Equal(t, []string{"vfront", "--json"}, cfg.ParserCommand)
	assert.True(t, cfg.TestMode)
	assert.True(t, cfg.Record)
	assert.Equal(t, []string{"ASSIGNORDER"}, cfg.Disable)

	require.Len(t, cfg.ProhibitedConstructs["custom"], 1)
	assert.Equal(t, `\bfork\b`, cfg.ProhibitedConstructs["custom"][0].Pattern)
	assert.Equal(t, "fork blocks are not synthesizable", cfg.ProhibitedConstructs["custom"][0].Description)
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := writeConfig(t, tmpDir, "output: text\n")

	t.Setenv("RTLLINT_OUTPUT", "markdown")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "output format")
	require.NoError(t, flags.Set("output", "json"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat, "flag value should override config file and env var")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := writeConfig(t, tmpDir, "output: text\n")

	t.Setenv("RTLLINT_OUTPUT", "markdown")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat, "env var should override config file")
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := writeConfig(t, tmpDir, "output: text\n")

	t.Setenv("RTLLINT_OUTPUT", "markdown")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "output format")

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat, "env var should be used when flag is not set")
}

// TestLoadConfig_EnvLists tests splitting of list-valued environment variables.
func TestLoadConfig_EnvLists(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := writeConfig(t, tmpDir, "verbose: false\n")

	t.Setenv("RTLLINT_DEFINES", "SYNTHESIS, WIDTH=8")
	t.Setenv("RTLLINT_DISABLE", "LATCH,XPROP")
	t.Setenv("RTLLINT_PARSER_COMMAND", "vfront  --json")
	t.Setenv("RTLLINT_INCLUDE_DIRS", "rtl, /opt/ip")
	t.Setenv("RTLLINT_TEST_MODE", "true")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"SYNTHESIS", "WIDTH=8"}, cfg.Defines)
	assert.Equal(t, []string{"LATCH", "XPROP"}, cfg.Disable)
	assert.Equal(t, []string{"vfront", "--json"}, cfg.ParserCommand)
	assert.Equal(t, []string{filepath.Join(tmpDir, "rtl"), "/opt/ip"}, cfg.IncludeDirs)
	assert.True(t, cfg.TestMode)
}

func TestFlagKey(t *testing.T) {
	tests := []struct {
		flag string
		key  string
		ok   bool
	}{
		{flag: "include-dir", key: "include_dirs", ok: true},
		{flag: "scratch-dir", key: "scratch_dir", ok: true},
		{flag: "rules", key: "rules_file", ok: true},
		{flag: "state", key: "state_path", ok: true},
		{flag: "output", key: "output", ok: true},
		{flag: "override", ok: false},
		{flag: "watch", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			key, ok := FlagKey(tt.flag)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

// TestLoadConfig_FlagMapping tests flags whose names differ from their config keys.
func TestLoadConfig_FlagMapping(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := writeConfig(t, tmpDir, `include_dirs: [from_file]
rules_file: from_file.yaml
`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringArrayP("include-dir", "I", nil, "include directory")
	flags.StringArrayP("define", "D", nil, "macro definition")
	flags.StringP("rules", "c", "", "rule configuration")
	flags.BoolP("test", "t", false, "test mode")
	flags.StringSlice("disable", nil, "disabled rules")
	flags.String("state", "", "state database")
	flags.String("parser", "", "front-end command")
	require.NoError(t, flags.Parse([]string{
		"--parser", "vfront --json",
		"-I", "inc", "-I", "lib",
		"-D", "A", "-D", "B=1,2",
		"-c", "custom.yaml",
		"-t",
		"--disable", "LATCH,NEGEDGE",
		"--state", "runs.db",
	}))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(cwd, "inc"), filepath.Join(cwd, "lib")}, cfg.IncludeDirs,
		"include dirs given as flags resolve against the working directory")
	assert.Equal(t, []string{"A", "B=1,2"}, cfg.Defines)
	assert.Equal(t, filepath.Join(cwd, "custom.yaml"), cfg.RulesFile)
	assert.Equal(t, filepath.Join(cwd, "runs.db"), cfg.StatePath)
	assert.True(t, cfg.TestMode)
	assert.Equal(t, []string{"LATCH", "NEGEDGE"}, cfg.Disable)
	assert.Equal(t, []string{"vfront", "--json"}, cfg.ParserCommand)
}

// TestLoadConfig_InvalidOutput tests that an unknown output format is rejected.
func TestLoadConfig_InvalidOutput(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := writeConfig(t, tmpDir, "output: html\n")

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

// TestLoadConfig_MissingExplicitFile tests that a missing --config file is an error.
func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestFindProjectRootUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "verbose: true\n")
	nested := filepath.Join(root, "rtl", "alu")
	require.NoError(t, os.MkdirAll(nested, 0750))

	assert.Equal(t, root, findProjectRootUpward(nested))
	assert.Empty(t, findProjectRootUpward(t.TempDir()))
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, findConfigFile("", dir))

	yml := filepath.Join(dir, "rtllint.yml")
	require.NoError(t, os.WriteFile(yml, []byte("verbose: true\n"), 0600))
	assert.Equal(t, yml, findConfigFile("", dir))

	yaml := writeConfig(t, dir, "verbose: true\n")
	assert.Equal(t, yaml, findConfigFile("", dir), "rtllint.yaml wins over rtllint.yml")
	assert.Equal(t, "explicit.yaml", findConfigFile("explicit.yaml", dir))
}

func TestResolvePathRelativeTo(t *testing.T) {
	tests := []struct {
		name string
		path string
		base string
		want string
	}{
		{name: "empty", path: "", base: "/proj", want: ""},
		{name: "absolute", path: "/abs/x", base: "/proj", want: "/abs/x"},
		{name: "relative", path: "rtl", base: "/proj", want: filepath.Join("/proj", "rtl")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolvePathRelativeTo(tt.path, tt.base))
		})
	}
}

// TestConfig_Validate tests the Config.Validate method.
func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})

	t.Run("empty scratch_dir", func(t *testing.T) {
		cfg := Default()
		cfg.ScratchDir = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scratch_dir is required")
	})

	t.Run("construct without pattern", func(t *testing.T) {
		cfg := Default()
		cfg.ProhibitedConstructs = map[string][]preprocess.Construct{"custom": {{Description: "x"}}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prohibited_constructs.custom[0]")
	})
}

func TestConfig_ValidateIncludeDirs(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.v")
	require.NoError(t, os.WriteFile(filePath, []byte("module m; endmodule\n"), 0600))

	cfg := Default()
	cfg.IncludeDirs = []string{dir, filepath.Join(dir, "missing"), filePath}

	errs := cfg.ValidateIncludeDirs()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "does not exist")
	assert.Contains(t, errs[1].Error(), "not a directory")
}

func TestGetLogger_Fallback(t *testing.T) {
	logger := GetLogger(context.Background())
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), 0))
}
