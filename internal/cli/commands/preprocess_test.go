package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/rtllint/internal/cli/output"
	"github.com/leapstack-labs/rtllint/internal/testutil"
	"github.com/leapstack-labs/rtllint/pkg/preprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessCommand_WritesCleanedClosure(t *testing.T) {
	dir := setupProject(t)
	args := append(projectArgs(dir)[2:], filepath.Join(dir, "rtl", "alu.v"))

	stdout, _, err := runCommand(t, NewPreprocessCommand(), args...)
	require.NoError(t, err)

	assert.Contains(t, stdout, "## "+filepath.Join(dir, "rtl", "alu.v"))
	assert.Contains(t, stdout, "- **Targets:** "+filepath.Join(dir, "build", "alu.v"))
	assert.Contains(t, stdout, "- **Visited:** 2 file(s)")
	assert.Contains(t, stdout, "- **xprop (comb):** none")

	assert.FileExists(t, filepath.Join(dir, "build", "alu.v"))
	assert.FileExists(t, filepath.Join(dir, "build", "alu_pkg.vh"))
}

func TestPreprocessCommand_JSON(t *testing.T) {
	dir := setupProject(t)
	testutil.WriteFiles(t, dir, map[string]string{
		"rtl/mux.v": "module mux (input logic s, output logic y);\n" +
			"  `ECE2300_XPROP(y, s)\n" +
			"  `ECE2300_SEQ_XPROP(q, s)\n" +
			"endmodule\n",
	})
	args := append(projectArgs(dir)[2:], "--format", "json", filepath.Join(dir, "rtl", "mux.v"))

	stdout, _, err := runCommand(t, NewPreprocessCommand(), args...)
	require.NoError(t, err)

	var out output.PreprocessOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Files, 1)
	f := out.Files[0]
	assert.Equal(t, []string{filepath.Join(dir, "build", "mux.v")}, f.Targets)
	assert.Equal(t, map[string][]string{"mux": {"y"}}, f.Comb)
	assert.Equal(t, map[string][]string{"mux": {"q"}}, f.Seq)
	assert.Empty(t, f.Findings)
}

func TestPreprocessCommand_Findings(t *testing.T) {
	dir := setupProject(t)
	testutil.WriteFiles(t, dir, map[string]string{
		"rtl/bad.v": "module bad;\n  reg r;\nendmodule\n",
	})
	input := filepath.Join(dir, "rtl", "bad.v")

	t.Run("fails outside test mode", func(t *testing.T) {
		args := append(projectArgs(dir)[2:], input)
		stdout, _, err := runCommand(t, NewPreprocessCommand(), args...)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "preprocessing failed for 1 file(s)")
		assert.Contains(t, stdout, "Found 1 prohibited construct(s) in the cleaned files.")
		assert.Contains(t, stdout, "Legacy `reg` declarations are prohibited")
	})

	t.Run("passes in test mode", func(t *testing.T) {
		args := append(projectArgs(dir)[2:], "--test", input)
		stdout, _, err := runCommand(t, NewPreprocessCommand(), args...)

		require.NoError(t, err)
		assert.Contains(t, stdout, "Test mode")
	})
}

func TestPreprocessCommand_MissingInput(t *testing.T) {
	dir := setupProject(t)
	args := append(projectArgs(dir)[2:], filepath.Join(dir, "rtl", "missing.v"))

	_, stderr, err := runCommand(t, NewPreprocessCommand(), args...)
	require.Error(t, err)
	assert.Contains(t, stderr, "missing.v")
}

func TestPreprocessCommand_ConfiguredConstructs(t *testing.T) {
	dir := setupProject(t)
	testutil.WriteFiles(t, dir, map[string]string{
		"rtlcfg/rtllint.yaml": "prohibited_constructs:\n" +
			"  house_style:\n" +
			"    - pattern: '\\bwire\\b'\n" +
			"      description: Use logic instead of wire\n",
		"rtl/w.v": "module w;\n  wire a;\nendmodule\n",
	})

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(filepath.Join(dir, "rtlcfg")))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	args := append(projectArgs(dir)[2:], "--format", "json", filepath.Join(dir, "rtl", "w.v"))
	stdout, _, err := runCommand(t, NewPreprocessCommand(), args...)
	require.Error(t, err)

	var out output.PreprocessOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Files, 1)
	require.Len(t, out.Files[0].Findings, 1)
	assert.Equal(t, "house_style", out.Files[0].Findings[0].Category)
	assert.Equal(t, 2, out.Files[0].Findings[0].Line)
}

func TestFormatRegistry(t *testing.T) {
	assert.Equal(t, "none", formatRegistry(preprocess.Registry{}))
	reg := preprocess.Registry{}
	reg.Add("b", "x")
	reg.Add("a", "y", "z")
	assert.Equal(t, "a: y, z; b: x", formatRegistry(reg))
}
