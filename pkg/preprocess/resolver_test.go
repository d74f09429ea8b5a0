package preprocess

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/rtllint/internal/testutil"
)

func newTestResolver(t *testing.T, includeDirs ...string) (*Resolver, string) {
	t.Helper()
	scratch := filepath.Join(t.TempDir(), "build")
	return NewResolver(Options{
		IncludeDirs: includeDirs,
		ScratchDir:  scratch,
		Logger:      testutil.NewTestLogger(t),
	}), scratch
}

func basenames(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	return out
}

func TestResolver_DiamondAndSelfCycle(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"top.v": "`include \"a.v\"\n`include \"b.v\"\nmodule top; endmodule\n",
		"a.v":   "`include \"c.v\"\nmodule a; endmodule\n",
		"b.v":   "`include \"./c.v\"\nmodule b; endmodule\n",
		"c.v":   "`include \"c.v\"\nmodule c; endmodule\n",
	})
	r, scratch := newTestResolver(t, dir)

	res, err := r.Run(context.Background(), filepath.Join(dir, "top.v"))
	require.NoError(t, err)

	assert.Equal(t, []string{"top.v", "a.v", "b.v", "c.v"}, basenames(res.Visited))
	assert.Len(t, uniq(res.Visited), len(res.Visited))
	assert.Equal(t, []string{filepath.Join(scratch, "top.v")}, res.Targets)
	assert.False(t, res.Disabled)
	assert.Empty(t, res.Findings)
	assert.False(t, res.Failed())

	cleaned, err := os.ReadFile(filepath.Join(scratch, "b.v"))
	require.NoError(t, err)
	assert.Contains(t, string(cleaned), "`include \"c.v\"")
}

func uniq(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func TestResolver_OffMarker(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"top.v": "// ece2300-lint off\nmodule top; reg r; initial r = 0; endmodule\n`include \"missing.v\"\n",
	})
	r, scratch := newTestResolver(t, dir)

	res, err := r.Run(context.Background(), filepath.Join(dir, "top.v"))
	require.NoError(t, err)
	assert.True(t, res.Disabled)
	assert.Empty(t, res.Targets)
	assert.Empty(t, res.Findings)
	assert.False(t, res.Failed())
	assert.NoDirExists(t, scratch)
}

func TestResolver_Redirect(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"AdderTest.v":  "// ece2300-lint\n`include \"lab2/Adder.v\"\nmodule AdderTest; reg r; endmodule\n",
		"lab2/Adder.v": "`include \"FullAdder.v\"\nmodule Adder; endmodule\n",
		"FullAdder.v":  "module FullAdder; endmodule\n",
	})
	r, scratch := newTestResolver(t, dir)

	res, err := r.Run(context.Background(), filepath.Join(dir, "AdderTest.v"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Adder.v", "FullAdder.v"}, basenames(res.Visited))
	assert.Equal(t, []string{filepath.Join(scratch, "Adder.v")}, res.Targets)
	assert.Empty(t, res.Findings, "the redirecting file itself is not scanned")
}

func TestResolver_RedirectFallsBackToInputDir(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"wrap.v": "// ece2300-lint\n`include \"Mux.v\"\n",
		"Mux.v":  "module Mux; endmodule\n",
	})
	r, _ := newTestResolver(t)

	res, err := r.Run(context.Background(), filepath.Join(dir, "wrap.v"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Mux.v"}, basenames(res.Targets))
}

func TestResolver_RedirectTargetMissing(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"wrap.v": "// ece2300-lint\n`include \"Nope.v\"\n",
	})
	r, _ := newTestResolver(t, dir)

	_, err := r.Run(context.Background(), filepath.Join(dir, "wrap.v"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestResolver_MissingInput(t *testing.T) {
	r, _ := newTestResolver(t)
	_, err := r.Run(context.Background(), filepath.Join(t.TempDir(), "none.v"))
	assert.Error(t, err)
}

func TestResolver_MissingIncludeIsWarning(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"top.v":  "`include \"ghost.v\"\n`include \"real.v\"\nmodule top; endmodule\n",
		"real.v": "module real_mod; endmodule\n",
	})
	r, _ := newTestResolver(t, dir)

	res, err := r.Run(context.Background(), filepath.Join(dir, "top.v"))
	require.NoError(t, err)
	assert.Equal(t, []string{"top.v", "real.v"}, basenames(res.Visited))
}

func TestResolver_FindingsAndXprop(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"top.v": "`include \"dep.v\"\n`include \"tinyrv1.v\"\n" +
			"module top;\n  logic y;\n  `ECE2300_XPROP(y, sel);\nendmodule\n",
		"dep.v": "module dep;\n  reg r; // integer\n  `ECE2300_SEQ_XPROP(q, en);\nendmodule\n" +
			"module top;\n  `ECE2300_XPROP(z, sel);\nendmodule\n",
		"tinyrv1.v": "module tinyrv1 (input clk);\n  reg r;\n  initial r = 0;\nendmodule\n",
	})

	t.Run("findings fail the run", func(t *testing.T) {
		r, scratch := newTestResolver(t, dir)
		res, err := r.Run(context.Background(), filepath.Join(dir, "top.v"))
		require.NoError(t, err)

		require.Len(t, res.Findings, 1)
		f := res.Findings[0]
		assert.Equal(t, "dep.v", filepath.Base(f.Path))
		assert.Equal(t, 2, f.Line)
		assert.Equal(t, 3, f.Column)
		assert.Equal(t, "reg", f.Text)
		assert.True(t, res.Failed())

		assert.Equal(t, Registry{"top": {"y", "z"}}, res.Comb)
		assert.Equal(t, Registry{"dep": {"q"}}, res.Seq)

		cleaned, err := os.ReadFile(filepath.Join(scratch, "tinyrv1.v"))
		require.NoError(t, err)
		assert.Contains(t, string(cleaned), "Module content removed during preprocessing")
		assert.NotContains(t, string(cleaned), "initial")

		top, err := os.ReadFile(filepath.Join(scratch, "top.v"))
		require.NoError(t, err)
		assert.NotContains(t, string(top), "ECE2300_XPROP")
	})

	t.Run("test mode tolerates findings", func(t *testing.T) {
		r := NewResolver(Options{
			IncludeDirs: []string{dir},
			ScratchDir:  filepath.Join(t.TempDir(), "build"),
			TestMode:    true,
		})
		res, err := r.Run(context.Background(), filepath.Join(dir, "top.v"))
		require.NoError(t, err)
		assert.Len(t, res.Findings, 1)
		assert.False(t, res.Failed())
	})
}

func TestResolver_ContextCanceled(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"top.v": "module top; endmodule\n",
	})
	r, _ := newTestResolver(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, filepath.Join(dir, "top.v"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolver_FindingLinesSurviveMacroRemoval(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"m.v": "module m(input a);\n\n  `ECE2300_XPROP(y, a);\n\n  reg r;\nendmodule\n",
	})
	r, scratch := newTestResolver(t, dir)

	res, err := r.Run(context.Background(), filepath.Join(dir, "m.v"))
	require.NoError(t, err)

	require.Len(t, res.Findings, 1)
	assert.Equal(t, 5, res.Findings[0].Line)
	assert.Equal(t, 3, res.Findings[0].Column)

	cleaned, err := os.ReadFile(filepath.Join(scratch, "m.v"))
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(string(cleaned), "\n"))
}
