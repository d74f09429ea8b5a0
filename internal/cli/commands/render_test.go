package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/rtllint/internal/cli/output"
	"github.com/leapstack-labs/rtllint/internal/cli/testutil"
	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
	"github.com/leapstack-labs/rtllint/pkg/lint"
	"github.com/leapstack-labs/rtllint/pkg/preprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingReport has one file with a violation and a parse error, one clean
// file and one file disabled by the marker.
func failingReport() *lintReport {
	return &lintReport{Files: []*fileResult{
		{
			Path: "rtl/alu.v",
			Violations: []lint.Violation{
				{Module: "alu", Rule: "BLKSEQ", Message: "Blocking assignment in sequential block", Line: 5},
			},
			Errors: []FileError{{Path: "build/alu_ctrl.v", Err: ast.ErrNoParser}},
		},
		{Path: "rtl/mux.v"},
		{Path: "rtl/tb.v", Disabled: true},
	}}
}

func TestRenderLintReport_Markdown(t *testing.T) {
	for name, tr := range map[string]*testutil.TestRenderer{
		"markdown":       testutil.NewTestRendererMarkdown(),
		"auto (non-TTY)": testutil.NewTestRendererAuto(),
	} {
		t.Run(name, func(t *testing.T) {
			renderLintReport(tr.Renderer, failingReport(), "")
			out := tr.Output()

			testutil.AssertOutputMode(t, tr, output.ModeMarkdown)
			testutil.AssertValidMarkdown(t, out)
			testutil.AssertContains(t, out, "## rtl/alu.v")
			testutil.AssertContains(t, out, "Found 1 violation(s):")
			testutil.AssertContains(t, out, "  - Module 'alu': [BLKSEQ] Blocking assignment in sequential block (line 5)")
			testutil.AssertContains(t, out, "Error: build/alu_ctrl.v: "+ast.ErrNoParser.Error())
			testutil.AssertContains(t, out, "- **rtl/mux.v**: clean")
			testutil.AssertContains(t, out, "rtl/tb.v: linting disabled by marker")
			testutil.AssertContains(t, out, "Linting finished with 2 total violation(s)/error(s).")
			testutil.AssertNotContains(t, out, "No violations found")
			assert.Empty(t, tr.ErrorOutput())
		})
	}
}

func TestRenderLintReport_Text(t *testing.T) {
	tr := testutil.NewTestRendererText()
	renderLintReport(tr.Renderer, failingReport(), "3f2a9c1e")

	testutil.AssertOutputMode(t, tr, output.ModeText)
	out := testutil.StripANSI(tr.Output())
	testutil.AssertContains(t, out, "rtl/alu.v")
	testutil.AssertNotContains(t, out, "## rtl/alu.v")
	testutil.AssertContains(t, out, "Module 'alu': [BLKSEQ]")
	testutil.AssertContains(t, out, "(line 5)")
	testutil.AssertContains(t, out, "clean")
	testutil.AssertContains(t, out, "Recorded run 3f2a9c1e")
}

func TestRenderLintReport_JSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	renderLintReport(tr.Renderer, failingReport(), "")
	testutil.AssertOutputMode(t, tr, output.ModeJSON)

	var out output.LintOutput
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &out))
	assert.Equal(t, 3, out.Summary.Files)
	assert.Equal(t, 1, out.Summary.Violations)
	assert.False(t, out.Summary.Passed)
}

func TestRenderLintReport_TestModeFindings(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	finding := preprocess.Finding{Path: "build/tb.v", Line: 2, Column: 3, Text: "initial", Description: "`initial` blocks"}

	renderLintReport(tr.Renderer, &lintReport{Files: []*fileResult{
		{Path: "rtl/tb.v", Findings: []preprocess.Finding{finding}},
	}}, "")
	testutil.AssertContains(t, tr.Output(), "Analysis skipped")
	testutil.AssertContains(t, tr.Output(), "Linting finished with 1 total violation(s)/error(s).")

	tr.Reset()
	renderLintReport(tr.Renderer, &lintReport{Files: []*fileResult{
		{Path: "rtl/tb.v", TestMode: true, Findings: []preprocess.Finding{finding}},
	}}, "")
	out := tr.Output()
	testutil.AssertContains(t, out, "Found 1 prohibited construct(s) in the cleaned files.")
	testutil.AssertContains(t, out, "build/tb.v:2:3:")
	testutil.AssertContains(t, out, "Test mode")
	testutil.AssertContains(t, out, "No violations found")
	testutil.AssertNotContains(t, out, "Analysis skipped")
}

func TestRenderPreprocessFile(t *testing.T) {
	comb := preprocess.Registry{}
	comb.Add("alu", "y")
	res := &preprocess.Result{
		Targets: []string{"build/alu.v"},
		Visited: []string{"rtl/alu.v", "include/alu_pkg.vh"},
		Comb:    comb,
		Seq:     preprocess.Registry{},
	}

	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		renderPreprocessFile(tr.Renderer, "rtl/alu.v", res)
		out := tr.Output()

		testutil.AssertOutputMode(t, tr, output.ModeMarkdown)
		testutil.AssertValidMarkdown(t, out)
		testutil.AssertContains(t, out, "## rtl/alu.v")
		testutil.AssertContains(t, out, "build/alu.v")
		testutil.AssertContains(t, out, "2 file(s)")
		testutil.AssertContains(t, out, "alu: y")
		testutil.AssertNotContains(t, out, "prohibited construct")
	})

	t.Run("text disabled", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		renderPreprocessFile(tr.Renderer, "rtl/tb.v", &preprocess.Result{Disabled: true})
		out := testutil.StripANSI(tr.Output())
		testutil.AssertContains(t, out, "rtl/tb.v")
		testutil.AssertContains(t, out, "linting disabled by marker")
		testutil.AssertNotContains(t, out, "Targets")
	})
}
