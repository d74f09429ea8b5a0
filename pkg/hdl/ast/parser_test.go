package ast_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
)

func TestCommandParser_Args(t *testing.T) {
	p := ast.NewCommandParser([]string{"front", "--json"})
	args := p.Args(ast.ParseRequest{
		Path:        "top.v",
		IncludeDirs: []string{"inc", "lib"},
		Defines:     []string{"SYNTHESIS"},
	})
	assert.Equal(t, []string{"--json", "-I", "inc", "-I", "lib", "-D", "SYNTHESIS", "top.v"}, args)
}

func TestCommandParser_NoCommand(t *testing.T) {
	_, err := ast.NewCommandParser(nil).Parse(context.Background(), ast.ParseRequest{Path: "x.v"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ast.ErrNoParser)

	var perr *ast.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "x.v", perr.Path)
}

func TestCommandParser_RunsFrontEnd(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	path := filepath.Join(t.TempDir(), "ast.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleAST), 0o600))

	p := ast.NewCommandParser([]string{"sh", "-c", `cat "$0"`})
	src, err := p.Parse(context.Background(), ast.ParseRequest{Path: path})
	require.NoError(t, err)
	require.Len(t, src.Modules, 1)
	assert.Equal(t, "mux", src.Modules[0].Name)
}

func TestCommandParser_FrontEndFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	p := ast.NewCommandParser([]string{"sh", "-c", `echo "syntax error near line 3" >&2; exit 2`})
	_, err := p.Parse(context.Background(), ast.ParseRequest{Path: "bad.v"})
	require.Error(t, err)

	var perr *ast.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "syntax error near line 3", perr.Detail)
	assert.Contains(t, err.Error(), "bad.v")
}

func TestParserFunc(t *testing.T) {
	want := &ast.Source{Modules: []*ast.Module{{Name: "m"}}}
	var p ast.Parser = ast.ParserFunc(func(_ context.Context, req ast.ParseRequest) (*ast.Source, error) {
		assert.Equal(t, "m.v", req.Path)
		return want, nil
	})

	got, err := p.Parse(context.Background(), ast.ParseRequest{Path: "m.v"})
	require.NoError(t, err)
	assert.Same(t, want, got)
}
