package ast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
)

const sampleAST = `{
  "modules": [{
    "kind": "module", "name": "mux", "line": 1,
    "items": [
      {"kind": "decl", "decl": "logic", "names": ["y", "z"], "line": 2},
      {"kind": "always", "always": "comb", "line": 4, "body":
        {"kind": "block", "line": 4, "stmts": [
          {"kind": "blocking", "line": 5,
           "lhs": {"kind": "identifier", "name": "y", "line": 5},
           "rhs": {"kind": "literal", "literal": "int", "text": "1'bx", "line": 5}},
          {"kind": "if", "line": 6,
           "cond": {"kind": "identifier", "name": "sel"},
           "then": {"kind": "blocking", "line": 7,
                    "lhs": {"kind": "part_select", "target": {"kind": "identifier", "name": "z"},
                            "msb": {"kind": "literal", "text": "3"}, "lsb": {"kind": "literal", "text": "0"}},
                    "rhs": {"kind": "operator", "op": "&",
                            "left": {"kind": "identifier", "name": "a"},
                            "right": {"kind": "identifier", "name": "b"}}},
           "else": null},
          {"kind": "case", "case": "casez", "line": 9,
           "subject": {"kind": "identifier", "name": "op"},
           "cases": [
             {"line": 10, "conds": [{"kind": "literal", "text": "2'b00"}],
              "body": {"kind": "nonblocking", "line": 10,
                       "lhs": {"kind": "identifier", "name": "y"},
                       "rhs": {"kind": "identifier", "name": "a"}}},
             {"line": 11, "default": true,
              "body": {"kind": "blocking", "line": 11,
                       "lhs": {"kind": "identifier", "name": "y"},
                       "rhs": {"kind": "literal", "literal": "unsized", "text": "'x"}}}
           ]}
        ]}},
      {"kind": "always", "always": "ff", "line": 14,
       "sens": [{"edge": "posedge", "signal": {"kind": "identifier", "name": "clk"}, "line": 14}],
       "body": {"kind": "nonblocking", "line": 15,
                "lhs": {"kind": "identifier", "name": "q"},
                "rhs": {"kind": "identifier", "name": "d"}}},
      {"kind": "assign", "line": 17,
       "lhs": {"kind": "concat", "parts": [{"kind": "identifier", "name": "c"}, {"kind": "identifier", "name": "s"}]},
       "rhs": {"kind": "unary", "op": "~", "operand": {"kind": "identifier", "name": "a"}}},
      {"kind": "instance_list", "module": "and", "line": 18, "instances": [
        {"name": "g0", "ports": [{"expr": {"kind": "identifier", "name": "y"}}, {"expr": {"kind": "identifier", "name": "a"}}]}
      ]},
      {"kind": "generate", "line": 20, "items": [{"kind": "initial", "line": 21}]},
      {"kind": "specparam", "line": 22}
    ]
  }]
}`

func TestDecodeJSON(t *testing.T) {
	src, err := ast.DecodeJSON(strings.NewReader(sampleAST))
	require.NoError(t, err)
	require.Len(t, src.Modules, 1)

	mod := src.Modules[0]
	assert.Equal(t, "mux", mod.Name)
	assert.Equal(t, 1, mod.Pos())
	require.Len(t, mod.Items, 7)

	decl, ok := mod.Items[0].(*ast.Decl)
	require.True(t, ok)
	assert.Equal(t, []string{"y", "z"}, decl.Names)

	comb, ok := mod.Items[1].(*ast.Always)
	require.True(t, ok)
	assert.Equal(t, ast.AlwaysComb, comb.Kind)
	stmts := comb.Statements()
	require.Len(t, stmts, 3)

	def, ok := stmts[0].(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, ast.Blocking, def.Kind)
	assert.Equal(t, "1'bx", def.RHS.(*ast.Literal).Text)

	ifStmt, ok := stmts[1].(*ast.If)
	require.True(t, ok)
	assert.Nil(t, ifStmt.Else)
	thenAssign := ifStmt.Then.(*ast.Assign)
	assert.IsType(t, &ast.PartSelect{}, thenAssign.LHS)
	assert.Equal(t, "Operator", ast.KindName(thenAssign.RHS))

	caseStmt, ok := stmts[2].(*ast.Case)
	require.True(t, ok)
	assert.Equal(t, ast.CaseZ, caseStmt.Kind)
	require.Len(t, caseStmt.Items, 2)
	require.NotNil(t, caseStmt.DefaultItem())
	assert.Equal(t, 11, caseStmt.DefaultItem().Pos())
	assert.Equal(t, ast.Nonblocking, caseStmt.Items[0].Body.(*ast.Assign).Kind)

	ff := mod.Items[2].(*ast.Always)
	assert.Equal(t, ast.AlwaysFF, ff.Kind)
	require.Len(t, ff.Sens, 1)
	assert.Equal(t, ast.EdgePos, ff.Sens[0].Edge)
	assert.False(t, ff.Sens[0].IsWildcard())
	assert.Len(t, ff.Statements(), 1)

	assign := mod.Items[3].(*ast.ContinuousAssign)
	assert.IsType(t, &ast.Concat{}, assign.LHS)
	assert.Equal(t, "UnaryOperator", ast.KindName(assign.RHS))

	inst := mod.Items[4].(*ast.InstanceList)
	assert.Equal(t, "and", inst.Module)
	require.Len(t, inst.Instances, 1)
	assert.Len(t, inst.Instances[0].Ports, 2)

	gen := mod.Items[5].(*ast.Generate)
	require.Len(t, gen.Items, 1)
	assert.IsType(t, &ast.Initial{}, gen.Items[0])

	unknown, ok := mod.Items[6].(*ast.UnknownItem)
	require.True(t, ok)
	assert.Equal(t, "specparam", unknown.Kind)
	assert.Equal(t, "specparam", ast.ItemKindName(unknown))
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed", `{"modules": [`},
		{"not a module", `{"modules": [{"kind": "always"}]}`},
		{"bad always kind", `{"modules": [{"kind": "module", "items": [{"kind": "always", "always": "sometimes"}]}]}`},
		{"bad literal kind", `{"modules": [{"kind": "module", "items": [{"kind": "assign", "lhs": {"kind": "identifier", "name": "a"}, "rhs": {"kind": "literal", "literal": "imaginary"}}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ast.DecodeJSON(strings.NewReader(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestDecodeJSON_UnknownStatementAndExpr(t *testing.T) {
	src, err := ast.DecodeJSON(strings.NewReader(`{"modules": [{"kind": "module", "name": "m", "items": [
	  {"kind": "always", "always": "comb", "body": {"kind": "disable", "line": 3}},
	  {"kind": "assign", "lhs": {"kind": "identifier", "name": "y"}, "rhs": {"kind": "cast", "line": 4}}
	]}]}`))
	require.NoError(t, err)

	always := src.Modules[0].Items[0].(*ast.Always)
	stmt, ok := always.Body.(*ast.UnknownStmt)
	require.True(t, ok)
	assert.Equal(t, "disable", stmt.Kind)

	assign := src.Modules[0].Items[1].(*ast.ContinuousAssign)
	assert.Equal(t, "cast", ast.KindName(assign.RHS))
}
