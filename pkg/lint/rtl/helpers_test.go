package rtl

import (
	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
	"github.com/leapstack-labs/rtllint/pkg/lint"
)

// AST builders for tests.

func id(name string) *ast.Ident { return &ast.Ident{Name: name} }

func lit(text string) *ast.Literal { return &ast.Literal{Kind: ast.LitInt, Text: text} }

func bits(name string, msb, lsb string) *ast.PartSelect {
	return &ast.PartSelect{Target: id(name), MSB: lit(msb), LSB: lit(lsb)}
}

func bit(name string, idx string) *ast.BitSelect {
	return &ast.BitSelect{Target: id(name), Index: lit(idx)}
}

func cat(parts ...ast.Expr) *ast.Concat { return &ast.Concat{Parts: parts} }

func blk(line int, lhs, rhs ast.Expr) *ast.Assign {
	return &ast.Assign{Loc: ast.Loc{Line: line}, Kind: ast.Blocking, LHS: lhs, RHS: rhs}
}

func nblk(line int, lhs, rhs ast.Expr) *ast.Assign {
	return &ast.Assign{Loc: ast.Loc{Line: line}, Kind: ast.Nonblocking, LHS: lhs, RHS: rhs}
}

func ifStmt(line int, then, els ast.Stmt) *ast.If {
	return &ast.If{Loc: ast.Loc{Line: line}, Cond: id("en"), Then: then, Else: els}
}

func block(stmts ...ast.Stmt) *ast.Block { return &ast.Block{Stmts: stmts} }

func caseItem(line int, body ast.Stmt) *ast.CaseItem {
	return &ast.CaseItem{Loc: ast.Loc{Line: line}, Conds: []ast.Expr{lit("1'b0")}, Body: body}
}

func defaultItem(line int, body ast.Stmt) *ast.CaseItem {
	return &ast.CaseItem{Loc: ast.Loc{Line: line}, Default: true, Body: body}
}

func caseStmt(line int, items ...*ast.CaseItem) *ast.Case {
	return &ast.Case{Loc: ast.Loc{Line: line}, Subject: id("sel"), Items: items}
}

func comb(line int, stmts ...ast.Stmt) *ast.Always {
	return &ast.Always{Loc: ast.Loc{Line: line}, Kind: ast.AlwaysComb, Body: block(stmts...)}
}

func ff(line int, sens []ast.Sens, stmts ...ast.Stmt) *ast.Always {
	return &ast.Always{Loc: ast.Loc{Line: line}, Kind: ast.AlwaysFF, Sens: sens, Body: block(stmts...)}
}

func posedge(name string) ast.Sens { return ast.Sens{Signal: id(name), Edge: ast.EdgePos} }

func negedge(name string) ast.Sens { return ast.Sens{Signal: id(name), Edge: ast.EdgeNeg} }

func module(name string, items ...ast.Item) *ast.Source {
	return &ast.Source{Modules: []*ast.Module{{Loc: ast.Loc{Line: 1}, Name: name, Items: items}}}
}

func enable(module string, rules ...string) lint.ModuleRules {
	return lint.NewModuleRules(map[string][]string{module: rules})
}

// allRules enables every catalog rule for module.
func allRules(module string) lint.ModuleRules {
	var names []string
	for _, r := range lint.GetAll() {
		names = append(names, r.Name)
	}
	return enable(module, names...)
}

type hit struct {
	Rule string
	Line int
}

func hits(vs []lint.Violation) []hit {
	out := make([]hit, 0, len(vs))
	for _, v := range vs {
		out = append(out, hit{Rule: v.Rule, Line: v.Line})
	}
	return out
}

func byRule(vs []lint.Violation, rule string) []lint.Violation {
	var out []lint.Violation
	for _, v := range vs {
		if v.Rule == rule {
			out = append(out, v)
		}
	}
	return out
}
