package rtl

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
)

// assignFact is one signal targeted by an assignment. Full is true when the
// whole signal is the target rather than a bit or part select of it.
type assignFact struct {
	Name string
	Full bool
	Line int
}

// lhsFacts decomposes the target of a procedural assignment. Concatenations
// yield one fact per constituent signal, recursively.
func lhsFacts(a *ast.Assign) []assignFact {
	return targetFacts(a.LHS, a.Line, nil)
}

func targetFacts(e ast.Expr, line int, acc []assignFact) []assignFact {
	if c, ok := e.(*ast.Concat); ok {
		for _, part := range c.Parts {
			acc = targetFacts(part, line, acc)
		}
		return acc
	}
	if id := baseIdent(e); id != nil {
		_, full := e.(*ast.Ident)
		acc = append(acc, assignFact{Name: id.Name, Full: full, Line: line})
	}
	return acc
}

// baseIdent unwraps selects down to the selected identifier.
func baseIdent(e ast.Expr) *ast.Ident {
	for {
		switch n := e.(type) {
		case *ast.Ident:
			return n
		case *ast.BitSelect:
			e = n.Target
		case *ast.PartSelect:
			e = n.Target
		default:
			return nil
		}
	}
}

// collectFacts returns the facts of every assignment in the statement tree,
// keeping the first fact seen for each signal name.
func collectFacts(s ast.Stmt) []assignFact {
	var facts []assignFact
	seen := make(map[string]bool)
	ast.WalkStmt(s, func(n ast.Stmt) bool {
		a, ok := n.(*ast.Assign)
		if !ok {
			return true
		}
		for _, f := range lhsFacts(a) {
			if !seen[f.Name] {
				seen[f.Name] = true
				facts = append(facts, f)
			}
		}
		return true
	})
	return facts
}

// assignsTo returns the assignments in the tree that target signal name.
func assignsTo(s ast.Stmt, name string) []*ast.Assign {
	var found []*ast.Assign
	ast.WalkStmt(s, func(n ast.Stmt) bool {
		a, ok := n.(*ast.Assign)
		if !ok {
			return true
		}
		for _, f := range lhsFacts(a) {
			if f.Name == name {
				found = append(found, a)
				break
			}
		}
		return true
	})
	return found
}

// assignsOfKind returns every assignment of the given kind in the tree.
func assignsOfKind(s ast.Stmt, kind ast.AssignKind) []*ast.Assign {
	var found []*ast.Assign
	ast.WalkStmt(s, func(n ast.Stmt) bool {
		if a, ok := n.(*ast.Assign); ok && a.Kind == kind {
			found = append(found, a)
		}
		return true
	})
	return found
}

var xLiteralPattern = regexp.MustCompile(`^\d*'s?[bhdox][xz?][xz?_]*$`)

// IsXValue reports whether e is a don't-care literal: a bare x, an unsized
// 'x, or a based literal whose digits are all x, z or ?.
func IsXValue(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	if !ok || (lit.Kind != ast.LitInt && lit.Kind != ast.LitUnsized) {
		return false
	}
	text := strings.ToLower(strings.TrimSpace(lit.Text))
	switch text {
	case "x", "'x", "'z", "'?":
		return true
	}
	return xLiteralPattern.MatchString(text)
}

// isSimpleTarget reports whether e is an identifier, a part select of one,
// or a constant bit select of one.
func isSimpleTarget(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Ident:
		return true
	case *ast.PartSelect:
		_, ok := n.Target.(*ast.Ident)
		return ok
	case *ast.BitSelect:
		_, isIdent := n.Target.(*ast.Ident)
		lit, isLit := n.Index.(*ast.Literal)
		return isIdent && isLit && lit.Kind == ast.LitInt
	}
	return false
}

func isLiteral(e ast.Expr) bool {
	_, ok := e.(*ast.Literal)
	return ok
}
