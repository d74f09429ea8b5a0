package rtl

import (
	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
	"github.com/leapstack-labs/rtllint/pkg/lint"
)

// isCombinational reports whether the block describes combinational logic:
// always_comb, or any block whose sensitivity list has a wildcard entry.
func isCombinational(a *ast.Always) bool {
	if a.Kind == ast.AlwaysComb {
		return true
	}
	for _, s := range a.Sens {
		if s.IsWildcard() {
			return true
		}
	}
	return false
}

func (m *moduleCtx) visitAlways(a *ast.Always) {
	switch a.Kind {
	case ast.AlwaysFF:
		m.raise(lint.AlwaysFF, a.Line, nil)
	case ast.AlwaysGeneric:
		m.raise(lint.AlwaysStar, a.Line, nil)
	}

	stmts := a.Statements()

	if a.Kind == ast.AlwaysFF {
		b := newBlockCtx(m, a.Line, false, nil)
		for _, s := range stmts {
			b.visitStmt(s)
		}
		b.checkXprop(m.seq, m.comb)
	}

	if !isCombinational(a) {
		m.checkSequential(a)
		return
	}
	m.visitCombinational(a, stmts)
}

// checkSequential applies the assignment-style and sensitivity rules to
// flip-flop, latch and edge-triggered generic blocks.
func (m *moduleCtx) checkSequential(a *ast.Always) {
	for _, asg := range assignsOfKind(a.Body, ast.Blocking) {
		m.raise(lint.BlkSeq, asg.Line, nil)
	}
	for _, s := range a.Sens {
		if id, ok := s.Signal.(*ast.Ident); !ok || (id.Name != "clk" && id.Name != "clk_in") {
			m.raise(lint.AsyncReset, a.Line, nil)
		}
		if s.Edge == ast.EdgeNeg {
			m.raise(lint.NegEdge, a.Line, nil)
		}
	}
}

func (m *moduleCtx) visitCombinational(a *ast.Always, stmts []ast.Stmt) {
	for _, asg := range assignsOfKind(a.Body, ast.Nonblocking) {
		m.raise(lint.NonBlkComb, asg.Line, nil)
	}

	// Pass 1: full defaults before the first conditional; any unconditional
	// assignment after it is out of order.
	defaults := make(map[string]bool)
	seenConditional := false
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.Assign:
			if seenConditional {
				m.raise(lint.AssignOrder, n.Line, nil)
				continue
			}
			for _, f := range lhsFacts(n) {
				if f.Full {
					defaults[f.Name] = true
				}
			}
		case *ast.If, *ast.Case:
			seenConditional = true
		}
	}

	b := newBlockCtx(m, a.Line, true, defaults)
	for _, s := range stmts {
		b.visitStmt(s)
	}
	b.checkXprop(m.comb, m.seq)
}

func (b *blockCtx) visitStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		for _, child := range n.Stmts {
			b.visitStmt(child)
		}
	case *ast.If:
		b.checkIf(n)
		b.visitStmt(n.Then)
		b.visitStmt(n.Else)
	case *ast.Case:
		b.checkCase(n)
		for _, item := range n.Items {
			b.visitStmt(item.Body)
		}
	case *ast.Loop:
		b.visitStmt(n.Body)
	case nil, *ast.Assign, *ast.SystemCall, *ast.UnknownStmt:
	}
}

func (b *blockCtx) checkIf(n *ast.If) {
	facts := collectFacts(n)
	for _, f := range facts {
		b.cond.record(f.Name, condSite{line: f.Line, tag: tagIf})
	}
	if !b.comb {
		return
	}

	for _, f := range facts {
		if b.defaults[f.Name] {
			continue
		}
		key := latchKey{block: b.line, signal: f.Name, rule: lint.Latch.Name}
		if b.flagged[key] {
			continue
		}
		b.mod.raise(lint.Latch, n.Line, lint.Args{"name": f.Name})
		if b.mod.rules.Has(lint.Latch.Name) {
			b.flagged[key] = true
		}
	}
}

func (b *blockCtx) checkCase(n *ast.Case) {
	facts := collectFacts(n)
	for _, f := range facts {
		b.cond.record(f.Name, condSite{line: f.Line, tag: tagCase})
	}
	if !b.comb {
		return
	}

	def := n.DefaultItem()
	if def == nil {
		b.mod.raise(lint.CaseDefault, n.Line, nil)
		return
	}

	inDefault := make(map[string]bool)
	for _, f := range collectFacts(def.Body) {
		inDefault[f.Name] = true
	}

	for _, f := range facts {
		if !inDefault[f.Name] {
			b.mod.raise(lint.CaseIncomplete, n.Line, lint.Args{"name": f.Name})
			continue
		}
		for _, asg := range assignsTo(def.Body, f.Name) {
			if !IsXValue(asg.RHS) {
				b.mod.raise(lint.XAssign, n.Line, lint.Args{"name": f.Name})
				break
			}
		}
	}
}
