package rtl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
	"github.com/leapstack-labs/rtllint/pkg/lint"
)

var allowedGates = map[string]bool{
	"and": true, "or": true, "not": true, "xor": true,
	"nand": true, "nor": true, "xnor": true,
}

var deniedGates = map[string]bool{
	// switch level
	"tran": true, "tranif0": true, "tranif1": true,
	"rtran": true, "rtranif0": true, "rtranif1": true,
	"nmos": true, "pmos": true, "rnmos": true, "rpmos": true,
	"cmos": true, "rcmos": true,
	// supply
	"supply0": true, "supply1": true,
	// pull
	"pullup": true, "pulldown": true, "pull0": true, "pull1": true,
	// buffers and enable gates
	"buf": true, "bufif0": true, "bufif1": true,
	"notif0": true, "notif1": true,
	// strengths
	"strong0": true, "strong1": true, "weak0": true, "weak1": true,
	"highz0": true, "highz1": true,
}

var allowedGateList = func() string {
	names := make([]string, 0, len(allowedGates))
	for name := range allowedGates {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}()

// visitItems dispatches module items. Procedural constructs directly in
// the module body are reported once per item against the module line.
func (m *moduleCtx) visitItems(items []ast.Item, top bool) {
	for _, it := range items {
		if top && isProcedural(it) {
			m.raise(lint.NoSpecialBlock, m.line, lint.Args{
				"type": ast.ItemKindName(it),
				"name": m.name,
			})
		}

		switch n := it.(type) {
		case *ast.Always:
			m.visitAlways(n)
		case *ast.ContinuousAssign:
			m.checkAssign(n)
		case *ast.InstanceList:
			m.checkInstances(n)
		case *ast.Generate:
			m.visitItems(n.Items, false)
		case nil, *ast.Initial, *ast.Function, *ast.Task, *ast.SystemCall, *ast.Decl, *ast.UnknownItem:
		}
	}
}

func isProcedural(it ast.Item) bool {
	switch it.(type) {
	case *ast.Always, *ast.Initial, *ast.Function, *ast.Task, *ast.Generate, *ast.SystemCall:
		return true
	}
	return false
}

// checkAssign restricts continuous assignments to simple targets driven by
// simple signals or literals.
func (m *moduleCtx) checkAssign(n *ast.ContinuousAssign) {
	if n.LHS == nil {
		m.raise(lint.BadLHS, n.Line, nil)
	}
	if n.RHS == nil {
		m.raise(lint.BadRHS, n.Line, nil)
	}
	if n.LHS == nil || n.RHS == nil {
		return
	}

	if !isSimpleTarget(n.LHS) {
		m.raise(lint.ComplexLHS, n.Line, lint.Args{"type": ast.KindName(n.LHS)})
		return
	}
	if isSimpleTarget(n.RHS) || isLiteral(n.RHS) {
		return
	}
	m.raise(lint.ComplexRHS, n.Line, lint.Args{"detail_msg": complexDetail(n.RHS)})
}

func complexDetail(e ast.Expr) string {
	switch e.(type) {
	case *ast.Operator, *ast.Unary, *ast.Concat, *ast.Repeat, *ast.BitSelect, *ast.FuncCall, *ast.SystemCall:
		return fmt.Sprintf("contains an operation or complex construct (%s)", ast.KindName(e))
	}
	return fmt.Sprintf("is not a simple signal, part-select, or literal. Found type: %s", ast.KindName(e))
}

// checkInstances accepts only primitive boolean gates.
func (m *moduleCtx) checkInstances(n *ast.InstanceList) {
	name := strings.ToLower(n.Module)
	if deniedGates[name] {
		m.raise(lint.PrimOnly, n.Line, lint.Args{"list_of_gates": allowedGateList})
		return
	}
	if allowedGates[name] {
		return
	}

	m.raise(lint.NoModule, n.Line, lint.Args{"module_name": n.Module})
	for _, inst := range n.Instances {
		for _, p := range inst.Ports {
			if _, ok := p.Expr.(*ast.Concat); ok {
				m.raise(lint.ComplexRHS, n.Line, lint.Args{
					"detail_msg": "A port to a module contains a concatenation which is not allowed",
				})
				return
			}
		}
	}
}
