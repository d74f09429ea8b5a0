package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// rawNode is the union of all fields used by the JSON interchange format.
type rawNode struct {
	Kind string `json:"kind"`
	Line int    `json:"line"`
	Name string `json:"name"`

	// module / generate
	Items []json.RawMessage `json:"items"`

	// always
	Always string          `json:"always"`
	Sens   []rawSens       `json:"sens"`
	Body   json.RawMessage `json:"body"`

	// assignments
	LHS json.RawMessage `json:"lhs"`
	RHS json.RawMessage `json:"rhs"`

	// instance list
	Module    string        `json:"module"`
	Instances []rawInstance `json:"instances"`

	// decl
	Decl  string   `json:"decl"`
	Names []string `json:"names"`

	// block / if / case / loop
	Stmts   []json.RawMessage `json:"stmts"`
	Cond    json.RawMessage   `json:"cond"`
	Then    json.RawMessage   `json:"then"`
	Else    json.RawMessage   `json:"else"`
	Case    string            `json:"case"`
	Subject json.RawMessage   `json:"subject"`
	Cases   []rawCaseItem     `json:"cases"`
	Loop    string            `json:"loop"`

	// expressions
	Args    []json.RawMessage `json:"args"`
	Target  json.RawMessage   `json:"target"`
	Index   json.RawMessage   `json:"index"`
	MSB     json.RawMessage   `json:"msb"`
	LSB     json.RawMessage   `json:"lsb"`
	Parts   []json.RawMessage `json:"parts"`
	Count   json.RawMessage   `json:"count"`
	Value   json.RawMessage   `json:"value"`
	Literal string            `json:"literal"`
	Text    string            `json:"text"`
	Op      string            `json:"op"`
	Left    json.RawMessage   `json:"left"`
	Right   json.RawMessage   `json:"right"`
	Operand json.RawMessage   `json:"operand"`
}

type rawSens struct {
	Line   int             `json:"line"`
	Edge   string          `json:"edge"`
	Signal json.RawMessage `json:"signal"`
}

type rawInstance struct {
	Name  string    `json:"name"`
	Ports []rawPort `json:"ports"`
}

type rawPort struct {
	Name string          `json:"name"`
	Expr json.RawMessage `json:"expr"`
}

type rawCaseItem struct {
	Line    int               `json:"line"`
	Default bool              `json:"default"`
	Conds   []json.RawMessage `json:"conds"`
	Body    json.RawMessage   `json:"body"`
}

type rawSource struct {
	Modules []json.RawMessage `json:"modules"`
}

// DecodeJSON reads a Source from the JSON interchange format.
func DecodeJSON(r io.Reader) (*Source, error) {
	var raw rawSource
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode AST: %w", err)
	}

	src := &Source{}
	for i, m := range raw.Modules {
		mod, err := decodeModule(m)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
		src.Modules = append(src.Modules, mod)
	}
	return src, nil
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeRaw(data json.RawMessage) (*rawNode, error) {
	if isNull(data) {
		return nil, nil
	}
	var n rawNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func decodeModule(data json.RawMessage) (*Module, error) {
	n, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("null module")
	}
	if n.Kind != "" && n.Kind != "module" {
		return nil, fmt.Errorf("expected module, got %q", n.Kind)
	}
	items, err := decodeItems(n.Items)
	if err != nil {
		return nil, err
	}
	return &Module{Loc: Loc{Line: n.Line}, Name: n.Name, Items: items}, nil
}

func decodeItems(list []json.RawMessage) ([]Item, error) {
	items := make([]Item, 0, len(list))
	for _, data := range list {
		it, err := decodeItem(data)
		if err != nil {
			return nil, err
		}
		if it != nil {
			items = append(items, it)
		}
	}
	return items, nil
}

func decodeItem(data json.RawMessage) (Item, error) {
	n, err := decodeRaw(data)
	if err != nil || n == nil {
		return nil, err
	}
	loc := Loc{Line: n.Line}

	switch n.Kind {
	case "always":
		kind, err := parseAlwaysKind(n.Always)
		if err != nil {
			return nil, err
		}
		sens := make([]Sens, 0, len(n.Sens))
		for _, s := range n.Sens {
			sig, err := decodeExpr(s.Signal)
			if err != nil {
				return nil, err
			}
			edge := Edge(s.Edge)
			if edge == "" {
				edge = EdgeLevel
			}
			sens = append(sens, Sens{Loc: Loc{Line: s.Line}, Signal: sig, Edge: edge})
		}
		body, err := decodeStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &Always{Loc: loc, Kind: kind, Sens: sens, Body: body}, nil

	case "initial":
		return &Initial{Loc: loc}, nil
	case "function":
		return &Function{Loc: loc, Name: n.Name}, nil
	case "task":
		return &Task{Loc: loc, Name: n.Name}, nil

	case "generate":
		items, err := decodeItems(n.Items)
		if err != nil {
			return nil, err
		}
		return &Generate{Loc: loc, Items: items}, nil

	case "system_call":
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &SystemCall{Loc: loc, Name: n.Name, Args: args}, nil

	case "assign":
		lhs, err := decodeExpr(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeExpr(n.RHS)
		if err != nil {
			return nil, err
		}
		return &ContinuousAssign{Loc: loc, LHS: lhs, RHS: rhs}, nil

	case "instance_list":
		list := &InstanceList{Loc: loc, Module: n.Module}
		for _, ri := range n.Instances {
			inst := Instance{Name: ri.Name}
			for _, rp := range ri.Ports {
				e, err := decodeExpr(rp.Expr)
				if err != nil {
					return nil, err
				}
				inst.Ports = append(inst.Ports, Port{Name: rp.Name, Expr: e})
			}
			list.Instances = append(list.Instances, inst)
		}
		return list, nil

	case "decl":
		return &Decl{Loc: loc, Kind: n.Decl, Names: n.Names}, nil

	default:
		return &UnknownItem{Loc: loc, Kind: n.Kind}, nil
	}
}

func parseAlwaysKind(s string) (AlwaysKind, error) {
	switch s {
	case "", "always", "generic":
		return AlwaysGeneric, nil
	case "comb", "always_comb":
		return AlwaysComb, nil
	case "ff", "always_ff":
		return AlwaysFF, nil
	case "latch", "always_latch":
		return AlwaysLatch, nil
	default:
		return AlwaysGeneric, fmt.Errorf("unknown always kind %q", s)
	}
}

func decodeStmts(list []json.RawMessage) ([]Stmt, error) {
	stmts := make([]Stmt, 0, len(list))
	for _, data := range list {
		s, err := decodeStmt(data)
		if err != nil {
			return nil, err
		}
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts, nil
}

func decodeStmt(data json.RawMessage) (Stmt, error) {
	n, err := decodeRaw(data)
	if err != nil || n == nil {
		return nil, err
	}
	loc := Loc{Line: n.Line}

	switch n.Kind {
	case "blocking", "nonblocking":
		lhs, err := decodeExpr(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeExpr(n.RHS)
		if err != nil {
			return nil, err
		}
		kind := Blocking
		if n.Kind == "nonblocking" {
			kind = Nonblocking
		}
		return &Assign{Loc: loc, Kind: kind, LHS: lhs, RHS: rhs}, nil

	case "block":
		stmts, err := decodeStmts(n.Stmts)
		if err != nil {
			return nil, err
		}
		return &Block{Loc: loc, Stmts: stmts}, nil

	case "if":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeStmt(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeStmt(n.Else)
		if err != nil {
			return nil, err
		}
		return &If{Loc: loc, Cond: cond, Then: then, Else: els}, nil

	case "case":
		c := &Case{Loc: loc}
		switch n.Case {
		case "", "case":
			c.Kind = CaseStd
		case "casex":
			c.Kind = CaseX
		case "casez":
			c.Kind = CaseZ
		default:
			return nil, fmt.Errorf("unknown case kind %q", n.Case)
		}
		if c.Subject, err = decodeExpr(n.Subject); err != nil {
			return nil, err
		}
		for _, rc := range n.Cases {
			conds, err := decodeExprs(rc.Conds)
			if err != nil {
				return nil, err
			}
			body, err := decodeStmt(rc.Body)
			if err != nil {
				return nil, err
			}
			c.Items = append(c.Items, &CaseItem{
				Loc:     Loc{Line: rc.Line},
				Conds:   conds,
				Default: rc.Default || len(conds) == 0,
				Body:    body,
			})
		}
		return c, nil

	case "loop":
		body, err := decodeStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &Loop{Loc: loc, Kind: LoopKind(n.Loop), Body: body}, nil

	case "system_call":
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &SystemCall{Loc: loc, Name: n.Name, Args: args}, nil

	default:
		return &UnknownStmt{Loc: loc, Kind: n.Kind}, nil
	}
}

func decodeExprs(list []json.RawMessage) ([]Expr, error) {
	exprs := make([]Expr, 0, len(list))
	for _, data := range list {
		e, err := decodeExpr(data)
		if err != nil {
			return nil, err
		}
		if e != nil {
			exprs = append(exprs, e)
		}
	}
	return exprs, nil
}

func decodeExpr(data json.RawMessage) (Expr, error) {
	n, err := decodeRaw(data)
	if err != nil || n == nil {
		return nil, err
	}
	loc := Loc{Line: n.Line}

	// sub decodes a child expression, keeping the first error.
	var firstErr error
	sub := func(d json.RawMessage) Expr {
		e, err := decodeExpr(d)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return e
	}

	var out Expr
	switch n.Kind {
	case "identifier":
		out = &Ident{Loc: loc, Name: n.Name}
	case "bit_select":
		out = &BitSelect{Loc: loc, Target: sub(n.Target), Index: sub(n.Index)}
	case "part_select":
		out = &PartSelect{Loc: loc, Target: sub(n.Target), MSB: sub(n.MSB), LSB: sub(n.LSB)}
	case "concat":
		parts, err := decodeExprs(n.Parts)
		if err != nil {
			return nil, err
		}
		out = &Concat{Loc: loc, Parts: parts}
	case "repeat":
		out = &Repeat{Loc: loc, Count: sub(n.Count), Value: sub(n.Value)}
	case "literal":
		kind, err := parseLiteralKind(n.Literal)
		if err != nil {
			return nil, err
		}
		out = &Literal{Loc: loc, Kind: kind, Text: n.Text}
	case "operator":
		out = &Operator{Loc: loc, Op: n.Op, Left: sub(n.Left), Right: sub(n.Right)}
	case "unary":
		out = &Unary{Loc: loc, Op: n.Op, Operand: sub(n.Operand)}
	case "function_call":
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		out = &FuncCall{Loc: loc, Name: n.Name, Args: args}
	case "system_call":
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		out = &SystemCall{Loc: loc, Name: n.Name, Args: args}
	default:
		out = &UnknownExpr{Loc: loc, Kind: n.Kind}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func parseLiteralKind(s string) (LiteralKind, error) {
	switch s {
	case "", "int":
		return LitInt, nil
	case "float":
		return LitFloat, nil
	case "string":
		return LitString, nil
	case "unsized":
		return LitUnsized, nil
	default:
		return LitInt, fmt.Errorf("unknown literal kind %q", s)
	}
}
