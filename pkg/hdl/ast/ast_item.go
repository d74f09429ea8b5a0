package ast

// ---------- Module Items ----------

// AlwaysKind classifies a procedural block by its keyword.
type AlwaysKind int

// AlwaysKind constants.
const (
	// AlwaysGeneric is a plain `always` block.
	AlwaysGeneric AlwaysKind = iota
	// AlwaysComb is `always_comb`.
	AlwaysComb
	// AlwaysFF is `always_ff`.
	AlwaysFF
	// AlwaysLatch is `always_latch`.
	AlwaysLatch
)

// String returns the keyword for the block kind.
func (k AlwaysKind) String() string {
	switch k {
	case AlwaysComb:
		return "always_comb"
	case AlwaysFF:
		return "always_ff"
	case AlwaysLatch:
		return "always_latch"
	default:
		return "always"
	}
}

// Edge is the edge qualifier of a sensitivity-list entry.
type Edge string

// Edge values.
const (
	EdgeLevel Edge = "level"
	EdgePos   Edge = "posedge"
	EdgeNeg   Edge = "negedge"
	EdgeStar  Edge = "star"
	EdgeAll   Edge = "all"
)

// Sens is one sensitivity-list entry. Signal is nil for `@*`.
type Sens struct {
	Loc
	Signal Expr
	Edge   Edge
}

// IsWildcard reports whether the entry is `*` or `all`.
func (s Sens) IsWildcard() bool {
	if s.Edge == EdgeStar || s.Edge == EdgeAll {
		return true
	}
	id, ok := s.Signal.(*Ident)
	return ok && id.Name == "*"
}

// Always is a procedural block.
type Always struct {
	Loc
	Kind AlwaysKind
	Sens []Sens
	Body Stmt
}

func (*Always) itemNode() {}

// Statements returns the top-level statement list of the block: the
// statements of a begin/end body, or the single body statement.
func (a *Always) Statements() []Stmt {
	switch b := a.Body.(type) {
	case nil:
		return nil
	case *Block:
		return b.Stmts
	default:
		return []Stmt{b}
	}
}

// Initial is an `initial` block.
type Initial struct {
	Loc
}

func (*Initial) itemNode() {}

// Function is a function declaration.
type Function struct {
	Loc
	Name string
}

func (*Function) itemNode() {}

// Task is a task declaration.
type Task struct {
	Loc
	Name string
}

func (*Task) itemNode() {}

// Generate is a generate region. Items holds the items it contains.
type Generate struct {
	Loc
	Items []Item
}

func (*Generate) itemNode() {}

// ContinuousAssign is an `assign lhs = rhs;` statement. A front-end that
// cannot produce a side leaves it nil.
type ContinuousAssign struct {
	Loc
	LHS Expr
	RHS Expr
}

func (*ContinuousAssign) itemNode() {}

// Port is one port connection of an instance. Name is empty for
// positional connections.
type Port struct {
	Name string
	Expr Expr
}

// Instance is a single named instance inside an InstanceList.
type Instance struct {
	Name  string
	Ports []Port
}

// InstanceList instantiates a module or gate primitive one or more times.
type InstanceList struct {
	Loc
	Module    string
	Instances []Instance
}

func (*InstanceList) itemNode() {}

// Decl is a net, variable, port or parameter declaration.
type Decl struct {
	Loc
	Kind  string
	Names []string
}

func (*Decl) itemNode() {}

// UnknownItem is a module item the front-end could not classify.
type UnknownItem struct {
	Loc
	Kind string
}

func (*UnknownItem) itemNode() {}
