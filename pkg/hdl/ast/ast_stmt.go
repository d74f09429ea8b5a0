package ast

// ---------- Statements ----------

// AssignKind distinguishes blocking from non-blocking assignment.
type AssignKind int

// AssignKind constants.
const (
	// Blocking is `lhs = rhs`.
	Blocking AssignKind = iota
	// Nonblocking is `lhs <= rhs`.
	Nonblocking
)

// Assign is a procedural assignment.
type Assign struct {
	Loc
	Kind AssignKind
	LHS  Expr
	RHS  Expr
}

func (*Assign) stmtNode() {}

// Block is a begin/end sequence.
type Block struct {
	Loc
	Stmts []Stmt
}

func (*Block) stmtNode() {}

// If is an if/else statement. Else may be nil.
type If struct {
	Loc
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*If) stmtNode() {}

// CaseKind is the case-family keyword.
type CaseKind int

// CaseKind constants.
const (
	CaseStd CaseKind = iota
	CaseX
	CaseZ
)

// CaseItem is one branch of a case statement.
type CaseItem struct {
	Loc
	Conds   []Expr
	Default bool
	Body    Stmt
}

// Case is a case/casex/casez statement.
type Case struct {
	Loc
	Kind    CaseKind
	Subject Expr
	Items   []*CaseItem
}

func (*Case) stmtNode() {}

// DefaultItem returns the first default branch, or nil.
func (c *Case) DefaultItem() *CaseItem {
	for _, item := range c.Items {
		if item.Default {
			return item
		}
	}
	return nil
}

// LoopKind is the loop keyword.
type LoopKind string

// LoopKind values.
const (
	LoopFor     LoopKind = "for"
	LoopWhile   LoopKind = "while"
	LoopRepeat  LoopKind = "repeat"
	LoopForever LoopKind = "forever"
)

// Loop is a procedural loop.
type Loop struct {
	Loc
	Kind LoopKind
	Body Stmt
}

func (*Loop) stmtNode() {}

// UnknownStmt is a statement the front-end could not classify.
type UnknownStmt struct {
	Loc
	Kind string
}

func (*UnknownStmt) stmtNode() {}

// ---------- Shared ----------

// SystemCall is a `$name(...)` call. It appears as a module item, a
// statement or an expression.
type SystemCall struct {
	Loc
	Name string
	Args []Expr
}

func (*SystemCall) itemNode() {}
func (*SystemCall) stmtNode() {}
func (*SystemCall) exprNode() {}
