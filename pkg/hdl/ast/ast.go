package ast

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the 1-based source line of the node.
	Pos() int
}

// Loc records where a node starts.
type Loc struct {
	Line int
}

// Pos implements Node.
func (l Loc) Pos() int { return l.Line }

// Item is a marker interface for module body items.
type Item interface {
	Node
	itemNode()
}

// Stmt is a marker interface for procedural statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a marker interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// Source is the root of a parsed file.
type Source struct {
	Modules []*Module
}

// Module is a module definition.
type Module struct {
	Loc
	Name  string
	Items []Item
}
