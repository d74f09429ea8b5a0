package ast

// ---------- Expressions ----------

// Ident is a plain identifier.
type Ident struct {
	Loc
	Name string
}

func (*Ident) exprNode() {}

// BitSelect is `target[index]`.
type BitSelect struct {
	Loc
	Target Expr
	Index  Expr
}

func (*BitSelect) exprNode() {}

// PartSelect is `target[msb:lsb]`.
type PartSelect struct {
	Loc
	Target Expr
	MSB    Expr
	LSB    Expr
}

func (*PartSelect) exprNode() {}

// Concat is `{a, b, ...}`.
type Concat struct {
	Loc
	Parts []Expr
}

func (*Concat) exprNode() {}

// Repeat is the replication `{count{value}}`.
type Repeat struct {
	Loc
	Count Expr
	Value Expr
}

func (*Repeat) exprNode() {}

// LiteralKind is the lexical class of a literal.
type LiteralKind int

// LiteralKind constants.
const (
	// LitInt covers sized and based integers such as 4'b10x0.
	LitInt LiteralKind = iota
	LitFloat
	LitString
	// LitUnsized is an unsized fill literal such as '0 or 'x.
	LitUnsized
)

// Literal is a constant. Text is the raw source spelling.
type Literal struct {
	Loc
	Kind LiteralKind
	Text string
}

func (*Literal) exprNode() {}

// Operator is a binary or ternary operation.
type Operator struct {
	Loc
	Op    string
	Left  Expr
	Right Expr
}

func (*Operator) exprNode() {}

// Unary is a unary operation.
type Unary struct {
	Loc
	Op      string
	Operand Expr
}

func (*Unary) exprNode() {}

// FuncCall is a user function call.
type FuncCall struct {
	Loc
	Name string
	Args []Expr
}

func (*FuncCall) exprNode() {}

// UnknownExpr is an expression the front-end could not classify.
type UnknownExpr struct {
	Loc
	Kind string
}

func (*UnknownExpr) exprNode() {}

// KindName returns a stable display name for an expression kind.
func KindName(e Expr) string {
	switch n := e.(type) {
	case nil:
		return "None"
	case *Ident:
		return "Identifier"
	case *BitSelect:
		return "BitSelect"
	case *PartSelect:
		return "PartSelect"
	case *Concat:
		return "Concat"
	case *Repeat:
		return "Repeat"
	case *Literal:
		return "Literal"
	case *Operator:
		return "Operator"
	case *Unary:
		return "UnaryOperator"
	case *FuncCall:
		return "FunctionCall"
	case *SystemCall:
		return "SystemCall"
	case *UnknownExpr:
		return n.Kind
	default:
		return "Unknown"
	}
}

// ItemKindName returns a stable display name for a module item kind.
func ItemKindName(it Item) string {
	switch n := it.(type) {
	case *Always:
		return "Always"
	case *Initial:
		return "Initial"
	case *Function:
		return "Function"
	case *Task:
		return "Task"
	case *Generate:
		return "GenerateStatement"
	case *SystemCall:
		return "SystemCall"
	case *ContinuousAssign:
		return "Assign"
	case *InstanceList:
		return "InstanceList"
	case *Decl:
		return "Decl"
	case *UnknownItem:
		return n.Kind
	default:
		return "Unknown"
	}
}
