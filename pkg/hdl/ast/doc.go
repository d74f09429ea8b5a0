// Package ast defines the syntax tree that rtllint analyses.
//
// The tree is produced by an external HDL front-end (see Parser) and covers
// only the node kinds the style rules inspect: module definitions, procedural
// blocks with their sensitivity lists, procedural statements, continuous
// assignments, instantiations and the expression forms that can appear on
// either side of an assignment.
//
// # Closed variants
//
// Item, Stmt and Expr are sealed interfaces: only types in this package
// implement them. Each family has an explicit Unknown variant (UnknownItem,
// UnknownStmt, UnknownExpr) that front-ends use for constructs outside this
// set, so analysis code can switch exhaustively and never silently drops a
// node kind.
//
// # JSON form
//
// DecodeJSON reads the interchange format emitted by front-ends:
//
//	{"modules": [{"kind": "module", "name": "alu", "line": 1, "items": [
//	  {"kind": "always", "always": "comb", "line": 4, "body":
//	    {"kind": "block", "line": 4, "stmts": [
//	      {"kind": "blocking", "line": 5,
//	       "lhs": {"kind": "identifier", "name": "y"},
//	       "rhs": {"kind": "literal", "literal": "int", "text": "1'b0"}}]}}]}]}
//
// Every object carries "kind" and "line". Unrecognised kinds decode into the
// matching Unknown variant.
package ast
