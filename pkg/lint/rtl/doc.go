// Package rtl implements the RTL style analysis engine.
//
// The engine walks each module of a parsed source, classifies procedural
// blocks as combinational, sequential or latch/generic, tracks which
// signals receive unconditional defaults and which are assigned under
// if/case control, and raises lint.Violation values for the rules enabled
// on that module. Gate-level modules are additionally restricted to
// continuous assignments and primitive gate instances.
//
// Traversal state is carried in explicit context values: a moduleCtx per
// module and a fresh blockCtx per procedural block, so nothing recorded in
// one block is visible to a sibling or to the enclosing module.
package rtl
