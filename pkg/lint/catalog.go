package lint

import "github.com/leapstack-labs/rtllint/pkg/core"

// =============================================================================
// Latch inference
// =============================================================================

// Latch flags signals driven inside an if-statement of an always_comb block
// without a full top-level default.
var Latch = Rule{
	ID:          "R101",
	Name:        "LATCH",
	Group:       GroupLatch,
	Description: "Signal driven in an if-statement must have a top-level default in an always_comb block.",
	Message:     "Signal '{name}' (driven in if-stmt) lacks a complete (every bit is assigned) top-level default in always_comb.",
	Severity:    core.SeverityError,
	Rationale:   "A path through the if-statement that leaves the signal unassigned makes synthesis infer a latch to hold its value.",
	BadExample: `always_comb begin
  if (en)
    y = a;
end`,
	GoodExample: `always_comb begin
  y = 'x;
  if (en)
    y = a;
end`,
}

// AssignOrder flags unconditional assignments placed after a conditional.
var AssignOrder = Rule{
	ID:          "R102",
	Name:        "ASSIGNORDER",
	Group:       GroupLatch,
	Description: "Non-conditional assignments must appear at the top of an always_comb block, before any conditionals.",
	Message:     "Non-conditional assignment found after a conditional statement. Move all default assignments to the top.",
	Severity:    core.SeverityError,
	BadExample: `always_comb begin
  if (en) y = a;
  z = 1'b0;
end`,
}

// =============================================================================
// X-optimism
// =============================================================================

// CaseDefault flags case statements without a default branch.
var CaseDefault = Rule{
	ID:          "R201",
	Name:        "CASEDEFAULT",
	Group:       GroupXOptimism,
	Description: "Case statements must have a 'default' case to prevent latches and X-optimism.",
	Message:     "Case statement lacks a 'default' case.",
	Severity:    core.SeverityError,
}

// XAssign flags default branches that assign something other than X.
var XAssign = Rule{
	ID:          "R202",
	Name:        "XASSIGN",
	Group:       GroupXOptimism,
	Description: "To prevent X-optimism, signals driven in a case statement should be assigned 'x' in the default case.",
	Message:     "Signal '{name}' is not assigned 'x' in the default case.",
	Severity:    core.SeverityError,
	Rationale:   "Assigning a concrete value in the default branch hides unexpected select values in simulation.",
	GoodExample: `default: y = 'x;`,
}

// CaseIncomplete flags signals missing from the default branch.
var CaseIncomplete = Rule{
	ID:          "R203",
	Name:        "CASEINCOMPLETE",
	Group:       GroupXOptimism,
	Description: "All signals assigned in the case statement must also be assigned in the default case.",
	Message:     "Signal '{name}' is assigned in some case paths but not in default case. Assign all signals in the always_comb block in the default case.",
	Severity:    core.SeverityError,
}

// XProp flags conditionally assigned signals without an X-propagation macro.
var XProp = Rule{
	ID:          "R204",
	Name:        "XPROP",
	Group:       GroupXOptimism,
	Description: "Signals conditionally assigned in a procedural block must be guarded by the matching X-propagation macro.",
	Message:     "Signal '{name}' conditionally assigned in {type} in always_comb (always_ff) does not appear as the first argument of an ECE2300_XPROP (ECE2300_SEQ_XPROP) macro call found anywhere in this file.",
	Severity:    core.SeverityError,
	GoodExample: "`ECE2300_XPROP(y, sel);",
}

// WrongXProp flags signals guarded by the macro of the other domain.
var WrongXProp = Rule{
	ID:          "R205",
	Name:        "WRONGXPROP",
	Group:       GroupXOptimism,
	Description: "The signal in the xprop macro is using the incorrect xprop macro.",
	Message:     "Signal '{name}' is found in an ECE2300_XPROP (ECE2300_SEQ_XPROP) however it is in a always_ff (always_comb). Please use the other macro.",
	Severity:    core.SeverityError,
}

// =============================================================================
// Procedural blocks
// =============================================================================

// AlwaysFF flags always_ff blocks in modules restricted to combinational logic.
var AlwaysFF = Rule{
	ID:          "R301",
	Name:        "ALWAYSFF",
	Group:       GroupAlways,
	Description: "Only combinational logic (always_comb, always @*) may be used in this module.",
	Message:     "The always_ff construct is disallowed by configuration. Please stick to combinational logic or gate level modeling.",
	Severity:    core.SeverityError,
}

// AlwaysStar flags generic always blocks.
var AlwaysStar = Rule{
	ID:          "R302",
	Name:        "ALWAYSSTAR",
	Group:       GroupAlways,
	Description: "Never use a generic always block.",
	Message:     "Generic 'always @(...)' block found. Use 'always_comb', 'always_ff', or 'always_latch' instead.",
	Severity:    core.SeverityError,
}

// BlkSeq flags blocking assignments in sequential blocks.
var BlkSeq = Rule{
	ID:          "R303",
	Name:        "BLKSEQ",
	Group:       GroupAlways,
	Description: "Don't use blocking assignment (=) in an always_ff block.",
	Message:     "Blocking assignment ('=') used in 'always_ff' block. Use non-blocking ('<=') for sequential logic.",
	Severity:    core.SeverityError,
	BadExample: `always_ff @(posedge clk)
  q = d;`,
	GoodExample: `always_ff @(posedge clk)
  q <= d;`,
}

// NonBlkComb flags non-blocking assignments in combinational blocks.
var NonBlkComb = Rule{
	ID:          "R304",
	Name:        "NONBLKCOMBI",
	Group:       GroupAlways,
	Description: "Don't use non-blocking assignment (<=) in an always_comb block.",
	Message:     "Non-blocking assignment ('<=') used in 'always_comb' or 'always @*' block. Use blocking ('=') for combinational logic.",
	Severity:    core.SeverityError,
}

// AsyncReset flags sensitivity entries other than the clock.
var AsyncReset = Rule{
	ID:          "R305",
	Name:        "ASYNCRESET",
	Group:       GroupAlways,
	Description: "Do not use asynchronous reset. Use synchronous reset.",
	Message:     "Asynchronous reset detected in 'always_ff' block. Only 'posedge clk' is allowed in sensitivity list.",
	Severity:    core.SeverityError,
	BadExample:  `always_ff @(posedge clk or posedge rst)`,
}

// NegEdge flags falling-edge sensitivity.
var NegEdge = Rule{
	ID:          "R306",
	Name:        "NEGEDGE",
	Group:       GroupAlways,
	Description: "Do not use negedge, only posedge.",
	Message:     "Negative edge sensitivity ('negedge') in 'always_ff' block is not allowed. Only 'posedge clk' is permitted.",
	Severity:    core.SeverityError,
}

// =============================================================================
// Gate level
// =============================================================================

// NoSpecialBlock flags procedural constructs in gate-level modules.
var NoSpecialBlock = Rule{
	ID:          "R401",
	Name:        "NOSPBLK",
	Group:       GroupGateLevel,
	Description: "No special blocks allowed. Checked Always, Initial, Function, Task, GenerateStatement, SystemCall.",
	Message:     "RTL construct '{type}'. Module '{name}' gate-level only.",
	Severity:    core.SeverityError,
}

// BadLHS flags continuous assignments without a usable left-hand side.
var BadLHS = Rule{
	ID:          "R402",
	Name:        "BADLHS",
	Group:       GroupGateLevel,
	Description: "The left-hand side of an assign must be present and be an lvalue.",
	Message:     "Malformed LHS for 'assign'.",
	Severity:    core.SeverityError,
}

// BadRHS flags continuous assignments without a usable right-hand side.
var BadRHS = Rule{
	ID:          "R403",
	Name:        "BADRHS",
	Group:       GroupGateLevel,
	Description: "The right-hand side of an assign must be present and be an rvalue.",
	Message:     "Malformed RHS for 'assign'.",
	Severity:    core.SeverityError,
}

// ComplexLHS flags continuous assignments to anything but a signal or select.
var ComplexLHS = Rule{
	ID:          "R404",
	Name:        "COMPLEXLHS",
	Group:       GroupGateLevel,
	Description: "Left-hand side of an assignment must be a single wire or a part-select of one.",
	Message:     "LHS of 'assign' is not a simple signal or part-select. Found type: {type}",
	Severity:    core.SeverityError,
}

// ComplexRHS flags continuous assignments whose right-hand side computes.
var ComplexRHS = Rule{
	ID:          "R405",
	Name:        "COMPLEXRHS",
	Group:       GroupGateLevel,
	Description: "Right-hand side of an assignment must be an identifier, identifier[msb:lsb], or a simple literal.",
	Message:     "RHS of 'assign' {detail_msg}. In gate-level/structural mode, RHS must be an identifier, identifier[msb:lsb], or a simple literal.",
	Severity:    core.SeverityError,
	BadExample:  `assign y = a & b;`,
	GoodExample: `and g0 (y, a, b);`,
}

// PrimOnly flags denied switch-level, supply, pull and buffer primitives.
var PrimOnly = Rule{
	ID:          "R406",
	Name:        "PRIMONLY",
	Group:       GroupGateLevel,
	Description: "Only AND, OR, XOR, NOT, and their respective combinations.",
	Message:     "Non-primitive gate/module found. Allowed: {list_of_gates}.",
	Severity:    core.SeverityError,
}

// NoModule flags user-module instantiation inside gate-level modules.
var NoModule = Rule{
	ID:          "R407",
	Name:        "NOMODULE",
	Group:       GroupGateLevel,
	Description: "No module instantiation allowed inside a gate-level module.",
	Message:     "No module instantiation is allowed. A module with name {module_name} was found. Gate level modules should use gate primitives to build the module.",
	Severity:    core.SeverityError,
}

func init() {
	for _, r := range []Rule{
		Latch, AssignOrder,
		CaseDefault, XAssign, CaseIncomplete, XProp, WrongXProp,
		AlwaysFF, AlwaysStar, BlkSeq, NonBlkComb, AsyncReset, NegEdge,
		NoSpecialBlock, BadLHS, BadRHS, ComplexLHS, ComplexRHS, PrimOnly, NoModule,
	} {
		Register(r)
	}
}
