package preprocess

// Construct is one prohibited lexical pattern. Patterns are matched
// case-insensitively, line by line.
type Construct struct {
	Pattern     string `json:"pattern" yaml:"pattern" koanf:"pattern"`
	Description string `json:"description" yaml:"description" koanf:"description"`
}

// Category groups related constructs.
type Category struct {
	Name       string
	Constructs []Construct
}

// DefaultCatalog returns the built-in prohibited constructs.
func DefaultCatalog() []Category {
	return []Category{
		{
			Name: "data_types",
			Constructs: []Construct{
				{`\breg\b`, "Legacy `reg` declarations are prohibited; use `logic`"},
				{`\binteger\b`, "`integer` is a 32-bit signed variable, often unsynthesizable; use sized, signed `logic` instead"},
				{`\breal\b`, "`real` type is not synthesizable"},
				{`\btime\b`, "`time` type is not synthesizable"},
				{`\brealtime\b`, "`realtime` type is not synthesizable"},
			},
		},
		{
			Name: "operators",
			Constructs: []Construct{
				{`!==`, "Case inequality operator (!==) is not synthesizable; use !="},
				{`/`, "Division operator (/) is prohibited"},
				{`%`, "Modulo operator (%) is prohibited"},
				{`\*\*`, "Power operator (**) is prohibited"},
			},
		},
		{
			Name: "statements",
			Constructs: []Construct{
				{`\binitial\b`, "`initial` blocks are generally not synthesizable for FPGA/ASIC logic"},
				{`#\d+`, "Delay statements (#delay) are for simulation only and are not synthesizable"},
				{`<=\s*#`, "Delayed non-blocking assignments are not synthesizable"},
				{`=\s*#`, "Delayed blocking assignments are not synthesizable"},
				{`\bcasex\b`, "`casex` can cause simulation-synthesis mismatches due to its handling of X values"},
				{`\bfor\b`, "Synthesizable `for` loops must have constant bounds; often better to use `generate for` for replication"},
				{`\bwhile\b`, "`while` loops are generally not synthesizable"},
				{`\brepeat\b`, "`repeat` loops are generally not synthesizable"},
				{`\bforever\b`, "`forever` loops are not synthesizable"},
				{`\bfork\b`, "`fork`/`join` constructs are for simulation and not synthesizable"},
				{`\bjoin\b`, "`fork`/`join` constructs are for simulation and not synthesizable"},
				{`\bdeassign\b`, "`deassign` is not synthesizable"},
				{`\bforce\b`, "`force` and `release` are for simulation/testbenches only"},
				{`\brelease\b`, "`force` and `release` are for simulation/testbenches only"},
				{`\bspecify\b`, "`specify` blocks are for simulation timing and are not for synthesis"},
				{`\bdefparam\b`, "`defparam` is a legacy construct; use parameterized modules instead"},
			},
		},
		{
			Name: "port_sensitivity",
			Constructs: []Construct{
				{`\binout\b`, "`inout` ports are complex and often discouraged; use separate input and output ports with a mux"},
				{`\bnegedge\b`, "Negative edge-triggered logic is uncommon and can complicate timing analysis"},
			},
		},
		{
			Name: "gate_instances",
			Constructs: []Construct{
				{`\b(nmos|pmos|cmos|rnmos|rpmos|rcmos)\b`, "Transistor-level primitives are not for general synthesis"},
				{`\b(tran|tranif0|tranif1|rtran|rtranif0|rtranif1)\b`, "Transfer-gate primitives are not for general synthesis"},
			},
		},
		{
			Name: "net_types",
			Constructs: []Construct{
				{`\b(supply0|supply1|tri|triand|trior|tri0|tri1)\b`, "Legacy net types are prohibited; use `logic` and connect to 1'b0 or 1'b1"},
			},
		},
	}
}

// ExtendCatalog appends extra constructs to base. Constructs for an
// existing category are added to it; new categories are appended in the
// order of names.
func ExtendCatalog(base []Category, extra map[string][]Construct, names []string) []Category {
	out := make([]Category, 0, len(base)+len(extra))
	index := make(map[string]int, len(base))
	for _, c := range base {
		index[c.Name] = len(out)
		out = append(out, Category{Name: c.Name, Constructs: append([]Construct(nil), c.Constructs...)})
	}
	for _, name := range names {
		constructs, ok := extra[name]
		if !ok {
			continue
		}
		if i, exists := index[name]; exists {
			out[i].Constructs = append(out[i].Constructs, constructs...)
			continue
		}
		index[name] = len(out)
		out = append(out, Category{Name: name, Constructs: append([]Construct(nil), constructs...)})
	}
	return out
}
