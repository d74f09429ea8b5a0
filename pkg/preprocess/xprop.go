package preprocess

import (
	"regexp"
	"sort"
	"strings"
)

// Registry maps module names to signals declared through one X-propagation
// macro family. Signal lists keep first-declaration order without
// duplicates.
type Registry map[string][]string

// Add records signals for module.
func (r Registry) Add(module string, signals ...string) {
	for _, sig := range signals {
		if !r.Has(module, sig) {
			r[module] = append(r[module], sig)
		}
	}
}

// Has reports whether signal is declared for module.
func (r Registry) Has(module, signal string) bool {
	for _, s := range r[module] {
		if s == signal {
			return true
		}
	}
	return false
}

// Merge adds every entry of other to r.
func (r Registry) Merge(other map[string][]string) {
	for module, signals := range other {
		r.Add(module, signals...)
	}
}

// Modules returns the module names in sorted order.
func (r Registry) Modules() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	moduleBlockPattern = regexp.MustCompile(`(?s)\bmodule\s+([a-zA-Z_]\w*)\b(.*?)\bendmodule\b`)
	combMacroPattern   = regexp.MustCompile("`ECE2300(?:_XPROP)?\\d*\\s*\\(\\s*([^,]+)\\s*,\\s*(?:[^)]+)\\s*\\)")
	seqMacroPattern    = regexp.MustCompile("`ECE2300_SEQ(?:_XPROP)?\\d*\\s*\\(\\s*([^,]+)\\s*,\\s*(?:[^)]+)\\s*\\)")
)

// ExtractXprop finds the X-propagation macro calls inside every
// module ... endmodule span of stripped text and returns the first macro
// argument of each call, per module, for the combinational and the
// sequential family.
func ExtractXprop(stripped string) (comb, seq Registry) {
	comb, seq = Registry{}, Registry{}
	for _, m := range moduleBlockPattern.FindAllStringSubmatch(stripped, -1) {
		module, body := m[1], m[2]
		for _, call := range combMacroPattern.FindAllStringSubmatch(body, -1) {
			comb.Add(module, strings.TrimSpace(call[1]))
		}
		for _, call := range seqMacroPattern.FindAllStringSubmatch(body, -1) {
			seq.Add(module, strings.TrimSpace(call[1]))
		}
	}
	return comb, seq
}
