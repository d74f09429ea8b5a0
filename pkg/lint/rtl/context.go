package rtl

import (
	"github.com/leapstack-labs/rtllint/pkg/lint"
)

// moduleCtx is the per-module traversal context. Its fields are fixed when
// the module is entered.
type moduleCtx struct {
	name  string
	line  int
	rules lint.RuleSet
	comb  map[string]bool // signals in the combinational xprop registry
	seq   map[string]bool // signals in the sequential xprop registry
	out   *lint.Collector
}

// raise records a violation if rule is enabled for the module.
func (m *moduleCtx) raise(rule lint.Rule, line int, args lint.Args) {
	if !m.rules.Has(rule.Name) {
		return
	}
	m.out.Raise(m.name, rule, line, args)
}

// Construct tags recorded with conditional assignments.
const (
	tagIf   = "if-statement"
	tagCase = "case-statement"
)

type condSite struct {
	line int
	tag  string
}

// condMap records the first conditional assignment site of each signal,
// remembering insertion order.
type condMap struct {
	order []string
	sites map[string]condSite
}

func (c *condMap) record(name string, site condSite) {
	if c.sites == nil {
		c.sites = make(map[string]condSite)
	}
	if _, ok := c.sites[name]; ok {
		return
	}
	c.sites[name] = site
	c.order = append(c.order, name)
}

type latchKey struct {
	block  int
	signal string
	rule   string
}

// blockCtx is the context of one procedural block. A new value is created
// for every block; defaults is fixed before the body is visited, while
// flagged and cond accumulate during the visit.
type blockCtx struct {
	mod      *moduleCtx
	line     int
	comb     bool
	defaults map[string]bool
	flagged  map[latchKey]bool
	cond     *condMap
}

func newBlockCtx(m *moduleCtx, line int, comb bool, defaults map[string]bool) *blockCtx {
	if defaults == nil {
		defaults = map[string]bool{}
	}
	return &blockCtx{
		mod:      m,
		line:     line,
		comb:     comb,
		defaults: defaults,
		flagged:  make(map[latchKey]bool),
		cond:     &condMap{},
	}
}

// checkXprop cross-checks the conditionally assigned signals against the
// registries. own is the registry matching the block's domain and other is
// the opposite one.
func (b *blockCtx) checkXprop(own, other map[string]bool) {
	for _, name := range b.cond.order {
		site := b.cond.sites[name]
		if !own[name] {
			b.mod.raise(lint.XProp, b.line, lint.Args{"name": name, "type": site.tag})
		}
		if other[name] {
			b.mod.raise(lint.WrongXProp, b.line, lint.Args{"name": name})
		}
	}
}
