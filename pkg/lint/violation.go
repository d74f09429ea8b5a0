package lint

// Violation is one rule violation. Two violations are equal when every field
// matches.
type Violation struct {
	Module  string `json:"module"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Line    int    `json:"line"`
}

// Collector accumulates violations, dropping exact duplicates. The first
// occurrence wins and insertion order is kept.
type Collector struct {
	seen       map[Violation]struct{}
	violations []Violation
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[Violation]struct{})}
}

// Add records v unless an identical violation was already recorded.
// It reports whether v was new.
func (c *Collector) Add(v Violation) bool {
	if c.seen == nil {
		c.seen = make(map[Violation]struct{})
	}
	if _, dup := c.seen[v]; dup {
		return false
	}
	c.seen[v] = struct{}{}
	c.violations = append(c.violations, v)
	return true
}

// Raise renders rule's message with args and records the violation.
func (c *Collector) Raise(module string, rule Rule, line int, args Args) bool {
	return c.Add(Violation{
		Module:  module,
		Rule:    rule.Name,
		Message: rule.Format(args),
		Line:    line,
	})
}

// Len returns the number of distinct violations collected.
func (c *Collector) Len() int { return len(c.violations) }

// Violations returns the collected violations in insertion order.
func (c *Collector) Violations() []Violation {
	return append([]Violation(nil), c.violations...)
}
