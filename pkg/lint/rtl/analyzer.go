package rtl

import (
	"log/slog"

	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
	"github.com/leapstack-labs/rtllint/pkg/lint"
)

// Options configures an Analyzer. It is read-only once passed in.
type Options struct {
	// Rules maps module names to enabled rules. Modules without an entry
	// have no rules enabled.
	Rules lint.ModuleRules
	// CombXprop maps module names to signals declared through the
	// combinational X-propagation macro family.
	CombXprop map[string][]string
	// SeqXprop is the sequential counterpart of CombXprop.
	SeqXprop map[string][]string
	Logger   *slog.Logger
}

// Analyzer runs the RTL rules against parsed sources.
type Analyzer struct {
	opts   Options
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{opts: opts, logger: logger}
}

// Analyze checks every module in src and returns the distinct violations
// in traversal order.
func (a *Analyzer) Analyze(src *ast.Source) []lint.Violation {
	out := lint.NewCollector()
	a.AnalyzeInto(src, out)
	return out.Violations()
}

// AnalyzeInto checks every module in src and records violations in out.
// Sharing a collector across files keeps the report duplicate-free.
func (a *Analyzer) AnalyzeInto(src *ast.Source, out *lint.Collector) {
	if src == nil {
		return
	}
	for _, m := range src.Modules {
		if m == nil {
			continue
		}
		before := out.Len()
		a.newModuleCtx(m, out).visitItems(m.Items, true)
		a.logger.Debug("analyzed module",
			slog.String("module", m.Name),
			slog.Int("rules", len(a.opts.Rules.Rules(m.Name))),
			slog.Int("violations", out.Len()-before))
	}
}

// Analyze is a convenience wrapper around NewAnalyzer(opts).Analyze(src).
func Analyze(src *ast.Source, opts Options) []lint.Violation {
	return NewAnalyzer(opts).Analyze(src)
}

func (a *Analyzer) newModuleCtx(m *ast.Module, out *lint.Collector) *moduleCtx {
	return &moduleCtx{
		name:  m.Name,
		line:  m.Line,
		rules: a.opts.Rules.RuleSet(m.Name),
		comb:  toSet(a.opts.CombXprop[m.Name]),
		seq:   toSet(a.opts.SeqXprop[m.Name]),
		out:   out,
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
