package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/leapstack-labs/rtllint/internal/cli/config"
	"github.com/leapstack-labs/rtllint/internal/state"
	"github.com/leapstack-labs/rtllint/pkg/hdl/ast"
	"github.com/leapstack-labs/rtllint/pkg/lint"
	"github.com/leapstack-labs/rtllint/pkg/lint/rtl"
	"github.com/leapstack-labs/rtllint/pkg/preprocess"
	"github.com/spf13/pflag"
)

// addPipelineFlags registers the flags shared by lint and preprocess.
func addPipelineFlags(fs *pflag.FlagSet) {
	fs.StringArrayP("include-dir", "I", nil, "Include directory searched for `include targets (repeatable)")
	fs.StringArrayP("define", "D", nil, "Macro definition passed to the parser (repeatable)")
	fs.String("scratch-dir", "", "Directory receiving cleaned files (default .rtllint/build)")
	fs.BoolP("test", "t", false, "Report prohibited constructs without failing")
	fs.String("parser", "", "HDL front-end command that prints the JSON syntax tree")
}

// PipelineFlags returns a flag set holding only the flags shared by lint
// and preprocess.
func PipelineFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("pipeline", pflag.ContinueOnError)
	addPipelineFlags(fs)
	return fs
}

// FileError is a per-file failure counted toward the run's failure tally.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// fileResult is everything reported for one input file.
type fileResult struct {
	Path       string
	Disabled   bool
	TestMode   bool
	Targets    []string
	Visited    []string
	Findings   []preprocess.Finding
	Violations []lint.Violation
	Errors     []FileError
	Comb       preprocess.Registry
	Seq        preprocess.Registry
}

// findingsFail reports whether the construct findings count toward failure.
func (f *fileResult) findingsFail() bool {
	return len(f.Findings) > 0 && !f.TestMode
}

// lintReport collects the results of one run over every input.
type lintReport struct {
	Files []*fileResult
}

// Totals counts what fails the run. Findings reported in test mode are
// informational and not counted.
func (r *lintReport) Totals() state.Totals {
	var t state.Totals
	for _, f := range r.Files {
		t.Violations += len(f.Violations)
		t.Errors += len(f.Errors)
		if f.findingsFail() {
			t.Findings += len(f.Findings)
		}
	}
	return t
}

// watchPaths returns every source file visited by the include traversal.
func (r *lintReport) watchPaths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.Files {
		for _, p := range f.Visited {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Strings(out)
	return out
}

// pipelineOptions carries the command-line inputs that are not part of the
// persistent configuration.
type pipelineOptions struct {
	Override  string
	XpropComb string
	XpropSeq  string
}

// pipeline runs include resolution, parsing and analysis for each input.
type pipeline struct {
	cfg      *config.Config
	logger   *slog.Logger
	resolver *preprocess.Resolver
	parser   ast.Parser
	rules    lint.ModuleRules
	override map[string][]string
	comb     map[string][]string
	seq      map[string][]string
}

// newPipeline builds a pipeline from the configuration. Malformed JSON in
// the override or xprop arguments is a usage error.
func newPipeline(cfg *config.Config, logger *slog.Logger, opts pipelineOptions) (*pipeline, error) {
	override, err := lint.ParseStringListMap(opts.Override)
	if err != nil {
		return nil, fmt.Errorf("invalid --override: %w", err)
	}
	comb, err := lint.ParseStringListMap(opts.XpropComb)
	if err != nil {
		return nil, fmt.Errorf("invalid --xprop-comb: %w", err)
	}
	seq, err := lint.ParseStringListMap(opts.XpropSeq)
	if err != nil {
		return nil, fmt.Errorf("invalid --xprop-seq: %w", err)
	}

	for _, name := range cfg.Disable {
		if !lint.IsKnown(name) {
			logger.Warn("unknown rule in disable list", slog.String("rule", name))
		}
	}

	p := &pipeline{
		cfg:      cfg,
		logger:   logger,
		resolver: newResolver(cfg, logger),
		parser:   newParser(cfg.ParserCommand),
		override: override,
		comb:     comb,
		seq:      seq,
	}
	p.loadRules()
	return p, nil
}

// loadRules reads the rule configuration file and applies the override and
// the disable list.
func (p *pipeline) loadRules() {
	p.rules = lint.LoadRuleConfig(p.cfg.RulesFile, p.logger).
		WithOverride(p.override).
		Without(p.cfg.Disable...)
}

// newResolver builds the include resolver with the configured construct
// catalog.
func newResolver(cfg *config.Config, logger *slog.Logger) *preprocess.Resolver {
	names := make([]string, 0, len(cfg.ProhibitedConstructs))
	for name := range cfg.ProhibitedConstructs {
		names = append(names, name)
	}
	sort.Strings(names)
	catalog := preprocess.ExtendCatalog(preprocess.DefaultCatalog(), cfg.ProhibitedConstructs, names)

	return preprocess.NewResolver(preprocess.Options{
		IncludeDirs: cfg.IncludeDirs,
		ScratchDir:  cfg.ScratchDir,
		TestMode:    cfg.TestMode,
		Scanner:     preprocess.NewScanner(catalog, logger),
		Logger:      logger,
	})
}

// Run lints every input in order.
func (p *pipeline) Run(ctx context.Context, inputs []string) *lintReport {
	report := &lintReport{}
	for _, input := range inputs {
		if ctx.Err() != nil {
			break
		}
		report.Files = append(report.Files, p.lintFile(ctx, input))
	}
	return report
}

func (p *pipeline) lintFile(ctx context.Context, input string) *fileResult {
	fr := &fileResult{Path: input, TestMode: p.cfg.TestMode}

	res, err := p.resolver.Run(ctx, input)
	if err != nil {
		fr.Errors = append(fr.Errors, FileError{Path: input, Err: err})
		return fr
	}
	fr.Disabled = res.Disabled
	fr.Targets = res.Targets
	fr.Visited = res.Visited
	fr.Findings = res.Findings
	fr.Comb, fr.Seq = res.Comb, res.Seq
	if res.Disabled {
		return fr
	}
	if res.Failed() {
		p.logger.Info("skipping analysis because of prohibited constructs",
			slog.String("path", input), slog.Int("findings", len(res.Findings)))
		return fr
	}

	comb := preprocess.Registry{}
	comb.Merge(res.Comb)
	comb.Merge(p.comb)
	seq := preprocess.Registry{}
	seq.Merge(res.Seq)
	seq.Merge(p.seq)

	analyzer := rtl.NewAnalyzer(rtl.Options{
		Rules:     p.rules,
		CombXprop: comb,
		SeqXprop:  seq,
		Logger:    p.logger,
	})

	includeDirs := append([]string{p.cfg.ScratchDir}, p.cfg.IncludeDirs...)
	collector := lint.NewCollector()
	for _, target := range res.Targets {
		src, err := p.parser.Parse(ctx, ast.ParseRequest{
			Path:        target,
			IncludeDirs: includeDirs,
			Defines:     p.cfg.Defines,
		})
		if err != nil {
			fr.Errors = append(fr.Errors, FileError{Path: target, Err: err})
			continue
		}
		analyzer.AnalyzeInto(src, collector)
	}

	fr.Violations = collector.Violations()
	lint.Sort(fr.Violations)
	return fr
}
