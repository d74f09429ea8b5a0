package preprocess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrTargetNotFound is returned when the lint target cannot be located.
var ErrTargetNotFound = errors.New("lint target not found")

// DefaultScratchDir is where cleaned files are written when no scratch
// directory is configured.
const DefaultScratchDir = ".rtllint/build"

// Options configures a Resolver.
type Options struct {
	// IncludeDirs are searched in order to locate include targets.
	IncludeDirs []string
	// ScratchDir receives the cleaned copy of every visited file.
	ScratchDir string
	// TestMode keeps construct findings from failing the run.
	TestMode bool
	// Scanner checks cleaned files. Nil uses the default catalog.
	Scanner *Scanner
	// Unparsable lists basename fragments of files whose module bodies are
	// removed. Nil uses DefaultUnparsable.
	Unparsable []string
	Logger     *slog.Logger
}

// FileNode is one visited file.
type FileNode struct {
	Path       string   // resolved absolute path
	Raw        string   // original content
	Stripped   string   // comments and strings removed
	Cleaned    string   // parser-ready content
	Includes   []string // include targets named in Raw
	Comb       Registry
	Seq        Registry
	Unparsable bool
	Output     string // cleaned copy in the scratch directory
}

// Result is the outcome of one resolution run.
type Result struct {
	// Disabled is set when the input carried the lint-off marker.
	Disabled bool
	// Targets are the cleaned paths of the top-level targets.
	Targets []string
	// Visited lists every processed source file in BFS order.
	Visited []string
	// Cleaned lists the cleaned path of every processed file.
	Cleaned  []string
	Findings []Finding
	Comb     Registry
	Seq      Registry
	TestMode bool
}

// Failed reports whether construct findings fail the run.
func (r *Result) Failed() bool {
	return len(r.Findings) > 0 && !r.TestMode
}

// Resolver runs the include traversal.
type Resolver struct {
	opts    Options
	logger  *slog.Logger
	scanner *Scanner
}

// NewResolver creates a resolver.
func NewResolver(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.ScratchDir == "" {
		opts.ScratchDir = DefaultScratchDir
	}
	if opts.Unparsable == nil {
		opts.Unparsable = DefaultUnparsable
	}
	scanner := opts.Scanner
	if scanner == nil {
		scanner = NewScanner(DefaultCatalog(), logger)
	}
	return &Resolver{opts: opts, logger: logger, scanner: scanner}
}

// Run processes input and everything it transitively includes. Per-file
// read and write failures are logged and skip that file; only a missing or
// unreadable input, an unresolvable target or an unusable scratch
// directory are errors.
func (r *Resolver) Run(ctx context.Context, input string) (*Result, error) {
	inputPath, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input path: %w", err)
	}
	raw, err := os.ReadFile(inputPath) //nolint:gosec // G304: user-supplied source file
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	res := &Result{Comb: Registry{}, Seq: Registry{}, TestMode: r.opts.TestMode}

	mode, redirect := DetectTarget(string(raw))
	var targetPath string
	switch mode {
	case TargetOff:
		r.logger.Info("lint disabled by marker", slog.String("path", inputPath))
		res.Disabled = true
		return res, nil
	case TargetRedirect:
		targetPath = r.FindInclude(redirect, filepath.Dir(inputPath))
		if targetPath == "" {
			return nil, fmt.Errorf("%w: %q (redirected from %s)", ErrTargetNotFound, redirect, inputPath)
		}
	default:
		targetPath = canonical(inputPath)
	}

	if err := os.MkdirAll(r.opts.ScratchDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	queue := []string{targetPath}
	visited := map[string]bool{targetPath: true}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := queue[0]
		queue = queue[1:]

		node, ok := r.process(path)
		if !ok {
			continue
		}
		res.Visited = append(res.Visited, node.Path)
		res.Cleaned = append(res.Cleaned, node.Output)
		res.Comb.Merge(node.Comb)
		res.Seq.Merge(node.Seq)

		if !node.Unparsable {
			res.Findings = append(res.Findings, r.scanner.Scan(node.Path, Strip(node.Cleaned))...)
		}

		for _, name := range node.Includes {
			found := r.FindInclude(name, "")
			if found == "" {
				r.logger.Warn("could not find included file in any include directory",
					slog.String("include", name),
					slog.String("from", node.Path))
				continue
			}
			if !visited[found] {
				visited[found] = true
				queue = append(queue, found)
			}
		}
	}

	top := filepath.Base(targetPath)
	for _, out := range res.Cleaned {
		if filepath.Base(out) == top {
			res.Targets = append(res.Targets, out)
		}
	}

	r.logger.Debug("include resolution finished",
		slog.String("input", inputPath),
		slog.Int("visited", len(res.Visited)),
		slog.Int("findings", len(res.Findings)))
	return res, nil
}

// process reads, analyses, cleans and writes one file.
func (r *Resolver) process(path string) (*FileNode, bool) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path reached through the include graph
	if err != nil {
		r.logger.Warn("failed to read file, skipping", slog.String("path", path), slog.Any("error", err))
		return nil, false
	}

	base := filepath.Base(path)
	node := &FileNode{
		Path:       path,
		Raw:        string(data),
		Unparsable: isUnparsable(base, r.opts.Unparsable),
	}
	node.Stripped = Strip(node.Raw)
	node.Comb, node.Seq = ExtractXprop(node.Stripped)
	node.Cleaned = Clean(node.Raw)
	if node.Unparsable {
		node.Cleaned = RemoveModuleBodies(node.Cleaned)
	}
	node.Includes = Includes(node.Raw)

	node.Output = filepath.Join(r.opts.ScratchDir, base)
	if err := os.WriteFile(node.Output, []byte(node.Cleaned), 0o600); err != nil {
		r.logger.Warn("failed to write cleaned file, skipping", slog.String("path", node.Output), slog.Any("error", err))
		return nil, false
	}
	return node, true
}

// FindInclude locates name in the include directories, returning the
// canonical path or "" when not found. Absolute names are used as they
// are. When fallback is not empty it is searched after the include
// directories.
func (r *Resolver) FindInclude(name, fallback string) string {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return canonical(name)
		}
		return ""
	}
	dirs := r.opts.IncludeDirs
	if fallback != "" {
		dirs = append(append([]string(nil), dirs...), fallback)
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return canonical(candidate)
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
