package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

const watchDebounce = 200 * time.Millisecond

// watchLint lints once, then re-runs whenever a file in the include closure
// or the rule configuration changes. It returns when interrupted.
func watchLint(ctx context.Context, cmdCtx *CommandContext, p *pipeline, inputs []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool)
	addDirs := func(report *lintReport) {
		paths := append(report.watchPaths(), inputs...)
		if p.cfg.RulesFile != "" {
			paths = append(paths, p.cfg.RulesFile)
		}
		for _, path := range paths {
			dir := filepath.Dir(path)
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				cmdCtx.Logger.Warn("cannot watch directory", slog.String("dir", dir), slog.String("error", err.Error()))
				continue
			}
			watched[dir] = true
		}
	}

	relevant := func(report *lintReport) map[string]bool {
		set := make(map[string]bool)
		for _, path := range append(report.watchPaths(), inputs...) {
			set[absPath(path)] = true
		}
		if p.cfg.RulesFile != "" {
			set[absPath(p.cfg.RulesFile)] = true
		}
		return set
	}

	var mu sync.Mutex
	report := lintOnce(ctx, cmdCtx, p, inputs)
	addDirs(report)
	files := relevant(report)
	isRelevant := func(name string) bool {
		mu.Lock()
		defer mu.Unlock()
		return files[absPath(name)]
	}
	cmdCtx.Renderer.Muted("Watching for changes. Press Ctrl+C to stop.")

	trigger := make(chan string, 1)
	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var debounce *time.Timer
		var timerC <-chan time.Time
		var changed string
		for {
			select {
			case <-egctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if !isRelevant(event.Name) {
					continue
				}
				changed = event.Name
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.NewTimer(watchDebounce)
				timerC = debounce.C
			case <-timerC:
				timerC = nil
				select {
				case trigger <- changed:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				cmdCtx.Logger.Warn("watcher error", slog.String("error", err.Error()))
			}
		}
	})

	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case name := <-trigger:
				cmdCtx.Logger.Debug("change detected", slog.String("path", name))
				if absPath(name) == absPath(p.cfg.RulesFile) {
					p.loadRules()
				}
				cmdCtx.Renderer.Muted(fmt.Sprintf("Change detected: %s", filepath.Base(name)))
				report := lintOnce(egctx, cmdCtx, p, inputs)
				addDirs(report)
				mu.Lock()
				files = relevant(report)
				mu.Unlock()
			}
		}
	})

	return eg.Wait()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(path)
}
