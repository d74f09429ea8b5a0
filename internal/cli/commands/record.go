package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/rtllint/internal/state"
)

// openStore opens the history database. With create unset a missing
// database is an error instead of an empty history.
func openStore(path string, logger *slog.Logger, create bool) (*state.SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("no state database configured")
	}
	if create {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no lint history at %s (run `rtllint lint --record` first)", path)
	}
	return state.OpenAndMigrate(path, logger)
}

// recordRun stores the report in the history database and returns the run ID.
func recordRun(ctx context.Context, cmdCtx *CommandContext, inputs []string, report *lintReport) (string, error) {
	store, err := openStore(cmdCtx.Cfg.StatePath, cmdCtx.Logger, true)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()

	return writeRun(ctx, store, inputs, report)
}

// writeRun records one report as a completed run.
func writeRun(ctx context.Context, store state.Store, inputs []string, report *lintReport) (string, error) {
	run, err := store.CreateRun(ctx, inputs)
	if err != nil {
		return "", err
	}

	for _, f := range report.Files {
		if len(f.Violations) > 0 {
			if err := store.RecordViolations(ctx, run.ID, f.Path, f.Violations); err != nil {
				return run.ID, err
			}
		}
		if len(f.Findings) > 0 {
			if err := store.RecordFindings(ctx, run.ID, f.Findings); err != nil {
				return run.ID, err
			}
		}
		for _, fe := range f.Errors {
			if err := store.RecordError(ctx, run.ID, fe.Path, fe.Err.Error()); err != nil {
				return run.ID, err
			}
		}
	}

	if err := store.CompleteRun(ctx, run.ID, report.Totals()); err != nil {
		return run.ID, err
	}
	return run.ID, nil
}
