// Package state records lint runs in a SQLite history database.
//
// Each run stores its inputs, the totals that decided pass or fail, and
// every violation, construct finding and file error it reported, so that
// `rtllint history` can show past results without re-running the linter.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/rtllint/pkg/lint"
	"github.com/leapstack-labs/rtllint/pkg/preprocess"
)

// ErrRunNotFound is returned when no run matches an ID.
var ErrRunNotFound = errors.New("run not found")

// RunStatus is the outcome of a lint run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one recorded lint invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	Inputs     []string
	Status     RunStatus
	Totals     Totals
}

// Totals counts what a run reported.
type Totals struct {
	Violations int
	Findings   int
	Errors     int
}

// Failed reports whether the totals fail a run.
func (t Totals) Failed() bool {
	return t.Violations+t.Findings+t.Errors > 0
}

// ViolationRecord is a stored rule violation.
type ViolationRecord struct {
	File string
	lint.Violation
}

// FileErrorRecord is a stored per-file failure.
type FileErrorRecord struct {
	Path    string
	Message string
}

// Store is the run-history interface used by the CLI.
type Store interface {
	CreateRun(ctx context.Context, inputs []string) (*Run, error)
	RecordViolations(ctx context.Context, runID, file string, vs []lint.Violation) error
	RecordFindings(ctx context.Context, runID string, fs []preprocess.Finding) error
	RecordError(ctx context.Context, runID, path, message string) error
	CompleteRun(ctx context.Context, runID string, totals Totals) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	GetViolations(ctx context.Context, runID string) ([]ViolationRecord, error)
	GetFindings(ctx context.Context, runID string) ([]preprocess.Finding, error)
	GetErrors(ctx context.Context, runID string) ([]FileErrorRecord, error)
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
