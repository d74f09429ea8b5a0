package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const runColumns = `id, started_at, finished_at, inputs, status, violation_count, finding_count, error_count`

// CreateRun starts a new run for the given inputs.
func (s *SQLiteStore) CreateRun(ctx context.Context, inputs []string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if inputs == nil {
		inputs = []string{}
	}

	run := &Run{
		ID:        generateID(),
		StartedAt: time.Now().UTC(),
		Inputs:    inputs,
		Status:    RunStatusRunning,
	}

	encoded, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inputs: %w", err)
	}

	s.logger.Debug("creating run", slog.String("id", run.ID), slog.Int("inputs", len(inputs)))

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lint_runs (id, started_at, inputs, status) VALUES (?, ?, ?, ?)`,
		run.ID, formatTime(run.StartedAt), string(encoded), string(run.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun stores the totals of a run and marks it passed or failed.
func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, totals Totals) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	status := RunStatusPassed
	if totals.Failed() {
		status = RunStatusFailed
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE lint_runs
		 SET finished_at = ?, status = ?, violation_count = ?, finding_count = ?, error_count = ?
		 WHERE id = ?`,
		formatTime(time.Now()), string(status), totals.Violations, totals.Findings, totals.Errors, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// GetRun retrieves a run by ID or by a unique ID prefix.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM lint_runs WHERE id = ? OR id LIKE ? ORDER BY id = ? DESC LIMIT 2`,
		id, id+"%", id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var found []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case found[0].ID == id || len(found) == 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM lint_runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run                 Run
		startedAt, inputs   string
		status              string
		finishedAt          sql.NullString
		violations, finding int
		errCount            int
	)
	if err := row.Scan(&run.ID, &startedAt, &finishedAt, &inputs, &status, &violations, &finding, &errCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		t, err := parseTime(finishedAt.String)
		if err != nil {
			return nil, err
		}
		run.FinishedAt = &t
	}
	if err := json.Unmarshal([]byte(inputs), &run.Inputs); err != nil {
		return nil, fmt.Errorf("failed to decode inputs of run %s: %w", run.ID, err)
	}
	run.Status = RunStatus(status)
	run.Totals = Totals{Violations: violations, Findings: finding, Errors: errCount}
	return &run, nil
}
