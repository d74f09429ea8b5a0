package state

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leapstack-labs/rtllint/pkg/lint"
	"github.com/leapstack-labs/rtllint/pkg/preprocess"
)

// RecordViolations stores the violations reported for one input file.
func (s *SQLiteStore) RecordViolations(ctx context.Context, runID, file string, vs []lint.Violation) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if len(vs) == 0 {
		return nil
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO violations (run_id, file, module, rule, message, line) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare violation insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, v := range vs {
			if _, err := stmt.ExecContext(ctx, runID, file, v.Module, v.Rule, v.Message, v.Line); err != nil {
				return fmt.Errorf("failed to record violation: %w", err)
			}
		}
		return nil
	})
}

// RecordFindings stores prohibited-construct findings.
func (s *SQLiteStore) RecordFindings(ctx context.Context, runID string, fs []preprocess.Finding) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if len(fs) == 0 {
		return nil
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO findings (run_id, path, line, col, category, description, text) VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare finding insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, f := range fs {
			if _, err := stmt.ExecContext(ctx, runID, f.Path, f.Line, f.Column, f.Category, f.Description, f.Text); err != nil {
				return fmt.Errorf("failed to record finding: %w", err)
			}
		}
		return nil
	})
}

// RecordError stores a per-file failure.
func (s *SQLiteStore) RecordError(ctx context.Context, runID, path, message string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO run_errors (run_id, path, message) VALUES (?, ?, ?)`, runID, path, message); err != nil {
		return fmt.Errorf("failed to record error: %w", err)
	}
	return nil
}

// GetViolations returns the violations of a run in report order.
func (s *SQLiteStore) GetViolations(ctx context.Context, runID string) ([]ViolationRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT file, module, rule, message, line FROM violations
		 WHERE run_id = ? ORDER BY file, module, line, rule`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get violations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ViolationRecord
	for rows.Next() {
		var r ViolationRecord
		if err := rows.Scan(&r.File, &r.Module, &r.Rule, &r.Message, &r.Line); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get violations: %w", err)
	}
	return out, nil
}

// GetFindings returns the construct findings of a run.
func (s *SQLiteStore) GetFindings(ctx context.Context, runID string) ([]preprocess.Finding, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, line, col, category, description, text FROM findings
		 WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []preprocess.Finding
	for rows.Next() {
		var f preprocess.Finding
		if err := rows.Scan(&f.Path, &f.Line, &f.Column, &f.Category, &f.Description, &f.Text); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get findings: %w", err)
	}
	return out, nil
}

// GetErrors returns the per-file failures of a run.
func (s *SQLiteStore) GetErrors(ctx context.Context, runID string) ([]FileErrorRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, message FROM run_errors WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get errors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []FileErrorRecord
	for rows.Next() {
		var e FileErrorRecord
		if err := rows.Scan(&e.Path, &e.Message); err != nil {
			return nil, fmt.Errorf("failed to scan error: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get errors: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
