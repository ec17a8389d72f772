package store

import (
	"context"
	"fmt"

	"github.com/roach88/zigj/internal/report"
)

// Run is one recorded suite run.
type Run struct {
	ID         string `json:"id"`
	Suite      string `json:"suite"`
	Passed     int    `json:"passed"`
	Failed     int    `json:"failed"`
	Exceptions int    `json:"exceptions"`

	// Seq is assigned by the store on first write; it is ignored on input.
	Seq int64 `json:"seq"`
}

// Pass reports whether the run had no failures and no exceptions.
func (r Run) Pass() bool {
	return r.Failed == 0 && r.Exceptions == 0
}

// WriteRun stores a run and its events in one transaction.
//
// Returns inserted=false, and writes nothing, if a run with the same id
// already exists.
func (s *Store) WriteRun(ctx context.Context, run Run, events []report.Event) (inserted bool, err error) {
	if run.ID == "" {
		return false, fmt.Errorf("write run: empty run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, suite, passed, failed, exceptions, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs))
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Suite,
		run.Passed,
		run.Failed,
		run.Exceptions,
	)
	if err != nil {
		return false, fmt.Errorf("write run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write run: rows affected: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (run_id, seq, kind, test, message)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return false, fmt.Errorf("write run: prepare events: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.ExecContext(ctx, run.ID, e.Seq, string(e.Kind), e.Test, e.Message); err != nil {
			return false, fmt.Errorf("write run: event seq %d: %w", e.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write run: commit: %w", err)
	}
	return true, nil
}
