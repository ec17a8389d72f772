package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/zigj/internal/report"
)

// ErrRunNotFound is returned by ReadRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// ListRuns returns all runs ordered by seq.
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	return s.queryRuns(ctx, `
		SELECT id, suite, passed, failed, exceptions, seq
		FROM runs
		ORDER BY seq ASC
	`)
}

// ListRunsForSuite returns the runs of one suite ordered by seq.
func (s *Store) ListRunsForSuite(ctx context.Context, suite string) ([]Run, error) {
	return s.queryRuns(ctx, `
		SELECT id, suite, passed, failed, exceptions, seq
		FROM runs
		WHERE suite = ?
		ORDER BY seq ASC
	`, suite)
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Suite, &r.Passed, &r.Failed, &r.Exceptions, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a single run. Returns an error wrapping ErrRunNotFound if
// no run has the given id.
func (s *Store) ReadRun(ctx context.Context, runID string) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, suite, passed, failed, exceptions, seq
		FROM runs
		WHERE id = ?
	`, runID).Scan(&r.ID, &r.Suite, &r.Passed, &r.Failed, &r.Exceptions, &r.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", runID, err)
	}
	return r, nil
}

// ReadEvents returns the events of a run ordered by seq.
// Returns an empty slice (not nil) for an unknown run or a run without events.
func (s *Store) ReadEvents(ctx context.Context, runID string) ([]report.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, test, message
		FROM events
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []report.Event{}
	for rows.Next() {
		var (
			e    report.Event
			kind string
		)
		if err := rows.Scan(&e.Seq, &kind, &e.Test, &e.Message); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Kind = report.Kind(kind)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
