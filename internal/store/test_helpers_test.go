package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/zigj/internal/report"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEvents returns a pass, a fail and an exception event.
func createTestEvents() []report.Event {
	return []report.Event{
		{Kind: report.Pass, Test: "arrays", Message: "identical arrays", Seq: 1},
		{Kind: report.Fail, Test: "doublethink", Message: "two plus two equals five", Seq: 2},
		{Kind: report.Exception, Test: "explodes", Message: "boom", Seq: 3},
	}
}
