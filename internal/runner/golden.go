package runner

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/zigj/internal/report"
)

// Snapshot is the canonical, deterministic view of a Result used for
// golden comparison. Durations are left out.
type Snapshot struct {
	Suite  string         `json:"suite"`
	RunID  string         `json:"run_id"`
	Events []report.Event `json:"events"`
	Counts report.Counts  `json:"counts"`
	Pass   bool           `json:"pass"`
}

// SnapshotOf builds the snapshot of r.
func SnapshotOf(r *Result) Snapshot {
	events := r.Events
	if events == nil {
		events = []report.Event{}
	}
	return Snapshot{
		Suite:  r.Suite,
		RunID:  r.RunID,
		Events: events,
		Counts: r.Counts(),
		Pass:   r.Pass,
	}
}

// MarshalSnapshot renders r as indented JSON with a trailing newline.
func MarshalSnapshot(r *Result) ([]byte, error) {
	data, err := json.MarshalIndent(SnapshotOf(r), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// AssertGolden compares r against testdata/golden/{name}.golden.
//
// Run ids differ per run unless the suite used a fixed generator; use
// WithRunIDGenerator(testutil.NewFixedRunIDGenerator(...)) in golden tests.
//
// To regenerate golden files, run:
//
//	go test ./internal/runner -update
func AssertGolden(t *testing.T, name string, r *Result) {
	t.Helper()

	data, err := MarshalSnapshot(r)
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
