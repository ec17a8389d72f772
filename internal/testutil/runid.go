// Package testutil holds deterministic helpers for zigj's own tests.
package testutil

import "sync"

// FixedRunIDGenerator returns the same run id every time.
//
// The same suite run with the same FixedRunIDGenerator produces
// byte-identical results, which golden snapshots rely on.
//
// Thread-safety: FixedRunIDGenerator is stateless and safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a fixed run id generator.
//
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run id.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}

// SequenceRunIDGenerator returns predetermined run ids in order.
//
// Panics once all ids have been consumed: a test that starts more runs than
// it declared is misconfigured.
type SequenceRunIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewSequenceRunIDGenerator creates a generator that returns ids in order.
func NewSequenceRunIDGenerator(ids ...string) *SequenceRunIDGenerator {
	return &SequenceRunIDGenerator{ids: ids}
}

// Generate returns the next predetermined id.
func (g *SequenceRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("SequenceRunIDGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
