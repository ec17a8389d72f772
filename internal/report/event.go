// Package report defines test events and the sinks that receive them.
//
// A Reporter is the only channel between the assertion API and the outside
// world. The suite emits one Event per assertion outcome (Pass or Fail) and
// one per test body panic (Exception). Sinks decide how events are shown
// or kept:
//
//   - Terminal: coloured ✔/✘ lines for humans
//   - JSONLines: one JSON object per event, for tools
//   - Recorder: in-memory, for tests and the run-history store
//
// Multi fans a single event out to several sinks.
//
// An Event whose Kind is not one of the three known kinds is a framework
// bug. Sinks panic with *UnknownKindError rather than guess.
package report

import "fmt"

// Kind classifies an Event.
type Kind string

const (
	// Pass is emitted when an assertion predicate holds.
	Pass Kind = "pass"

	// Fail is emitted when an assertion predicate does not hold.
	Fail Kind = "fail"

	// Exception is emitted when a test body panics.
	Exception Kind = "exception"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case Pass, Fail, Exception:
		return true
	default:
		return false
	}
}

// Event is a single test outcome delivered to a Reporter.
type Event struct {
	Kind    Kind   `json:"kind"`
	Test    string `json:"test"`
	Message string `json:"message"`

	// Seq orders events within a run. Assigned by the suite's clock,
	// starting at 1.
	Seq int64 `json:"seq"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Test, e.Message)
}

// Reporter receives events. Implementations must be safe for use from the
// goroutine that completes an async test.
type Reporter interface {
	Receive(Event)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Event)

// Receive calls f(e).
func (f ReporterFunc) Receive(e Event) {
	f(e)
}

// UnknownKindError is raised (by panic) when a sink receives an Event with
// an unrecognised Kind.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown value `%s`. Please report a bug.", e.Kind)
}

// mustKnow panics with *UnknownKindError if k is not a known kind.
func mustKnow(k Kind) {
	if !k.Valid() {
		panic(&UnknownKindError{Kind: k})
	}
}
