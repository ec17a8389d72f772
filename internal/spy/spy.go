// Package spy wraps callables so tests can inspect how they were called.
//
// A Spy records the arguments of every invocation and whether it returned or
// threw. "Threw" covers both a returned non-nil error and a panic; either way
// the caller of the spy receives NoValue instead of the failure.
package spy

import (
	"fmt"
	"sync"

	"github.com/roach88/zigj/internal/value"
)

// Func is the single shape a Spy wraps. Callables of any arity are adapted
// to it (see Adapt0, Adapt1, Adapt2 and Variadic).
type Func func(args ...any) (any, error)

// sentinel is a distinguished marker value. Pointers keep markers distinct
// from any value a wrapped callable could return.
type sentinel struct{ name string }

func (s *sentinel) String() string { return s.name }

var (
	// NoValue is returned by a spy whose wrapped callable threw.
	NoValue = &sentinel{name: "<no value>"}

	// Unit is returned by a spy created without a callable.
	Unit = &sentinel{name: "<unit>"}
)

// Spy records calls to a wrapped Func.
//
// INVARIANT: len(calls) == len(outcomes) at all times. A call reserves its
// slot in both slices, under one lock, before the wrapped Func runs, so
// calls[i] is the i-th invocation even when the Func calls its own spy.
// outcomes[i] stays pending until that invocation settles.
//
// Thread-safety: snapshots may be taken from any goroutine. Invocations
// hold the lock only while recording, never while the wrapped Func runs.
type Spy struct {
	mu       sync.Mutex
	fn       Func
	calls    [][]any
	outcomes []Outcome
}

// New wraps fn. A nil fn makes a call counter that returns Unit.
func New(fn Func) *Spy {
	return &Spy{fn: fn}
}

// Counter returns a spy with no underlying callable.
func Counter() *Spy {
	return New(nil)
}

// Call invokes the wrapped Func with args and records the invocation.
// Failures of the wrapped Func are recorded and NoValue is returned.
func (s *Spy) Call(args ...any) any {
	recorded := make([]any, len(args))
	copy(recorded, args)

	i := s.reserve(recorded)

	if s.fn == nil {
		s.settle(i, Ok(Unit))
		return Unit
	}

	outcome := invoke(s.fn, args)
	s.settle(i, outcome)

	if ret, ok := outcome.Returned(); ok {
		return ret
	}
	return NoValue
}

// Fn returns the instrumented callable as a plain function value.
func (s *Spy) Fn() func(args ...any) any {
	return s.Call
}

// invoke runs fn and converts both error returns and panics into Threw.
func invoke(fn Func, args []any) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Threw(r)
		}
	}()

	ret, err := fn(args...)
	if err != nil {
		return Threw(err)
	}
	return Ok(ret)
}

// reserve appends args and a pending outcome and returns their index.
func (s *Spy) reserve(args []any) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, args)
	s.outcomes = append(s.outcomes, Outcome{Kind: OutcomePending})
	return len(s.calls) - 1
}

func (s *Spy) settle(i int, outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes[i] = outcome
}

// Calls returns a snapshot of the recorded argument lists in call order.
func (s *Spy) Calls() [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([][]any, len(s.calls))
	for i, c := range s.calls {
		out[i] = append([]any{}, c...)
	}
	return out
}

// Outcomes returns a snapshot of the recorded outcomes, index-aligned with Calls.
func (s *Spy) Outcomes() []Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Outcome{}, s.outcomes...)
}

// Count returns the number of recorded invocations.
func (s *Spy) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Called reports whether the spy was invoked at least once.
func (s *Spy) Called() bool {
	return s.Count() > 0
}

// CallAt returns the arguments of the i-th call.
func (s *Spy) CallAt(i int) ([]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.calls) {
		return nil, false
	}
	return append([]any{}, s.calls[i]...), true
}

// OutcomeAt returns the outcome of the i-th call.
func (s *Spy) OutcomeAt(i int) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.outcomes) {
		return Outcome{}, false
	}
	return s.outcomes[i], true
}

// CalledWith reports whether the i-th call received args, compared
// structurally with value.Deep.
func (s *Spy) CalledWith(i int, args ...any) bool {
	got, ok := s.CallAt(i)
	if !ok {
		return false
	}
	if len(args) == 0 {
		args = []any{}
	}
	return value.Deep(got, args)
}

// String summarizes the spy for failure messages.
func (s *Spy) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("spy(%d calls)", len(s.calls))
}
