// Package scheduler runs pending tests strictly one at a time.
//
// Every test receives a continuation. Invoking it marks the test complete
// and starts the next queued test, so tests finish in the order they were
// enqueued. Synchronous and asynchronous tests are treated alike: a test
// is in flight until its continuation runs.
//
// ARCHITECTURE:
//
// Trampoline:
// RunNext starts a drain loop. A continuation invoked while the loop is on
// the stack (a synchronous test) only clears the in-flight flag; the loop
// then dequeues the next test itself. Stack depth stays constant no matter
// how many synchronous tests run back to back.
//
// A continuation invoked after the loop has exited (an asynchronous test
// completing from a timer goroutine) starts a new drain loop on its own
// goroutine. The mutex makes the hand-over safe; at most one test is ever
// in flight.
//
// LIMITATIONS:
// A test that never invokes its continuation stalls the queue forever.
// There is no timeout and no cancellation.
package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Continuation signals that the running test is complete.
// It must be invoked exactly once; a second call panics with *MisuseError.
type Continuation func()

// PendingTest is a not-yet-run test body.
type PendingTest func(done Continuation)

// State is the scheduler's execution state.
type State int

const (
	// Idle means no test is in flight.
	Idle State = iota
	// Running means exactly one test is in flight, awaiting its continuation.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Scheduler owns the test queue and drives it.
//
// INVARIANTS:
//   - at most one test in flight
//   - the queue is never reordered; a dequeued test is never re-enqueued
//   - at most one drain loop runs at a time
type Scheduler struct {
	mu       sync.Mutex
	queue    *testQueue
	inFlight bool
	current  string
	draining bool

	seq        int64 // enqueue counter
	dispatched int64

	idle       chan struct{} // closed while nothing is in flight
	idleClosed bool

	logger *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for dispatch diagnostics (Debug level).
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an idle scheduler with an empty queue.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		queue:  newTestQueue(),
		idle:   make(chan struct{}),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	close(s.idle)
	s.idleClosed = true

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue appends a test to the queue. It does not start it; call RunNext.
func (s *Scheduler) Enqueue(t PendingTest) {
	s.EnqueueNamed("", t)
}

// EnqueueNamed is like Enqueue but attaches a name used in diagnostics and
// misuse errors.
func (s *Scheduler) EnqueueNamed(name string, t PendingTest) {
	if t == nil {
		panic(&MisuseError{Code: ErrCodeNilTest, Message: "cannot enqueue a nil test", Test: name})
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.queue.enqueue(queued{seq: seq, name: name, run: t})
	pending := s.queue.len()
	s.mu.Unlock()

	s.logger.Debug("test enqueued", "seq", seq, "test", name, "pending", pending)
}

// RunNext dispatches the front test if nothing is in flight.
//
// With an empty queue it is a no-op. With a test already in flight it is
// also a no-op: that test's continuation advances the queue.
func (s *Scheduler) RunNext() {
	s.mu.Lock()
	if s.inFlight || s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	s.drain()
}

// drain dispatches tests until one stays in flight or the queue empties.
func (s *Scheduler) drain() {
	for {
		s.mu.Lock()
		if s.inFlight {
			// An asynchronous test is pending; its continuation restarts draining.
			s.draining = false
			s.mu.Unlock()
			return
		}

		t, ok := s.queue.dequeue()
		if !ok {
			s.draining = false
			s.markIdleLocked()
			s.mu.Unlock()
			s.logger.Debug("queue drained", "dispatched", atomic.LoadInt64(&s.dispatched))
			return
		}

		s.inFlight = true
		s.current = t.name
		s.markBusyLocked()
		atomic.AddInt64(&s.dispatched, 1)
		pending := s.queue.len()
		s.mu.Unlock()

		s.logger.Debug("test dispatched", "seq", t.seq, "test", t.name, "pending", pending)
		t.run(s.continuation(t))
	}
}

// continuation builds the one-shot completion callback for t.
func (s *Scheduler) continuation(t queued) Continuation {
	var used atomic.Bool

	return func() {
		if !used.CompareAndSwap(false, true) {
			panic(newReusedError(t.name))
		}

		s.mu.Lock()
		s.inFlight = false
		s.current = ""
		if s.draining {
			// The drain loop is on the stack and picks up the next test.
			s.mu.Unlock()
			return
		}
		s.draining = true
		s.mu.Unlock()

		s.logger.Debug("test completed asynchronously", "seq", t.seq, "test", t.name)
		s.drain()
	}
}

func (s *Scheduler) markIdleLocked() {
	if !s.idleClosed {
		close(s.idle)
		s.idleClosed = true
	}
}

func (s *Scheduler) markBusyLocked() {
	if s.idleClosed {
		s.idle = make(chan struct{})
		s.idleClosed = false
	}
}

// State returns Running while a test is in flight, Idle otherwise.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return Running
	}
	return Idle
}

// Current returns the name of the test in flight, or "" when idle.
func (s *Scheduler) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Len returns the number of tests waiting in the queue.
// The test in flight, if any, is not counted.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.len()
}

// Dispatched returns how many tests have been started so far.
func (s *Scheduler) Dispatched() int64 {
	return atomic.LoadInt64(&s.dispatched)
}

// Wait blocks until the current drain finishes (the queue is empty and
// nothing is in flight) or ctx is done.
//
// Wait does not start tests; call RunNext first. A stalled test keeps Wait
// blocked until ctx expires, and the stalled test is left in flight.
func (s *Scheduler) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		idle := s.idle
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-idle:
		}

		s.mu.Lock()
		done := !s.inFlight && !s.draining
		s.mu.Unlock()
		if done {
			return nil
		}
	}
}
