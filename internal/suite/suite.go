// Package suite is the user-facing test API: register tests with Test,
// check conditions with Ok, then Run.
//
// Example:
//
//	s := suite.New(report.NewTerminal(os.Stdout))
//	s.Test("A doublethink test", false, func(done suite.Continuation) {
//		s.Ok(func() bool { return 2+2 == 5 }, "two plus two equals five")
//	})
//	s.Test("later", true, func(done suite.Continuation) {
//		time.AfterFunc(time.Millisecond, func() {
//			s.Ok(func() bool { return true })
//			done()
//		})
//	})
//	s.Run()
//	_ = s.Wait(ctx)
//
// Tests run one at a time in registration order. Each emits its events to
// the suite's Reporter, tagged with the test name.
package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/roach88/zigj/internal/report"
	"github.com/roach88/zigj/internal/scheduler"
)

// Continuation marks the current test complete.
type Continuation = scheduler.Continuation

// Body is a test body. Synchronous bodies may ignore done; asynchronous
// bodies must call it exactly once.
type Body func(done Continuation)

// DefaultName is the suite name used when WithName is not given.
const DefaultName = "zigj"

// Suite registers tests, runs them through a scheduler and reports
// assertion outcomes.
type Suite struct {
	name     string
	runID    string
	reporter report.Reporter
	sched    *scheduler.Scheduler
	clock    *Clock
	logger   *slog.Logger
	runIDs   RunIDGenerator

	mu      sync.Mutex
	current string
	tests   int
}

// Option configures a Suite.
type Option func(*Suite)

// WithName sets the suite name.
func WithName(name string) Option {
	return func(s *Suite) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets the logger for suite and scheduler diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Suite) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunIDGenerator overrides the UUIDv7 run id generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(s *Suite) {
		if g != nil {
			s.runIDs = g
		}
	}
}

// New creates a suite reporting to r.
//
// Panics if r is nil.
func New(r report.Reporter, opts ...Option) *Suite {
	if r == nil {
		panic("suite.New: nil reporter")
	}

	s := &Suite{
		name:     DefaultName,
		reporter: r,
		clock:    NewClock(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		runIDs:   UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.runID = s.runIDs.Generate()
	s.logger = s.logger.With("suite", s.name, "run_id", s.runID)
	s.sched = scheduler.New(scheduler.WithLogger(s.logger))
	return s
}

// Name returns the suite name.
func (s *Suite) Name() string { return s.name }

// RunID returns the identifier of this suite run.
func (s *Suite) RunID() string { return s.runID }

// Len returns the number of registered tests.
func (s *Suite) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tests
}

// Current returns the name of the test whose body is running, or "".
func (s *Suite) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Test registers a test. It does not run it; call Run.
//
// With async false the test completes when body returns, unless body
// already called done. With async true the test completes only when body
// (or something it scheduled) calls done.
//
// A panic in body is reported as an Exception event and completes the test.
func (s *Suite) Test(name string, async bool, body Body) {
	if body == nil {
		panic(fmt.Sprintf("suite.Test(%q): nil body", name))
	}

	s.mu.Lock()
	s.tests++
	s.mu.Unlock()

	s.sched.EnqueueNamed(name, s.wrap(name, async, body))
}

// completion states for a wrapped test.
const (
	pending int32 = iota
	completedByBody
	completedByFramework
)

// wrap turns a Body into a PendingTest with exception reporting and
// auto-completion.
func (s *Suite) wrap(name string, async bool, body Body) scheduler.PendingTest {
	return func(done scheduler.Continuation) {
		var state atomic.Int32

		complete := func() {
			s.clearCurrent(name)
			done()
		}

		bodyDone := func() {
			if state.CompareAndSwap(pending, completedByBody) {
				complete()
				return
			}
			if state.Load() == completedByFramework {
				// The framework already completed this test.
				return
			}
			done() // second call by the body; the scheduler panics
		}

		s.setCurrent(name)
		s.logger.Debug("test started", "test", name, "async", async)

		panicked := s.invoke(name, body, bodyDone)

		if panicked || !async {
			if state.CompareAndSwap(pending, completedByFramework) {
				complete()
			}
		}
	}
}

// invoke runs body, converting a panic into an Exception event.
// Framework misuse panics are re-raised.
func (s *Suite) invoke(name string, body Body, done Continuation) (panicked bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if isFatal(r) {
			panic(r)
		}
		panicked = true
		s.logger.Debug("test panicked", "test", name, "panic", r)
		s.emit(name, report.Exception, fmt.Sprint(r))
	}()

	body(done)
	return false
}

// isFatal reports whether a recovered value is a framework bug that must
// not be turned into an Exception event.
func isFatal(r any) bool {
	if scheduler.IsMisuse(r) {
		return true
	}
	err, ok := r.(error)
	if !ok {
		return false
	}
	var uk *report.UnknownKindError
	return errors.As(err, &uk)
}

func (s *Suite) setCurrent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = name
}

// clearCurrent resets the current test name if it still names test.
func (s *Suite) clearCurrent(test string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == test {
		s.current = ""
	}
}

func (s *Suite) emit(test string, kind report.Kind, msg string) {
	s.reporter.Receive(report.Event{
		Kind:    kind,
		Test:    test,
		Message: msg,
		Seq:     s.clock.Next(),
	})
}

// Run starts executing registered tests. Synchronous tests run to
// completion before Run returns; Run returns early when an async test is
// waiting for its continuation. Calling Run while a test is in flight is a
// no-op.
func (s *Suite) Run() {
	s.logger.Debug("suite run", "tests", s.Len())
	s.sched.RunNext()
}

// Wait blocks until all started tests have completed or ctx is done.
func (s *Suite) Wait(ctx context.Context) error {
	if err := s.sched.Wait(ctx); err != nil {
		return fmt.Errorf("suite %s: waiting for %q: %w", s.name, s.sched.Current(), err)
	}
	return nil
}
