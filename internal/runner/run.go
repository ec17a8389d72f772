package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/zigj/internal/report"
	"github.com/roach88/zigj/internal/suite"
	"github.com/roach88/zigj/internal/value"
)

// Result is the outcome of running one suite file.
type Result struct {
	Suite      string         `json:"suite"`
	RunID      string         `json:"run_id"`
	Events     []report.Event `json:"events"`
	Passed     int            `json:"passed"`
	Failed     int            `json:"failed"`
	Exceptions int            `json:"exceptions"`

	// Pass is true when no check failed and no test panicked.
	Pass bool `json:"pass"`

	Duration time.Duration `json:"-"`
}

// Counts returns the result tallies as report.Counts.
func (r *Result) Counts() report.Counts {
	return report.Counts{Passed: r.Passed, Failed: r.Failed, Exceptions: r.Exceptions}
}

type config struct {
	logger *slog.Logger
	runIDs suite.RunIDGenerator
}

// Option configures Run.
type Option func(*config)

// WithLogger sets the logger passed to the suite.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRunIDGenerator overrides the suite's run id generator.
func WithRunIDGenerator(g suite.RunIDGenerator) Option {
	return func(c *config) { c.runIDs = g }
}

// Run executes every test of sf, sending events to reporter (which may be
// nil), and returns the collected result.
//
// Run blocks until all tests complete or ctx is done. On ctx expiry the
// partial result is returned together with the error.
func Run(ctx context.Context, sf *SuiteFile, reporter report.Reporter, opts ...Option) (*Result, error) {
	cfg := &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := sf.Validate(); err != nil {
		return nil, err
	}

	rec := report.NewRecorder()
	s := suite.New(report.Multi(rec, reporter),
		suite.WithName(sf.Name),
		suite.WithLogger(cfg.logger),
		suite.WithRunIDGenerator(cfg.runIDs),
	)

	for _, tc := range sf.Tests {
		tc := tc
		if !tc.Async {
			s.Test(tc.Name, false, func(done suite.Continuation) {
				runChecks(s, tc.Checks)
			})
			continue
		}
		s.Test(tc.Name, true, func(done suite.Continuation) {
			time.AfterFunc(tc.delay, func() {
				runChecks(s, tc.Checks)
				done()
			})
		})
	}

	cfg.logger.Info("running suite", "suite", sf.Name, "tests", len(sf.Tests), "run_id", s.RunID())

	start := time.Now()
	s.Run()
	waitErr := s.Wait(ctx)

	counts := rec.Counts()
	result := &Result{
		Suite:      sf.Name,
		RunID:      s.RunID(),
		Events:     rec.Events(),
		Passed:     counts.Passed,
		Failed:     counts.Failed,
		Exceptions: counts.Exceptions,
		Pass:       counts.OK() && waitErr == nil,
		Duration:   time.Since(start),
	}
	if waitErr != nil {
		return result, fmt.Errorf("running suite %q: %w", sf.Name, waitErr)
	}
	return result, nil
}

// runChecks evaluates each check as one assertion.
func runChecks(s *suite.Suite, checks []Check) {
	for i, c := range checks {
		msg := c.Message
		if msg == "" {
			msg = fmt.Sprintf("check %d (%s)", i+1, c.Type)
		}

		var pass bool
		switch c.Type {
		case CheckEqual:
			var detail string
			pass, detail = suite.Compare(c.left, c.right)
			if !pass {
				msg += ": " + detail
			}
		case CheckNotEqual:
			eq, _ := suite.Compare(c.left, c.right)
			pass = !eq
			if !pass {
				msg += ": values are equal"
			}
		case CheckTruthy:
			pass = truthy(c.left)
		}

		s.Ok(func() bool { return pass }, msg)
	}
}

// truthy reports whether v is neither null, false, zero nor empty.
// Unconvertible values count as true.
func truthy(v any) bool {
	val, err := value.FromGo(v)
	if err != nil {
		return true
	}

	switch x := val.(type) {
	case value.Null:
		return false
	case value.Bool:
		return bool(x)
	case value.Int:
		return x != 0
	case value.Float:
		return x != 0
	case value.String:
		return x != ""
	case value.Sequence:
		return len(x) > 0
	case value.Mapping:
		return len(x) > 0
	default:
		return true
	}
}
