package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/zigj/internal/report"
	"github.com/roach88/zigj/internal/runner"
	"github.com/roach88/zigj/internal/store"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter  string        // suite file filter (glob on base name)
	DB      string        // optional run history database
	Timeout time.Duration // per-suite wait limit, 0 for none
}

// SuiteResult holds the result of a single suite file.
type SuiteResult struct {
	File       string         `json:"file"`
	Suite      string         `json:"suite,omitempty"`
	RunID      string         `json:"run_id,omitempty"`
	Pass       bool           `json:"pass"`
	Passed     int            `json:"passed"`
	Failed     int            `json:"failed"`
	Exceptions int            `json:"exceptions"`
	Events     []report.Event `json:"events,omitempty"`
	Error      string         `json:"error,omitempty"`
	ErrorCode  string         `json:"error_code,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Suites []SuiteResult `json:"suites"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
	Total  int           `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <path>",
		Short: "Run suite files",
		Long: `Run YAML or CUE suite files.

<path> is a suite file or a directory searched recursively for
.yaml, .yml and .cue files. Tests within a suite run one at a time,
in order; asynchronous tests complete from a timer.

Exit codes:
  0 - All suites passed
  1 - A check failed or a test panicked
  2 - Command error (invalid path, database error, etc.)

Examples:
  zigj test ./suites
  zigj test ./suites --filter "array*"
  zigj test ./suites/basic.yaml --db history.db
  zigj test ./suites --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter suite files by glob pattern")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record runs in this SQLite database")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "give up waiting for a suite after this long (0 = wait forever)")

	return cmd
}

func runTests(cmd *cobra.Command, opts *TestOptions, path string) error {
	f := opts.formatter(cmd)
	logger := f.Logger()

	files, err := runner.FindSuiteFiles(path, opts.Filter)
	if err != nil {
		if le, ok := runner.IsLoadError(err); ok && le.Code == runner.ErrCodeNotFound {
			return WrapExitError(ExitCommandError, "suite path not found", err)
		}
		return WrapExitError(ExitCommandError, "failed to find suite files", err)
	}

	var db *store.Store
	if opts.DB != "" {
		db, err = store.Open(opts.DB)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open run history", err)
		}
		defer db.Close()
	}

	result := TestResult{
		Suites: make([]SuiteResult, 0, len(files)),
		Total:  len(files),
	}

	// Text output streams events as they happen; JSON collects them.
	var live report.Reporter
	if !f.JSON() {
		live = report.NewTerminal(f.Writer)
	}

	for _, file := range files {
		sr := runSuiteFile(cmd.Context(), file, live, opts, logger)
		if sr.Error == "" && db != nil {
			if err := recordRun(cmd.Context(), db, sr); err != nil {
				return WrapExitError(ExitCommandError, "failed to record run", err)
			}
		}

		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		if !f.JSON() {
			writeSuiteSummary(f.Writer, sr)
		}
		result.Suites = append(result.Suites, sr)
	}

	if f.JSON() {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "\nSuites: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) failed", result.Failed))
	}
	return nil
}

// runSuiteFile loads and runs one file. Load and run errors are reported in
// the SuiteResult, not returned, so the remaining files still run.
func runSuiteFile(ctx context.Context, file string, live report.Reporter, opts *TestOptions, logger *slog.Logger) SuiteResult {
	sr := SuiteResult{File: file}

	sf, err := runner.LoadSuite(file)
	if err != nil {
		logger.Debug("suite load failed", "file", file, "error", err)
		sr.Error = err.Error()
		sr.ErrorCode = ErrCodeGeneric
		if le, ok := runner.IsLoadError(err); ok {
			sr.ErrorCode = le.Code
		}
		return sr
	}
	sr.Suite = sf.Name

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	res, err := runner.Run(ctx, sf, live, runner.WithLogger(logger))
	if res != nil {
		sr.RunID = res.RunID
		sr.Pass = res.Pass
		sr.Passed = res.Passed
		sr.Failed = res.Failed
		sr.Exceptions = res.Exceptions
		sr.Events = res.Events
		logger.Debug("suite finished", "suite", sf.Name, "duration", res.Duration)
	}
	if err != nil {
		// The wait was cut short; tests still in flight are abandoned.
		logger.Debug("suite run aborted", "suite", sf.Name, "error", err)
		sr.Pass = false
		sr.Error = err.Error()
		sr.ErrorCode = ErrCodeRun
	}
	return sr
}

func recordRun(ctx context.Context, db *store.Store, sr SuiteResult) error {
	_, err := db.WriteRun(ctx, store.Run{
		ID:         sr.RunID,
		Suite:      sr.Suite,
		Passed:     sr.Passed,
		Failed:     sr.Failed,
		Exceptions: sr.Exceptions,
	}, sr.Events)
	return err
}

func writeSuiteSummary(w io.Writer, sr SuiteResult) {
	name := sr.Suite
	if name == "" {
		name = filepath.Base(sr.File)
	}

	mark := "✔"
	if !sr.Pass {
		mark = "✘"
	}
	fmt.Fprintf(w, "%s %s: %d passed, %d failed, %d exceptions\n", mark, name, sr.Passed, sr.Failed, sr.Exceptions)
	if sr.Error != "" {
		fmt.Fprintf(w, "  Error [%s]: %s\n", sr.ErrorCode, sr.Error)
	}
}
