package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/zigj/internal/report"
	"github.com/roach88/zigj/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Suite string // only runs of this suite
	Run   string // show the events of this run
}

// RunDetail is a recorded run with its events.
type RunDetail struct {
	store.Run
	Events []report.Event `json:"events"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded suite runs",
		Long: `List suite runs recorded with "zigj test --db".

Runs are listed in the order they were recorded. With --run, the
events of a single run are shown instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "run history database (required)")
	cmd.Flags().StringVar(&opts.Suite, "suite", "", "only list runs of this suite")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show the events of this run id")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	f := opts.formatter(cmd)
	ctx := cmd.Context()

	db, err := store.Open(opts.DB)
	if err != nil {
		_ = f.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open run history", err)
	}
	defer db.Close()

	if opts.Run != "" {
		run, err := db.ReadRun(ctx, opts.Run)
		if errors.Is(err, store.ErrRunNotFound) {
			_ = f.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, "unknown run", err)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		events, err := db.ReadEvents(ctx, opts.Run)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read events", err)
		}

		if f.JSON() {
			return f.Success(RunDetail{Run: run, Events: events})
		}
		fmt.Fprintf(f.Writer, "Run %s (%s): %d passed, %d failed, %d exceptions\n",
			run.ID, run.Suite, run.Passed, run.Failed, run.Exceptions)
		term := report.NewTerminal(f.Writer)
		for _, e := range events {
			term.Receive(e)
		}
		return nil
	}

	var runs []store.Run
	if opts.Suite != "" {
		runs, err = db.ListRunsForSuite(ctx, opts.Suite)
	} else {
		runs, err = db.ListRuns(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if f.JSON() {
		return f.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(f.Writer, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tRUN ID\tSUITE\tPASSED\tFAILED\tEXCEPTIONS\tSTATUS")
	for _, r := range runs {
		status := "pass"
		if !r.Pass() {
			status = "fail"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.Seq, r.ID, r.Suite, r.Passed, r.Failed, r.Exceptions, status)
	}
	return tw.Flush()
}
