package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"discipline/internal/core"
	"discipline/internal/logstore"
)

// LogOptions holds the log command flags.
type LogOptions struct {
	Scores core.Scores
	Date   string
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record today's scores",
		Long: `Record the scores of one calendar day. Only one record per day is kept:
logging a day that already has a record is rejected and changes nothing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Scores.Nutrition, "nutrition", 0, "nutrition score")
	cmd.Flags().Float64Var(&opts.Scores.Sleep, "sleep", 0, "sleep score")
	cmd.Flags().Float64Var(&opts.Scores.Physical, "physical", 0, "physical activity score")
	cmd.Flags().Float64Var(&opts.Scores.Education, "education", 0, "education score")
	cmd.Flags().Float64Var(&opts.Scores.Financial, "financial", 0, "financial discipline score")
	cmd.Flags().StringVar(&opts.Date, "date", "", "day to record (YYYY-MM-DD), defaults to today")

	return cmd
}

func runLog(rootOpts *RootOptions, opts *LogOptions, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)

	var day *core.Date
	if opts.Date != "" {
		d, err := core.ParseDate(opts.Date)
		if err != nil {
			return f.fail(ExitCommandError, ErrCodeInvalidInput, "invalid --date, expected YYYY-MM-DD", err)
		}
		day = &d
	}

	return rootOpts.withStore(cmd, f, func(ctx context.Context, store *logstore.Store) error {
		loc := store.Location()
		var at time.Time
		if day != nil {
			at = day.In(loc)
		} else {
			at = rootOpts.now()
		}

		f.VerboseLog("Logging %s (total %s)", core.DayOf(at, loc), formatPoints(opts.Scores.Total()))

		record, err := store.Submit(ctx, at, opts.Scores)
		switch {
		case errors.Is(err, logstore.ErrDuplicateDay):
			msg := fmt.Sprintf("%s already logged", core.DayOf(at, loc))
			return f.fail(ExitFailure, ErrCodeDuplicateDay, msg, err)
		case errors.Is(err, core.ErrNonFiniteScore):
			return f.fail(ExitCommandError, ErrCodeInvalidInput, "scores must be finite numbers", err)
		case err != nil:
			return f.fail(ExitCommandError, ErrCodeGeneric, "cannot record scores", err)
		}

		return f.Success(LogResult{Record: newRecordView(record, loc)})
	})
}
