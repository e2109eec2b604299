package cli

import (
	"context"

	"github.com/spf13/cobra"

	"discipline/internal/logstore"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show total, average and current streak",
		Long: `Show the dashboard: total points, average points per record, the current
streak of consecutive logged days and per-category totals.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			return rootOpts.withStore(cmd, f, func(ctx context.Context, store *logstore.Store) error {
				return f.Success(newStatsResult(store.Summary()))
			})
		},
	}
}
