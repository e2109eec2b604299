package cli

import (
	"context"

	"github.com/spf13/cobra"

	"discipline/internal/core"
	"discipline/internal/logstore"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show whether today is already logged",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			return rootOpts.withStore(cmd, f, func(ctx context.Context, store *logstore.Store) error {
				return f.Success(StatusResult{
					Day:    core.DayOf(rootOpts.now(), store.Location()).String(),
					Logged: store.HasRecordForToday(),
				})
			})
		},
	}
}
