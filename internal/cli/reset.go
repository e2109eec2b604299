package cli

import (
	"context"

	"github.com/spf13/cobra"

	"discipline/internal/logstore"
)

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every record",
		Long: `Delete every record from memory and storage. This cannot be undone,
so it only runs with --yes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			if !confirmed {
				return f.fail(ExitFailure, ErrCodeNotConfirmed, "reset deletes every record, rerun with --yes", nil)
			}
			return rootOpts.withStore(cmd, f, func(ctx context.Context, store *logstore.Store) error {
				removed := store.Len()
				if err := store.ResetAll(ctx); err != nil {
					return f.fail(ExitCommandError, ErrCodeGeneric, "cannot reset daily logs", err)
				}
				return f.Success(ResetResult{Removed: removed})
			})
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deleting every record")
	return cmd
}
