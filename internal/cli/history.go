package cli

import (
	"context"

	"github.com/spf13/cobra"

	"discipline/internal/logstore"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history",
		Short:         "List records, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			return rootOpts.withStore(cmd, f, func(ctx context.Context, store *logstore.Store) error {
				history := store.History()
				views := make([]RecordView, 0, len(history))
				for _, r := range history {
					views = append(views, newRecordView(r, store.Location()))
				}
				return f.Success(HistoryResult{Records: views})
			})
		},
	}
}
