package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"discipline/internal/logstore"
)

// StoreOpener returns an initialized store and a cleanup for it.
type StoreOpener func(ctx context.Context, opts *RootOptions) (*logstore.Store, func() error, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"

	// Now and OpenStore default to the wall clock and the configured backend.
	Now       func() time.Time
	OpenStore StoreOpener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the discipline CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discipline",
		Short: "Daily self-discipline tracker",
		Long: `Record one self-assessment per calendar day across nutrition, sleep,
physical activity, education and financial discipline, and follow your
total, average and current streak over time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewLogCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func (o *RootOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// withStore opens the store, runs fn and releases the store again.
func (o *RootOptions) withStore(cmd *cobra.Command, f *OutputFormatter, fn func(ctx context.Context, store *logstore.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	open := o.OpenStore
	if open == nil {
		open = openConfiguredStore
	}

	store, cleanup, err := open(ctx, o)
	if err != nil {
		if errors.Is(err, ErrInvalidConfig) {
			return f.fail(ExitCommandError, ErrCodeConfig, "configuration error", err)
		}
		return f.fail(ExitCommandError, ErrCodeStorageAccess, "cannot open daily logs", err)
	}
	defer func() {
		if cleanup == nil {
			return
		}
		if cerr := cleanup(); cerr != nil {
			f.VerboseLog("cleanup failed: %v", cerr)
		}
	}()

	return fn(ctx, store)
}
