package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"discipline/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if cli.GetExitCode(err) == cli.ExitCommandError {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
