package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqdiag/internal/cli"
	"github.com/matzehuels/seqdiag/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		switch {
		case stderrors.Is(err, context.Canceled):
			os.Exit(130) // Standard shell convention for SIGINT
		case stderrors.Is(err, cli.ErrCheckFailed):
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level is known only after flag parsing.
	configure := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if configure != nil {
			return configure(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
