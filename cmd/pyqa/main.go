package main

import (
	"context"
	"fmt"
	"os"

	"github.com/foot4ever/pyqa/cmd/pyqa/internal/config"
	"github.com/urfave/cli/v3"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "pyqa",
		Usage:   "Format and lint the project's Python sources in one pass",
		Version: Version,
		// Invoking pyqa without arguments runs the full sequence, so a
		// double-click on the binary behaves like the old convenience
		// script: format, lint, wait for a keypress.
		Action: config.RunWithConfig(runAction),
		Commands: []*cli.Command{
			runCmd(),
			fmtCmd(),
			lintCmd(),
			checkCmd(),
			initCmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
