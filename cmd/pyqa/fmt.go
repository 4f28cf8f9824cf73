package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/foot4ever/pyqa/cmd/pyqa/internal/cmdexec"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/config"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/dirhash"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/pytool"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/venv"
	"github.com/urfave/cli/v3"
)

func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:   "fmt",
		Usage:  "Reformat Python sources in place using autopep8",
		Action: config.RunWithConfig(fmtAction),
	}
}

func fmtAction(ctx context.Context, _ *cli.Command, cfg config.Config) error {
	exec, env := activate(cfg, cmdexec.New(cfg), os.Stdout, os.Stderr)
	return formatSource(ctx, cfg, exec, env, os.Stdout)
}

// formatSource reports the formatter's path and version, runs it over
// the source tree, and tells the user whether anything was rewritten.
// The tree hash is informational only; hashing errors never fail the
// format pass.
func formatSource(ctx context.Context, cfg config.Config, exec cmdexec.Executor, env venv.Env, stdout io.Writer) error {
	inv := pytool.Formatter(cfg.SourceDir(), cfg.File.LineLength)

	name := inv.Tool
	if path, ok := pytool.Report(stdout, env, inv); ok {
		name = path
	}

	hasher := dirhash.New()
	before, hashErr := hasher.Hash(cfg.SourceDir())

	if err := exec.Run(ctx, name, inv.Args...); err != nil {
		return err
	}

	if hashErr != nil {
		return nil
	}

	after, err := hasher.Hash(cfg.SourceDir())
	if err != nil {
		return nil
	}

	if after == before {
		fmt.Fprintln(stdout, "no files rewritten")
	} else {
		fmt.Fprintf(stdout, "files rewritten (%s -> %s)\n", before, after)
	}

	return nil
}
