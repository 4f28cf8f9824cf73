package main

import (
	"context"
	"io"
	"os"

	"github.com/foot4ever/pyqa/cmd/pyqa/internal/cmdexec"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/config"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/pytool"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/venv"
	"github.com/urfave/cli/v3"
)

func lintCmd() *cli.Command {
	return &cli.Command{
		Name:   "lint",
		Usage:  "Lint Python sources using pylint",
		Action: config.RunWithConfig(lintAction),
	}
}

func lintAction(ctx context.Context, _ *cli.Command, cfg config.Config) error {
	exec, env := activate(cfg, cmdexec.New(cfg), os.Stdout, os.Stderr)
	return lintSource(ctx, cfg, exec, env, os.Stdout)
}

// lintSource reports the linter's path and version, then runs it over
// the source tree. The linter's findings go straight to the configured
// output writers; nothing is parsed or aggregated here.
func lintSource(ctx context.Context, cfg config.Config, exec cmdexec.Executor, env venv.Env, stdout io.Writer) error {
	inv := pytool.Linter(cfg.SourceDir(), cfg.RcFilePath())

	name := inv.Tool
	if path, ok := pytool.Report(stdout, env, inv); ok {
		name = path
	}

	return exec.Run(ctx, name, inv.Args...)
}
