package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/foot4ever/pyqa/cmd/pyqa/internal/cmdexec"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/config"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/pause"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/pytool"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/venv"
	"github.com/urfave/cli/v3"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Format and lint the source tree, then wait for a keypress",
		Action: config.RunWithConfig(runAction),
	}
}

func runAction(ctx context.Context, _ *cli.Command, cfg config.Config) error {
	return runSequence(ctx, cfg, cmdexec.New(cfg), os.Stdin, os.Stdout, os.Stderr)
}

// runSequence is the whole convenience wrapper: activate the venv, run
// the formatter, run the linter, hold the console open. Tool failures
// are reported but never halt the sequence: the linter runs even when
// the formatter failed, and the pause happens in every case so the
// scrollback stays readable.
func runSequence(ctx context.Context, cfg config.Config, exec cmdexec.Executor, stdin io.Reader, stdout, stderr io.Writer) error {
	if cfg.File.Project != "" {
		fmt.Fprintf(stdout, "%s code analysis\n", cfg.File.Project)
	}

	exec, env := activate(cfg, exec, stdout, stderr)

	if err := formatSource(ctx, cfg, exec, env, stdout); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", pytool.FormatterName, err)
	}

	if err := lintSource(ctx, cfg, exec, env, stdout); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", pytool.LinterName, err)
	}

	return pause.Wait(stdin, stdout)
}

// activate wires the project venv into the executor. A missing venv is
// only a warning: the tools then resolve on the ambient PATH, matching
// what shell activation would have done.
func activate(cfg config.Config, exec cmdexec.Executor, stdout, stderr io.Writer) (cmdexec.Executor, venv.Env) {
	env := venv.New(cfg.VenvDir())
	if !env.Exists() {
		fmt.Fprintf(stderr, "warning: virtualenv %s not found, using tools from PATH\n", cfg.VenvDir())
	}

	return venv.Apply(exec.WithOutput(stdout, stderr), env), env
}
