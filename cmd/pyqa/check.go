package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/config"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/pytool"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/venv"
	"github.com/urfave/cli/v3"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Inspect the project setup without running the tools",
		Commands: []*cli.Command{
			{
				Name:   "tools",
				Usage:  "Report where the interpreter, formatter and linter resolve to",
				Action: config.RunWithConfig(checkTools),
			},
			{
				Name:   "config",
				Usage:  "Report which tool configuration files are present",
				Action: config.RunWithConfig(checkConfig),
			},
		},
	}
}

func checkTools(ctx context.Context, _ *cli.Command, cfg config.Config) error {
	env := venv.New(cfg.VenvDir())
	if env.Exists() {
		fmt.Printf("virtualenv: %s\n", env.Root())
	} else {
		fmt.Printf("virtualenv: %s (missing, tools resolve on PATH)\n", cfg.VenvDir())
	}

	for _, tool := range []string{"python", pytool.FormatterName, pytool.LinterName} {
		pytool.Report(os.Stdout, env, pytool.Invocation{Tool: tool})
	}

	return nil
}

// pyproject holds just enough of pyproject.toml to see which tools
// carry configuration there.
type pyproject struct {
	Tool map[string]toml.Primitive `toml:"tool"`
}

func checkConfig(ctx context.Context, _ *cli.Command, cfg config.Config) error {
	if _, err := os.Stat(cfg.RcFilePath()); err == nil {
		fmt.Printf("rcfile: %s\n", cfg.RcFilePath())
	} else {
		fmt.Printf("rcfile: %s (missing)\n", cfg.RcFilePath())
	}

	reportPyproject(filepath.Join(cfg.ProjectDir, "pyproject.toml"))

	files, err := FindPythonFiles(cfg.SourceDir())
	if err != nil {
		fmt.Printf("source: %s (unreadable: %v)\n", cfg.SourceDir(), err)
		return nil
	}
	fmt.Printf("source: %s (%d Python files)\n", cfg.SourceDir(), len(files))

	return nil
}

func reportPyproject(path string) {
	var pp pyproject
	if _, err := toml.DecodeFile(path, &pp); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("pyproject.toml: not present")
		} else {
			fmt.Printf("pyproject.toml: unreadable (%v)\n", err)
		}
		return
	}

	for _, tool := range []string{pytool.FormatterName, pytool.LinterName} {
		if _, ok := pp.Tool[tool]; ok {
			fmt.Printf("pyproject.toml: [tool.%s] present\n", tool)
		} else {
			fmt.Printf("pyproject.toml: no [tool.%s] table\n", tool)
		}
	}
}
