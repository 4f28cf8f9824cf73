package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/config"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/initwizard"
	"github.com/iancoleman/strcase"
	"github.com/urfave/cli/v3"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a .pyqa.yml for this project",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "accessible",
				Usage: "Use plain prompts instead of the full-screen form",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			if _, err := os.Stat(filepath.Join(cwd, config.FileName)); err == nil {
				return errors.Newf("%s already exists in %s", config.FileName, cwd)
			}

			var runner initwizard.FormRunner = initwizard.NewInteractiveRunner()
			if cmd.Bool("accessible") {
				runner = initwizard.NewAccessibleRunner(os.Stdout, os.Stdin)
			}

			wizard := initwizard.New(initwizard.NewFormBuilder(), runner)

			result, err := wizard.Run(strcase.ToKebab(filepath.Base(cwd)))
			if err != nil {
				return err
			}

			file, err := result.ToConfig()
			if err != nil {
				return err
			}

			if err := config.WriteToFile(cwd, file, config.NewWriter()); err != nil {
				return err
			}

			fmt.Printf("wrote %s\n", filepath.Join(cwd, config.FileName))
			return nil
		},
	}
}
