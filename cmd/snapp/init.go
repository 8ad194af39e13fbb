package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/snapp-dev/snapp/internal/config"
	"github.com/snapp-dev/snapp/internal/demo"
	"github.com/snapp-dev/snapp/internal/errors"
)

func initCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create snapp.json and index.html",
		Long: `Create snapp.json and an index.html shell in dir (default: the
current directory). Existing files are left untouched.

Examples:
  snapp init
  snapp init ./site --name=counter`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, dir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (default: directory name)")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string) error {
	out := cmd.OutOrStdout()

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return errors.Newf(errors.CategoryCLI, "cannot create %s", abs).Wrap(err)
	}

	if config.Exists(abs) {
		info(out, "%s already exists", config.ConfigFileName)
	} else {
		cfg := config.New()
		cfg.Name = name
		if cfg.Name == "" {
			cfg.Name = filepath.Base(abs)
		}
		if err := cfg.SaveTo(filepath.Join(abs, config.ConfigFileName)); err != nil {
			return err
		}
		success(out, "Created %s", config.ConfigFileName)
	}

	shell := filepath.Join(abs, config.DefaultDocument)
	if _, err := os.Stat(shell); err == nil {
		info(out, "%s already exists", config.DefaultDocument)
		return nil
	}
	if err := os.WriteFile(shell, []byte(demo.Shell+"\n"), 0644); err != nil {
		return errors.Newf(errors.CategoryCLI, "cannot write %s", shell).Wrap(err)
	}
	success(out, "Created %s", config.DefaultDocument)
	return nil
}
