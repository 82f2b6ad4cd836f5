// Package cli wires the gigflow command line: serve and migrate.
package cli

import (
	"errors"
	"fmt"
	"io"

	"gigflow/config"

	"github.com/spf13/cobra"
)

// errExit signals a non-zero exit after the command has reported its own error.
var errExit = errors.New("exit")

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "gigflow: %v\n", err) //nolint:errcheck // best-effort stderr
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "gigflow",
		Short:         "GigFlow freelance marketplace API",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			fmt.Fprintf(stderr, "gigflow: unknown command %q\n", args[0]) //nolint:errcheck // best-effort stderr
			return errExit
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a config file (default: config.yaml in ., ./config, /app/config)")
	root.CompletionOptions.DisableDefaultCmd = true

	load := func() (*config.Config, error) {
		return config.LoadFile(configPath)
	}
	root.AddCommand(
		newServeCmd(load, stdout, stderr),
		newMigrateCmd(load, stdout, stderr),
	)
	return root
}
