package cli

import (
	"fmt"
	"io"

	"gigflow/config"
	"gigflow/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(load func() (*config.Config, error), stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := database.MigrateUp(cfg.DB.DSN()); err != nil {
				fmt.Fprintf(stderr, "gigflow migrate up: %v\n", err) //nolint:errcheck // best-effort stderr
				return errExit
			}
			fmt.Fprintln(stdout, "migrations applied") //nolint:errcheck // best-effort stdout
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the given number of migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if steps < 1 {
				fmt.Fprintln(stderr, "gigflow migrate down: --steps must be at least 1") //nolint:errcheck // best-effort stderr
				return errExit
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := database.MigrateDown(cfg.DB.DSN(), steps); err != nil {
				fmt.Fprintf(stderr, "gigflow migrate down: %v\n", err) //nolint:errcheck // best-effort stderr
				return errExit
			}
			fmt.Fprintf(stdout, "rolled back %d migration(s)\n", steps) //nolint:errcheck // best-effort stdout
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 0, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}
