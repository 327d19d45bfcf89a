package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"stac-index/internal/config"
	"stac-index/internal/infra/db"
)

// newMigrator is replaced in tests.
var newMigrator = db.NewMigrator

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tool",
		Long:  `Database migration tool for managing schema versions. Use with 'up', 'down' or 'version'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m db.Migrator) error {
				if err := db.MigrateUp(m); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	})

	down := &cobra.Command{
		Use:   "down [steps]",
		Short: "Revert migrations",
		Long: `Revert the given number of migrations, or all of them when steps is omitted.
WARNING: reverting the initial migration drops every stored record.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args)
			if err != nil {
				return err
			}
			if steps == 0 {
				all, _ := cmd.Flags().GetBool("all")
				if !all {
					return errors.New("refusing to revert every migration without --all")
				}
				slog.Warn("Migrating down all steps - this will remove all schema!")
			}
			return withMigrator(cmd, func(m db.Migrator) error {
				if err := db.MigrateDown(m, steps); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}
	down.Flags().Bool("all", false, "Confirm reverting every migration when no step count is given")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m db.Migrator) error {
				return printVersion(cmd, m)
			})
		},
	})

	return cmd
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps < 1 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

func withMigrator(cmd *cobra.Command, fn func(db.Migrator) error) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	m, err := newMigrator(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			slog.Warn("failed to close migrator",
				slog.Any("source_error", srcErr),
				slog.Any("database_error", dbErr))
		}
	}()

	return fn(m)
}

func printVersion(cmd *cobra.Command, m db.Migrator) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
		return err
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	suffix := ""
	if dirty {
		suffix = " (dirty)"
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d%s\n", version, suffix)
	return err
}
