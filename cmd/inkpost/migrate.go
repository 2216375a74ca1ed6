// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/store"
)

// Migrator is the part of store.Migrator the migrate commands drive.
type Migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Status() (*store.Status, error)
	Close() error
}

// MigratorFactory opens a Migrator for a database URL.
type MigratorFactory func(databaseURL string) (Migrator, error)

func defaultMigratorFactory(databaseURL string) (Migrator, error) {
	return store.NewMigrator(databaseURL)
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return newMigrateCmd(defaultMigratorFactory)
}

func newMigrateCmd(factory MigratorFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply, roll back or inspect the embedded schema migrations.
The database is taken from database.url (INKPOST_DATABASE__URL).`,
	}

	var upSteps int
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, factory, func(m Migrator) error {
				cmd.Println("Running migrations...")
				if upSteps > 0 {
					return m.Steps(upSteps)
				}
				return m.Up()
			}, "Migrations completed successfully")
		},
	}
	up.Flags().IntVar(&upSteps, "steps", 0, "apply at most this many migrations (0 = all)")

	var downSteps int
	var downAll bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Long:  `Roll back the most recent migration, or every migration with --all.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if downSteps < 1 && !downAll {
				return oops.Code("INVALID_STEPS").Errorf("--steps must be at least 1")
			}
			return withMigrator(cmd, factory, func(m Migrator) error {
				cmd.Println("Rolling back migrations...")
				if downAll {
					return m.Down()
				}
				return m.Steps(-downSteps)
			}, "Rollback completed successfully")
		},
	}
	down.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")
	down.Flags().BoolVar(&downAll, "all", false, "roll back every migration, dropping all data")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the applied schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, factory, func(m Migrator) error {
				st, err := m.Status()
				if err != nil {
					return err
				}
				cmd.Printf("Current version: %d\n", st.Current)
				if st.Dirty {
					cmd.Println("WARNING: schema is dirty; a previous migration failed part way")
				}
				if len(st.Pending) == 0 {
					cmd.Println("No pending migrations")
					return nil
				}
				cmd.Printf("Pending migrations: %v\n", st.Pending)
				return nil
			}, "")
		},
	}

	cmd.AddCommand(up, down, status)
	return cmd
}

func withMigrator(cmd *cobra.Command, factory MigratorFactory, run func(Migrator) error, done string) error {
	settings, err := newLoader(cmd, nil).Load()
	if err != nil {
		return err
	}
	if settings.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required (set INKPOST_DATABASE__URL or the config file)")
	}

	m, err := factory(settings.Database.URL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "open migrator").Wrap(err)
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			cmd.PrintErrf("warning: closing migrator: %v\n", closeErr)
		}
	}()

	if err := run(m); err != nil {
		return oops.Code("MIGRATION_FAILED").Wrap(err)
	}
	if done != "" {
		cmd.Println(done)
	}
	return nil
}
