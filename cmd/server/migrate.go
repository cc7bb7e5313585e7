package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/timesheet-api/internal/config"
	"github.com/timesheet-api/internal/database"
	"github.com/timesheet-api/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *database.DB) error { return db.RunMigrations() })
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *database.DB) error { return db.MigrateDown() })
	},
}

var migrateGotoCmd = &cobra.Command{
	Use:   "goto VERSION",
	Short: "Migrate up or down to VERSION",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withDatabase(func(db *database.DB) error { return db.MigrateToVersion(uint(version)) })
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateGotoCmd)
}

// withDatabase connects using the DB_* settings regardless of STORE_DRIVER
func withDatabase(fn func(db *database.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(db)
}
