package main

import (
	"database/sql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"floodFriend/internal/db"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateCmd.AddCommand(
		migrateSubcommand("up", "Apply pending migrations", db.Migrate),
		migrateSubcommand("down", "Roll back the last applied migration", db.RollbackLast),
		migrateSubcommand("status", "Show the state of every migration", db.Status),
	)
	return migrateCmd
}

func migrateSubcommand(use, short string, run func(*sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db.SetLogger(logger)
			d, err := db.OpenNoMigrate(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := run(d); err != nil {
				return err
			}
			v, err := db.Version(d)
			if err != nil {
				return err
			}
			logger.Info("schema version", zap.Int64("version", v))
			return nil
		},
	}
}
