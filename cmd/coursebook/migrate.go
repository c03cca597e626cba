package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashby/coursebook/internal/app/migrations"
	"github.com/ashby/coursebook/internal/config"
	"github.com/ashby/coursebook/internal/db"
	"github.com/ashby/coursebook/internal/pkg/apperrors"
)

func newMigrateCmd() *cobra.Command {
	var configPath string
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
			}
			configureLogging(cfg)

			pg, err := db.NewPostgresDB(cfg)
			if err != nil {
				return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
			}
			defer pg.Close()

			if err := migrations.NewMigrator(pg.Pool).MigrateFromDirectory(dir); err != nil {
				return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "Path to the config file")
	cmd.Flags().StringVar(&dir, "dir", "migrations", "Directory containing migration files")

	return cmd
}
