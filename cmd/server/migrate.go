package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artem13815/skillsync/pkg/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return fmt.Errorf("creating a logger: %w", err)
		}
		defer log.Sync() //nolint:errcheck

		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}
		pool, err := postgres.Connect(cmd.Context(), cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := postgres.Migrate(cmd.Context(), pool)
		if err != nil {
			return err
		}
		log.Info("migrations applied", zap.Strings("files", applied))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
