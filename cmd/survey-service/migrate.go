package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the response store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.repo.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		a.logger.Info("Schema migrated", "store", cfg.StoreDriver)
		return nil
	},
}
