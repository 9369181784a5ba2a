package cmd

import (
	"journal-workflow/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the workflow tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.OpenDB(cfg, logger)
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}
		logger.Info("Migration completed")
		return nil
	},
}
