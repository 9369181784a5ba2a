package cmd

import (
	"fmt"
	"os"

	"journal-workflow/config"
	"journal-workflow/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// flags
	env string

	cfg    *config.Config
	logger *logrus.Entry
)

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "", "environment name, overrides ENVIRONMENT")
	RootCmd.AddCommand(serveCmd, migrateCmd)
}

var RootCmd = &cobra.Command{
	Use:   "journal-workflow",
	Short: "Manuscript workflow service for the journal portals",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if env != "" {
			cfg.Environment = env
		}
		logger = logging.New(cfg.Environment)
	},
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
