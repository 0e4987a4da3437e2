package main

import (
	"github.com/spf13/cobra"

	"memexplainer/internal/app"
	"memexplainer/internal/config"
	"memexplainer/internal/logging"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Force-seed the register store with the built-in pattern sets",
	Long: `Upserts the built-in language pattern sets into all four register
partitions. Seeding is idempotent: pattern IDs derive from register, ordinal,
and category, so repeated runs do not duplicate entries.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	if err := application.Store().SeedAll(cmd.Context()); err != nil {
		return err
	}

	logger.Info("register store seeded")
	return nil
}
