package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"billbook/internal/config"
	"billbook/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "billctl",
	Short:         "Operational commands for the billbook backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := logger.Setup(logger.LogConfig{Level: loaded.Log.Level, Format: loaded.Log.Format}); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("billctl")
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedHSNCmd, tokenCmd)
}
