package cmd

import (
	"fmt"
	"os"

	"raid-status-bot/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "raid-status-bot",
	Short: "Raid Status Bot",
	Long: `Raid Status Bot keeps one Telegram status message per chat or forum topic
up to date with the active raids found in an RDM scanner database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML configuration file")
}
