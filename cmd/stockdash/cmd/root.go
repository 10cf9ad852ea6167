// Package cmd holds the stockdash CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-dashboard/internal/config"
	"github.com/trogers1052/stock-dashboard/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stockdash",
	Short: "Stock dashboard API",
	Long: `Stock dashboard API: symbol search, live quotes, historical series,
multi-symbol comparison and a shared watchlist.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default: $CONFIG_FILE)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func initConfig() error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	return logger.Init(logger.Config{
		Level:         cfg.Log.Level,
		Format:        cfg.Log.Format,
		FileEnabled:   cfg.Log.FileEnabled,
		FilePath:      cfg.Log.FilePath,
		RotationSize:  100,
		RetentionDays: 30,
		ServiceName:   "stockdash",
	})
}
