package main

import (
	"fmt"
	"os"

	"github.com/iwvelando/house-price/internal/config"
	"github.com/iwvelando/house-price/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configLocation string
	logLevel       string

	conf   *config.Configuration
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "house-price",
	Short: "Bhubaneswar house price estimator",
	Long:  "Serves the price estimate form and prediction API, and submits estimates from the command line.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfiguration(configLocation)
		if err != nil {
			return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
		}
		conf = c

		l, err := initializeLogger(conf.Logging, logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
