// cmd/pixisphere/main.go
package main

import (
	"fmt"
	"os"

	"pixisphere/internal/common/config"
	"pixisphere/internal/common/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "pixisphere",
	Short:         "Photographer directory",
	Long:          "pixisphere serves a searchable, filterable directory of photographers backed by an upstream JSON API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newListCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads --config when given and the default locations otherwise.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// newLogger builds the process logger. The returned zap logger must be
// synced before exit.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, logger.Logger, error) {
	zapLog, err := logger.New(cfg.Level, cfg.Format, cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("logger init failed: %w", err)
	}
	return zapLog, logger.NewZapAdapter(zapLog), nil
}
