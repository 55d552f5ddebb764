// Package cmd wires the logserver CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZQisAmalou/v2x-log-server/common/logging"
	"github.com/ZQisAmalou/v2x-log-server/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "logserver",
	Short: "V2X simulation log ingestion and monitoring server",
	Long: `logserver normalizes the heterogeneous artifacts of a distributed
V2X simulation (entity logs, certificate stores, quantum-key material,
communications transcripts, configuration files) into one chronologically
ordered event stream and serves it over HTTP and WebSocket.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
}

// loadConfig loads configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return nil, err
	}

	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("logserver"))
	logging.SetDefault(logger)

	return cfg, nil
}
