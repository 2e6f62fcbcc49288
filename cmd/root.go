package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/blockcraft/internal/config"
	"github.com/conneroisu/blockcraft/internal/logging"
)

var (
	cfgFile        string
	configFileUsed string
)

var rootCmd = &cobra.Command{
	Use:   "blockcraft",
	Short: "A block-based website builder",
	Long: `Blockcraft assembles web pages from a catalog of blocks, edits their
properties, and exports the result as a static page or a project scaffold.

Quick Start:
  blockcraft init                 Write a default .blockcraft.yml
  blockcraft serve                Start the editor API and live preview
  blockcraft catalog              List the available blocks
  blockcraft export               Export a page built from blocks`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .blockcraft.yml, can also use BLOCKCRAFT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	used, err := config.Init(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading config:", err)
		return
	}
	configFileUsed = used
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// loadConfig loads the configuration for a command run.
func loadConfig() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, newLogger(cfg), nil
}

func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:     logging.ParseLevel(cfg.Log.Level),
		Format:    cfg.Log.Format,
		Output:    os.Stderr,
		Component: "blockcraft",
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
