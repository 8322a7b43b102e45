// Package cmd implements the chatpulse CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/chatpulse/internal/config"
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagInput   string
	flagConfig  string
	flagWidth   int
	flagVerbose bool
)

// log is the process logger. Human-facing output goes to stdout via fmt.
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:               "chatpulse",
	Short:             "Support chat metrics dashboard",
	Long:              "Render the support chat metrics panel: volume, response time tier and derived statistics.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runPanel,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "Metrics input file (.json or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path")
	rootCmd.PersistentFlags().IntVarP(&flagWidth, "width", "w", 120, "Render width in columns")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	registerPanelFlags(rootCmd)
}

func setup(_ *cobra.Command, _ []string) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := config.LoadDotEnv(); err != nil {
		log.WithError(err).Warn("ignoring .env")
	}
	if flagConfig != "" {
		if err := os.Setenv(config.EnvConfig, flagConfig); err != nil {
			return fmt.Errorf("setting config path: %w", err)
		}
	}
	log.WithField("path", config.Path()).Debug("config path")
	return nil
}

// loadConfig reads the config file and activates its theme.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	theme.SetActive(config.ThemeName(cfg))
	return cfg, nil
}

// inputPath resolves the metrics file: --input, then env, then config.
func inputPath(cfg config.Config) string {
	if flagInput != "" {
		return flagInput
	}
	return config.InputPath(cfg)
}
