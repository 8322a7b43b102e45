package cmd

import (
	"fmt"

	"github.com/theirongolddev/chatpulse/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if in := inputPath(cfg); in != "" {
		fmt.Printf("    Input file:       %s\n", in)
	} else {
		fmt.Println("    Input file:       not configured")
	}
	fmt.Printf("    Refresh interval: %s\n", config.RefreshInterval(cfg))
	fmt.Printf("    Auto refresh:     %v\n", cfg.General.AutoRefresh)
	fmt.Println()

	fmt.Println("  [Panel]")
	opts := cfg.PanelOptions()
	fmt.Printf("    Language:      %s\n", opts.Language)
	fmt.Printf("    Number locale: %s\n", opts.NumberLocale)
	fmt.Printf("    Clamp:         %s\n", opts.Clamp)
	fmt.Printf("    Window days:   %d\n", opts.WindowDays)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", config.ThemeName(cfg))
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:  %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval: %s\n", config.DaemonInterval(cfg))
	fmt.Printf("    Events:   %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [History]")
	fmt.Printf("    Enabled:  %v\n", cfg.History.Enabled)
	fmt.Printf("    Database: %s\n", config.HistoryPath(cfg))
	if cfg.History.Keep > 0 {
		fmt.Printf("    Keep:     %d snapshots\n", cfg.History.Keep)
	} else {
		fmt.Println("    Keep:     unlimited")
	}
	fmt.Println()

	fmt.Println("  Run `chatpulse setup` to reconfigure.")
	return nil
}
