package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/chatpulse/internal/cli"
	"github.com/theirongolddev/chatpulse/internal/config"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/source"
	"github.com/theirongolddev/chatpulse/internal/tui/components"

	"github.com/spf13/cobra"
)

var (
	flagPlain bool
	flagJSON  bool
	flagLang  string
	flagClamp string
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Render the metrics panel once",
	RunE:  runPanel,
}

func init() {
	registerPanelFlags(panelCmd)
	rootCmd.AddCommand(panelCmd)
}

func registerPanelFlags(c *cobra.Command) {
	c.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of cards")
	c.Flags().BoolVar(&flagJSON, "json", false, "Print the layout as JSON")
	c.Flags().StringVar(&flagLang, "lang", "", "Display language (ru, en)")
	c.Flags().StringVar(&flagClamp, "clamp", "", "Fill clamp mode (literal, symmetric)")
}

// panelOptions merges command flags over the config's panel section.
func panelOptions(cfg config.Config) (panel.Options, error) {
	opts := cfg.PanelOptions()
	if flagLang != "" {
		opts.Language = flagLang
	}
	if flagClamp != "" {
		mode, ok := panel.ParseClampMode(flagClamp)
		if !ok {
			return opts, fmt.Errorf("unknown clamp mode %q", flagClamp)
		}
		opts.Clamp = mode
	}
	return opts, nil
}

func runPanel(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := panelOptions(cfg)
	if err != nil {
		return err
	}

	path := inputPath(cfg)
	snap, err := source.LoadSnapshot(path)
	if err != nil {
		return err
	}
	log.WithField("source", snap.Source).Debug("loaded metrics")

	layout := panel.Build(snap.Metrics, opts)

	switch {
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(layout); err != nil {
			return fmt.Errorf("encoding layout: %w", err)
		}
	case flagPlain:
		fmt.Println()
		fmt.Println(cli.RenderTitle("CHAT METRICS  " + path))
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.PanelTable(layout)))
	default:
		fmt.Println(components.RenderPanel(layout, flagWidth))
	}
	return nil
}
