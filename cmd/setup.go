package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/chatpulse/internal/config"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg := loadConfigOrDefault()

	input := inputPath(cfg)
	lang := cfg.Panel.Language
	clamp := cfg.Panel.Clamp
	themeName := config.ThemeName(cfg)
	windowDays := strconv.Itoa(cfg.Panel.WindowDays)
	history := cfg.History.Enabled

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}
	langOpts := make([]huh.Option[string], 0, 2)
	for _, code := range panel.Languages() {
		langOpts = append(langOpts, huh.NewOption(code, code))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Metrics input file").
				Description("JSON or TOML file with the aggregated chat metrics.").
				Value(&input),
			huh.NewInput().
				Title("Resolution window (days)").
				Value(&windowDays).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > 366 {
						return fmt.Errorf("enter a number between 1 and 366")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Display language").
				Options(langOpts...).
				Value(&lang),
			huh.NewSelect[string]().
				Title("Response bar clamp").
				Options(
					huh.NewOption("literal (slow times go below zero)", string(panel.ClampLiteral)),
					huh.NewOption("symmetric (clamped to 0..100)", string(panel.ClampSymmetric)),
				).
				Value(&clamp),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewConfirm().
				Title("Record snapshot history?").
				Value(&history),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.General.InputPath = strings.TrimSpace(input)
	cfg.Panel.Language = lang
	cfg.Panel.Clamp = clamp
	cfg.Panel.WindowDays, _ = strconv.Atoi(strings.TrimSpace(windowDays))
	cfg.Appearance.Theme = themeName
	cfg.History.Enabled = history

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `chatpulse setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
