package tui

import (
	"strings"

	"github.com/theirongolddev/chatpulse/internal/config"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the fields bound to the first-run form.
type setupValues struct {
	theme     string
	language  string
	clamp     string
	inputPath string
}

func newSetupValues(cfg config.Config, inputPath string) setupValues {
	clamp := cfg.Panel.Clamp
	if clamp == "" {
		clamp = string(panel.ClampLiteral)
	}
	return setupValues{
		theme:     config.ThemeName(cfg),
		language:  cfg.Panel.Language,
		clamp:     clamp,
		inputPath: inputPath,
	}
}

func newSetupForm(vals *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	langNames := map[string]string{"ru": "Русский", "en": "English"}
	langOpts := make([]huh.Option[string], 0, len(langNames))
	for _, code := range panel.Languages() {
		name := langNames[code]
		if name == "" {
			name = code
		}
		langOpts = append(langOpts, huh.NewOption(name, code))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to chatpulse").
				Description("A few quick settings. You can rerun this with `chatpulse setup`."),
			huh.NewInput().
				Title("Metrics input file").
				Description("JSON or TOML file with the aggregated chat metrics.").
				Placeholder("/var/lib/support/metrics.json").
				Value(&vals.inputPath),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Display language").
				Options(langOpts...).
				Value(&vals.language),
			huh.NewSelect[string]().
				Title("Response bar clamp").
				Description("literal lets slow response times go below zero.").
				Options(
					huh.NewOption("literal", string(panel.ClampLiteral)),
					huh.NewOption("symmetric", string(panel.ClampSymmetric)),
				).
				Value(&vals.clamp),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	).WithShowHelp(false)
}

// saveSetupConfig writes the form values to the config file and applies
// them to the running app. It reports whether the input path changed.
func (a *App) saveSetupConfig() bool {
	cfg := loadConfigOrDefault()
	cfg.Appearance.Theme = a.setupVals.theme
	cfg.Panel.Language = a.setupVals.language
	cfg.Panel.Clamp = a.setupVals.clamp

	path := strings.TrimSpace(a.setupVals.inputPath)
	changed := path != "" && path != a.inputPath
	if path != "" {
		cfg.General.InputPath = path
	}

	// Best-effort save; the choices still apply to this session.
	_ = config.Save(cfg)

	theme.SetActive(a.setupVals.theme)
	a.cfg = cfg
	a.opts = cfg.PanelOptions()
	if changed {
		a.inputPath = path
	}
	if a.hasData {
		a.recompute()
	}
	return changed
}
