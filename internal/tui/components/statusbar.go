package components

import (
	"strings"

	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is the right-hand side of the status bar.
type StatusInfo struct {
	Source      string
	DataAge     string
	Clamp       string
	Refreshing  bool
	AutoRefresh bool
	Err         error
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	left := " [?]help  [r]efresh  [q]uit"

	var parts []string
	if info.Err != nil {
		parts = append(parts, errStyle.Render(info.Err.Error()))
	}
	if info.Refreshing {
		parts = append(parts, accentStyle.Render("refreshing"))
	} else if info.AutoRefresh {
		parts = append(parts, accentStyle.Render("auto"))
	}
	if info.Clamp != "" {
		parts = append(parts, "clamp:"+info.Clamp)
	}
	if info.Source != "" {
		parts = append(parts, info.Source)
	}
	if info.DataAge != "" {
		parts = append(parts, info.DataAge)
	}
	right := strings.Join(parts, "  ") + " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
