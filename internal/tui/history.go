package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/chatpulse/internal/cli"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/tui/components"
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderHistoryTab shows stored snapshots, newest first, under a response
// time sparkline drawn oldest-left.
func (a App) renderHistoryTab(cw int) string {
	t := theme.Active

	if a.historyPath == "" {
		return components.ContentCard("History", "History is disabled. Set [history] enabled = true.", cw)
	}
	if len(a.history) == 0 {
		return components.ContentCard("History", "No snapshots recorded yet.", cw)
	}

	labels := panel.LabelsFor(a.opts.Language)
	now := time.Now()

	minutes := make([]float64, len(a.history))
	for i, s := range a.history {
		minutes[len(a.history)-1-i] = s.Metrics.AverageResponseTime
	}

	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(components.ResponseSparkline(minutes))
	b.WriteString("\n\n")
	b.WriteString(dim.Render(fmt.Sprintf("%-16s %10s %8s  %-20s %6s",
		"captured", "messages", "resp", "tier", "csat")))

	innerH := a.height - 8
	for i, s := range a.history {
		if innerH > 0 && i >= innerH {
			break
		}
		tier := panel.Classify(s.Metrics.AverageResponseTime)
		tierStyle := lipgloss.NewStyle().
			Foreground(t.Resolve(string(tier.Color()))).
			Background(t.Surface)

		b.WriteString("\n")
		b.WriteString(text.Render(fmt.Sprintf("%-16s %10s %8s  ",
			cli.FormatAge(s.CapturedAt, now),
			panel.FormatCount(s.Metrics.TotalMessages, a.opts.NumberLocale),
			cli.FormatMinutes(s.Metrics.AverageResponseTime))))
		b.WriteString(tierStyle.Render(fmt.Sprintf("%-20s", labels.Tiers[tier])))
		b.WriteString(text.Render(fmt.Sprintf(" %6s", cli.FormatOptionalPercent(s.Metrics.CustomerSatisfaction))))
	}

	return components.ContentCard(fmt.Sprintf("History (%d)", len(a.history)), b.String(), cw)
}
