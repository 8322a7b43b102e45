package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// CompactPanelWidth is the width below which the performance and
// statistics panels stack instead of sitting side by side.
const CompactPanelWidth = 100

// RenderPanel draws a built layout: the card grid, then the performance
// and statistics panels.
func RenderPanel(l panel.Layout, width int) string {
	t := theme.Active

	tiles := make([]Tile, len(l.Cards))
	for i, c := range l.Cards {
		tiles[i] = Tile{
			Icon:   c.Icon,
			Label:  c.Label,
			Value:  c.Value,
			Accent: t.Resolve(string(c.Color)),
		}
	}

	var b strings.Builder
	b.WriteString(MetricCardGrid(tiles, width, GridColumns(width, len(tiles))))
	b.WriteString("\n")

	if width < CompactPanelWidth {
		b.WriteString(renderPerformance(l.Performance, width))
		b.WriteString("\n")
		b.WriteString(renderStatistics(l.Statistics, width))
		return b.String()
	}

	halves := LayoutRow(width, 2)
	b.WriteString(CardRow([]string{
		renderPerformance(l.Performance, halves[0]),
		renderStatistics(l.Statistics, halves[1]),
	}))
	return b.String()
}

func renderPerformance(p panel.Performance, outerWidth int) string {
	t := theme.Active
	innerW := CardInnerWidth(outerWidth)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	tierStyle := lipgloss.NewStyle().
		Foreground(t.Resolve(string(p.TierColor))).
		Background(t.Surface).
		Bold(true)

	head := labelStyle.Render(p.Subtitle+": ") + tierStyle.Render(p.TierLabel)
	barW := innerW - 6 // room for " -100%"
	body := head + "\n" + PerformanceBar(p.Fill, t.Resolve(string(p.BarColor)), barW)

	return ContentCard(p.Title, body, outerWidth)
}

func renderStatistics(s panel.Statistics, outerWidth int) string {
	t := theme.Active
	innerW := CardInnerWidth(outerWidth)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	line := func(st panel.Stat) string {
		v := fmt.Sprintf("%d", st.Value)
		gap := innerW - lipgloss.Width(st.Label) - lipgloss.Width(v)
		if gap < 1 {
			gap = 1
		}
		return labelStyle.Render(st.Label+strings.Repeat(" ", gap)) + valueStyle.Render(v)
	}

	body := line(s.MessagesPerAdmin) + "\n" + line(s.ResolvedPerDay)
	return ContentCard(s.Title, body, outerWidth)
}
