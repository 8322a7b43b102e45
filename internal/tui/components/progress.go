package components

import (
	"fmt"
	"math"

	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// barRatio converts a fill percentage to a drawable ratio in [0, 1].
// NaN draws as empty.
func barRatio(fill float64) float64 {
	switch {
	case math.IsNaN(fill):
		return 0
	case fill < 0:
		return 0
	case fill > 100:
		return 1
	default:
		return fill / 100
	}
}

// PerformanceBar renders a solid bar of barWidth cells followed by the
// fill percentage. The printed percentage is the raw fill, which may be
// negative; the drawn bar never leaves [0, barWidth].
func PerformanceBar(fill float64, color lipgloss.Color, barWidth int) string {
	t := theme.Active
	if barWidth < 4 {
		barWidth = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(barRatio(fill)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%4.0f%%", fill))
}
