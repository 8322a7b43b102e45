package components

import (
	"strings"

	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// ResponseSparkline renders response times oldest-left. Block height is
// relative to the slowest value; each block takes its tier color.
func ResponseSparkline(minutes []float64) string {
	if len(minutes) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range minutes {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range minutes {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		color := t.Resolve(string(panel.Classify(v).Color()))
		style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
		buf.WriteString(style.Render(string(sparkBlocks[idx])))
	}
	return buf.String()
}
