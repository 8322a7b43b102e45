// Package components provides reusable TUI widgets for the chatpulse dashboard.
package components

import (
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const minCardContent = 10

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// Tile is the render input of one metric card.
type Tile struct {
	Icon   string
	Label  string
	Value  string
	Accent lipgloss.Color
}

// MetricCard renders a bordered tile: icon and label on the first line,
// value below. The border and icon carry the accent color.
// outerWidth is the total rendered width including border.
func MetricCard(tile Tile, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2 // subtract border
	if contentWidth < minCardContent {
		contentWidth = minCardContent
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tile.Accent).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(contentWidth).
		Padding(0, 1)

	iconStyle := lipgloss.NewStyle().
		Foreground(tile.Accent).
		Background(t.Surface).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	valueStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true)

	header := iconStyle.Render(tile.Icon) + labelStyle.Render(" "+tile.Label)
	return cardStyle.Render(header + "\n" + valueStyle.Render(tile.Value))
}

// MetricCardGrid lays tiles out in rows of at most perRow cards. Each row
// spans exactly totalWidth.
func MetricCardGrid(tiles []Tile, totalWidth, perRow int) string {
	if len(tiles) == 0 {
		return ""
	}
	if perRow <= 0 || perRow > len(tiles) {
		perRow = len(tiles)
	}

	var rows []string
	for start := 0; start < len(tiles); start += perRow {
		end := start + perRow
		if end > len(tiles) {
			end = len(tiles)
		}
		chunk := tiles[start:end]
		widths := LayoutRow(totalWidth, len(chunk))
		rendered := make([]string, len(chunk))
		for i, tile := range chunk {
			rendered[i] = MetricCard(tile, widths[i])
		}
		rows = append(rows, CardRow(rendered))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// GridColumns picks how many cards fit per row at the given width.
func GridColumns(totalWidth, cards int) int {
	switch {
	case totalWidth >= 120:
		return cards
	case totalWidth >= 80:
		if cards > 3 {
			return 3
		}
		return cards
	case totalWidth >= 50:
		return 2
	default:
		return 1
	}
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2 // subtract border chars
	if contentWidth < minCardContent {
		contentWidth = minCardContent
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(contentWidth).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle.Render(content)
}

// CardRow joins pre-rendered card strings horizontally, padding shorter
// cards so every line of the row carries the background.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	maxH := 0
	for _, c := range cards {
		if h := lipgloss.Height(c); h > maxH {
			maxH = h
		}
	}
	bg := theme.Active.Background
	padded := make([]string, len(cards))
	for i, c := range cards {
		padded[i] = lipgloss.PlaceVertical(maxH, lipgloss.Top, c,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	w := outerWidth - 4 // 2 border + 2 padding
	if w < minCardContent {
		w = minCardContent
	}
	return w
}
