package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/chatpulse/internal/model"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, total := range []int{0, 7, 80, 121} {
		for n := 1; n <= 5; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			if sum != total {
				t.Fatalf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestMetricCardGridWraps(t *testing.T) {
	theme.SetActive("flexoki-dark")
	tiles := make([]Tile, 5)
	for i := range tiles {
		tiles[i] = Tile{Icon: "*", Label: "label", Value: "1", Accent: theme.Active.Blue}
	}

	oneRow := MetricCardGrid(tiles, 150, 5)
	twoRows := MetricCardGrid(tiles, 90, 3)

	if h := lipgloss.Height(oneRow); h != 4 {
		t.Errorf("single row height = %d, want 4", h)
	}
	if h := lipgloss.Height(twoRows); h != 8 {
		t.Errorf("wrapped grid height = %d, want 8", h)
	}
	for i, line := range strings.Split(oneRow, "\n") {
		if w := lipgloss.Width(line); w != 150 {
			t.Errorf("line %d width = %d, want 150", i, w)
		}
	}
}

func TestCardRowPadsShortCards(t *testing.T) {
	theme.SetActive("flexoki-dark")
	short := ContentCard("Short", "Content", 22)
	tall := ContentCard("Tall", "1\n2\n3\n4\n5", 22)

	lines := strings.Split(CardRow([]string{tall, short}), "\n")
	if len(lines) != lipgloss.Height(tall) {
		t.Fatalf("joined height = %d, want %d", len(lines), lipgloss.Height(tall))
	}
	for i, line := range lines {
		if !strings.Contains(line, "\x1b[") {
			t.Errorf("line %d has no ANSI styling", i)
		}
	}
}

func TestBarRatioClamps(t *testing.T) {
	cases := map[float64]float64{-50: 0, 0: 0, 50: 0.5, 100: 1, 150: 1}
	for fill, want := range cases {
		if got := barRatio(fill); got != want {
			t.Errorf("barRatio(%v) = %v, want %v", fill, got, want)
		}
	}
}

func TestPerformanceBarShowsRawFill(t *testing.T) {
	out := ansi.Strip(PerformanceBar(-50, theme.Active.Red, 20))
	if !strings.Contains(out, "-50%") {
		t.Errorf("bar output %q should show the unclamped -50%%", out)
	}
}

func TestRenderPanelContainsValues(t *testing.T) {
	theme.SetActive("flexoki-dark")
	in := model.MetricsInput{
		TotalMessages:        1234,
		AverageResponseTime:  7,
		ResolvedChats:        300,
		ActiveAdmins:         5,
		CustomerSatisfaction: model.Satisfaction(92),
	}
	l := panel.Build(in, panel.DefaultOptions())

	for _, width := range []int{80, 140} {
		out := ansi.Strip(RenderPanel(l, width))
		for _, want := range []string{"1,234", "7 мин", "300", "92%", "Хорошо", "247", "10", "Производительность", "Статистика"} {
			if !strings.Contains(out, want) {
				t.Errorf("width %d: output missing %q", width, want)
			}
		}
	}
}

func TestResponseSparklineLength(t *testing.T) {
	out := ansi.Strip(ResponseSparkline([]float64{1, 10, 20, 40}))
	if n := len([]rune(out)); n != 4 {
		t.Fatalf("sparkline runes = %d, want 4", n)
	}
	if ResponseSparkline(nil) != "" {
		t.Fatal("empty sparkline should be empty")
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('h') != 1 || TabIdxByKey('p') != 0 || TabIdxByKey('z') != -1 {
		t.Fatal("TabIdxByKey mismatch")
	}
}
