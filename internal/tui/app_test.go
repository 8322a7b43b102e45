package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/chatpulse/internal/config"
	"github.com/theirongolddev/chatpulse/internal/model"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/source"
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func writeInput(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "metrics.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func loadedApp(t *testing.T) App {
	t.Helper()
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "config.toml"))

	a := NewApp(config.DefaultConfig(), "metrics.json")
	a.historyPath = ""
	a.needSetup = false
	a.width, a.height = 120, 40

	sat := 92.0
	m, _ := a.Update(DataLoadedMsg{Result: LoadResult{Snapshot: model.Snapshot{
		Metrics: model.MetricsInput{
			TotalMessages:        1234,
			AverageResponseTime:  45,
			ResolvedChats:        300,
			ActiveAdmins:         5,
			CustomerSatisfaction: &sat,
		},
	}}})
	return m.(App)
}

func press(a App, key string) App {
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ := a.Update(msg)
	return m.(App)
}

func TestDataLoadedBuildsLayout(t *testing.T) {
	a := loadedApp(t)
	if !a.loaded || !a.hasData {
		t.Fatal("app not marked loaded")
	}
	if got := len(a.layout.Cards); got != 5 {
		t.Fatalf("cards = %d, want 5", got)
	}
	if a.layout.Performance.Tier != panel.TierNeedsImprovement {
		t.Fatalf("tier = %v, want needs_improvement", a.layout.Performance.Tier)
	}
}

func TestClampToggleRecomputes(t *testing.T) {
	a := loadedApp(t)
	if got := a.layout.Performance.Fill; got != -50 {
		t.Fatalf("literal fill = %v, want -50", got)
	}

	a = press(a, "c")
	if a.opts.Clamp != panel.ClampSymmetric {
		t.Fatalf("clamp = %q, want symmetric", a.opts.Clamp)
	}
	if got := a.layout.Performance.Fill; got != 0 {
		t.Fatalf("symmetric fill = %v, want 0", got)
	}

	a = press(a, "c")
	if got := a.layout.Performance.Fill; got != -50 {
		t.Fatalf("fill after second toggle = %v, want -50", got)
	}
}

func TestTabKeys(t *testing.T) {
	a := loadedApp(t)

	a = press(a, "h")
	if a.activeTab != tabHistory {
		t.Fatalf("after h: tab = %d, want %d", a.activeTab, tabHistory)
	}
	a = press(a, "p")
	if a.activeTab != 0 {
		t.Fatalf("after p: tab = %d, want 0", a.activeTab)
	}
	a = press(a, "left")
	if a.activeTab != tabHistory {
		t.Fatalf("left from first tab = %d, want wrap to %d", a.activeTab, tabHistory)
	}
	a = press(a, "right")
	if a.activeTab != 0 {
		t.Fatalf("right from last tab = %d, want 0", a.activeTab)
	}
}

func TestHelpToggle(t *testing.T) {
	a := loadedApp(t)
	a = press(a, "?")
	if !a.showHelp {
		t.Fatal("help not shown")
	}
	if !strings.Contains(ansi.Strip(a.View()), "Keyboard Shortcuts") {
		t.Fatal("help view missing title")
	}
	a = press(a, "x")
	if a.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestThemeCyclePersists(t *testing.T) {
	prev := theme.Active
	defer func() { theme.Active = prev }()

	a := loadedApp(t)
	theme.Active = theme.FlexokiDark
	_ = press(a, "t")

	if theme.Active.Name == theme.FlexokiDark.Name {
		t.Fatal("theme did not change")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Appearance.Theme != theme.Active.Name {
		t.Fatalf("saved theme = %q, want %q", cfg.Appearance.Theme, theme.Active.Name)
	}
}

func TestRefreshErrorKeepsLayout(t *testing.T) {
	a := loadedApp(t)
	before := a.layout

	m, _ := a.Update(RefreshDataMsg{Result: LoadResult{Err: errors.New("boom")}})
	a = m.(App)

	if a.loadErr == nil {
		t.Fatal("load error not recorded")
	}
	if a.layout.Cards[0].Value != before.Cards[0].Value {
		t.Fatalf("layout changed on failed refresh: %q", a.layout.Cards[0].Value)
	}
}

func TestViewMainRendersPanel(t *testing.T) {
	a := loadedApp(t)
	out := ansi.Strip(a.View())
	for _, want := range []string{"Panel", "1,234", "45 мин", "Требует улучшения", "92%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestViewNoInput(t *testing.T) {
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "config.toml"))
	a := NewApp(config.DefaultConfig(), "")
	a.historyPath = ""
	a.needSetup = false
	a.width, a.height = 100, 30

	m, _ := a.Update(DataLoadedMsg{Result: LoadResult{Err: source.ErrNoInput}})
	out := ansi.Strip(m.(App).View())
	if !strings.Contains(out, "No input file configured") {
		t.Fatalf("view = %q, want no-input hint", out)
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := loadedApp(t)
	a.width = 30
	if !strings.Contains(a.View(), "too narrow") {
		t.Fatal("narrow terminal message missing")
	}
}

func TestLoadMetricsRecordsOnChange(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, `{"totalMessages": 10, "averageResponseTime": 4, "resolvedChats": 3, "activeAdmins": 1}`)
	db := filepath.Join(dir, "history.db")

	res := loadMetrics(input, db, 100)
	if res.Err != nil {
		t.Fatalf("first load: %v", res.Err)
	}
	if got := len(res.History); got != 1 {
		t.Fatalf("history after first load = %d, want 1", got)
	}

	res = loadMetrics(input, db, 100)
	if got := len(res.History); got != 1 {
		t.Fatalf("unchanged input recorded again: history = %d", got)
	}

	writeInput(t, dir, `{"totalMessages": 20, "averageResponseTime": 4, "resolvedChats": 3, "activeAdmins": 1}`)
	res = loadMetrics(input, db, 100)
	if got := len(res.History); got != 2 {
		t.Fatalf("history after change = %d, want 2", got)
	}
	if res.History[0].Metrics.TotalMessages != 20 {
		t.Fatalf("newest = %d, want 20", res.History[0].Metrics.TotalMessages)
	}
}

func TestAutoRefreshTick(t *testing.T) {
	a := loadedApp(t)
	a.autoRefresh = true
	a.lastRefresh = time.Now().Add(-time.Hour)

	m, cmd := a.Update(tickMsg{})
	if !m.(App).refreshing {
		t.Fatal("stale tick should start a refresh")
	}
	if cmd == nil {
		t.Fatal("tick returned no command")
	}
}

func TestHistoryTab(t *testing.T) {
	a := loadedApp(t)

	out := ansi.Strip(a.renderHistoryTab(100))
	if !strings.Contains(out, "History is disabled") {
		t.Fatalf("disabled history view = %q", out)
	}

	a.historyPath = "history.db"
	now := time.Now()
	a.history = []model.Snapshot{
		{ID: 2, CapturedAt: now, Metrics: model.MetricsInput{TotalMessages: 2000, AverageResponseTime: 3}},
		{ID: 1, CapturedAt: now.Add(-time.Hour), Metrics: model.MetricsInput{TotalMessages: 1000, AverageResponseTime: 20}},
	}
	out = ansi.Strip(a.renderHistoryTab(100))
	for _, want := range []string{"History (2)", "2,000", "Отлично", "Удовлетворительно"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history view missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryFailureStillRendersPanel(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, `{"totalMessages": 1234, "averageResponseTime": 7, "resolvedChats": 300, "activeAdmins": 5}`)
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	res := loadMetrics(input, filepath.Join(blocker, "history.db"), 100)
	if res.Err != nil {
		t.Fatalf("input error = %v, want nil", res.Err)
	}
	if res.HistoryErr == nil {
		t.Fatal("expected a history error")
	}

	a := loadedApp(t)
	m, _ := a.Update(RefreshDataMsg{Result: res})
	a = m.(App)
	if !a.hasData || a.layout.Cards[0].Value != "1,234" {
		t.Fatalf("panel not built: hasData=%v cards=%v", a.hasData, a.layout.Cards)
	}
	if err := a.statusErr(); err == nil || !strings.Contains(err.Error(), "history") {
		t.Fatalf("statusErr = %v, want history error", err)
	}
}

func TestLoadMetricsRecordsNaNOnce(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "metrics.toml")
	body := "total_messages = 10\naverage_response_time = nan\nresolved_chats = 3\nactive_admins = 1\n"
	if err := os.WriteFile(input, []byte(body), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	db := filepath.Join(dir, "history.db")

	for i := 0; i < 2; i++ {
		res := loadMetrics(input, db, 100)
		if res.Err != nil || res.HistoryErr != nil {
			t.Fatalf("load %d: err=%v historyErr=%v", i, res.Err, res.HistoryErr)
		}
		if got := len(res.History); got != 1 {
			t.Fatalf("load %d: history = %d, want 1", i, got)
		}
	}
}
