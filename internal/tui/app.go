// Package tui provides the interactive Bubble Tea dashboard for chatpulse.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/chatpulse/internal/config"
	"github.com/theirongolddev/chatpulse/internal/model"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/source"
	"github.com/theirongolddev/chatpulse/internal/store"
	"github.com/theirongolddev/chatpulse/internal/tui/components"
	"github.com/theirongolddev/chatpulse/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the first load finishes.
type DataLoadedMsg struct {
	Result   LoadResult
	LoadTime time.Duration
}

// RefreshDataMsg is sent when a background refresh completes.
type RefreshDataMsg struct {
	Result   LoadResult
	LoadTime time.Duration
}

// LoadResult is the outcome of reading the input and history. Err is the
// input error; HistoryErr never blocks the panel.
type LoadResult struct {
	Snapshot   model.Snapshot
	History    []model.Snapshot
	Err        error
	HistoryErr error
}

// App is the root Bubble Tea model.
type App struct {
	cfg  config.Config
	opts panel.Options

	// Data
	snapshot model.Snapshot
	layout   panel.Layout
	history  []model.Snapshot
	loaded   bool
	hasData  bool
	loadErr  error
	histErr  error
	loadTime time.Duration

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model

	inputPath   string
	historyPath string // empty disables history
}

const (
	minTerminalWidth = 40
	maxContentWidth  = 160
	minContentHeight = 5

	historyRows = 48
	tabHistory  = 1
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model reading metrics from inputPath.
func NewApp(cfg config.Config, inputPath string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	historyPath := ""
	if cfg.History.Enabled {
		historyPath = config.HistoryPath(cfg)
	}

	return App{
		cfg:             cfg,
		opts:            cfg.PanelOptions(),
		needSetup:       !config.Exists(),
		autoRefresh:     cfg.General.AutoRefresh,
		refreshInterval: config.RefreshInterval(cfg),
		spinner:         sp,
		inputPath:       inputPath,
		historyPath:     historyPath,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.inputPath, a.historyPath, a.cfg.History.Keep),
		a.spinner.Tick,
		tickCmd(),
	)
}

// apply installs a load result. A failed load keeps the previous layout.
func (a *App) apply(r LoadResult, took time.Duration) {
	a.loadTime = took
	a.lastRefresh = time.Now()
	a.loadErr = r.Err
	a.histErr = r.HistoryErr
	if r.History != nil {
		a.history = r.History
	}
	if r.Err != nil {
		return
	}
	a.snapshot = r.Snapshot
	a.hasData = true
	a.recompute()
}

func (a *App) recompute() {
	a.layout = panel.Build(a.snapshot.Metrics, a.opts)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.apply(msg.Result, msg.LoadTime)

		if a.needSetup {
			a.setupVals = newSetupValues(a.cfg, a.inputPath)
			a.setupForm = newSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.apply(msg.Result, msg.LoadTime)
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing && time.Since(a.lastRefresh) >= a.refreshInterval {
			a.refreshing = true
			cmds = append(cmds, refreshDataCmd(a.inputPath, a.historyPath, a.cfg.History.Keep))
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.inputPath, a.historyPath, a.cfg.History.Keep)
		}
	case "R":
		a.autoRefresh = !a.autoRefresh
		// Persist to config (best-effort, ignore errors)
		cfg := loadConfigOrDefault()
		cfg.General.AutoRefresh = a.autoRefresh
		_ = config.Save(cfg)
	case "t":
		next := theme.Next(theme.Active.Name)
		theme.Active = next
		a.spinner.Style = a.spinner.Style.Foreground(next.Accent).Background(next.Surface)
		cfg := loadConfigOrDefault()
		cfg.Appearance.Theme = next.Name
		_ = config.Save(cfg)
	case "c":
		if a.opts.Clamp == panel.ClampSymmetric {
			a.opts.Clamp = panel.ClampLiteral
		} else {
			a.opts.Clamp = panel.ClampSymmetric
		}
		a.recompute()
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		reload := a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		if reload {
			a.refreshing = true
			return a, refreshDataCmd(a.inputPath, a.historyPath, a.cfg.History.Keep)
		}
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  chatpulse needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ chatpulse"))
	b.WriteString(subtitleStyle.Render(" · Support Chat Metrics"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading " + a.inputPath))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"p h", "Panel / History tab"},
		{"← →", "Previous / Next tab"},
		{"r", "Reload metrics"},
		{"R", "Toggle auto-refresh"},
		{"t", "Cycle theme"},
		{"c", "Toggle fill clamp (literal / symmetric)"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-6s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	age := ""
	if !a.snapshot.CapturedAt.IsZero() {
		age = "captured " + a.snapshot.CapturedAt.Local().Format("15:04:05")
	}
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Source:      a.inputPath,
		DataAge:     age,
		Clamp:       string(a.opts.Clamp),
		Refreshing:  a.refreshing,
		AutoRefresh: a.autoRefresh,
		Err:         a.statusErr(),
	})

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch {
	case a.activeTab == tabHistory:
		content = a.renderHistoryTab(cw)
	case a.hasData:
		content = components.RenderPanel(a.layout, cw)
	default:
		content = a.renderNoData(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderNoData(cw int) string {
	msg := "No metrics loaded."
	switch {
	case errors.Is(a.loadErr, source.ErrNoInput):
		msg = "No input file configured. Pass --input or set CHATPULSE_INPUT."
	case a.loadErr != nil:
		msg = a.loadErr.Error()
	}
	return components.ContentCard("chatpulse", msg, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// statusErr is the error shown in the status bar. Input errors win over
// history errors.
func (a App) statusErr() error {
	if a.loadErr != nil {
		return a.loadErr
	}
	if a.histErr != nil {
		return fmt.Errorf("history: %w", a.histErr)
	}
	return nil
}

// loadMetrics reads the input file and, when historyPath is set, records
// it if it changed since the last stored snapshot and returns recent
// history.
func loadMetrics(inputPath, historyPath string, keep int) LoadResult {
	snap, err := source.LoadSnapshot(inputPath)
	res := LoadResult{Snapshot: snap, Err: err}
	if historyPath == "" {
		return res
	}

	var current *model.Snapshot
	if err == nil {
		current = &snap
	}
	res.History, res.HistoryErr = syncHistory(historyPath, current, keep)
	return res
}

// syncHistory records current when it differs from the latest stored
// snapshot, then returns the most recent rows.
func syncHistory(historyPath string, current *model.Snapshot, keep int) ([]model.Snapshot, error) {
	h, err := store.Open(historyPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = h.Close() }()

	if current != nil {
		latest, err := h.Latest()
		switch {
		case errors.Is(err, store.ErrNoSnapshots) || (err == nil && !latest.Metrics.Equal(current.Metrics)):
			if _, err := h.Record(*current); err != nil {
				return nil, err
			}
			if _, err := h.Prune(keep); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		}
	}

	list, err := h.List(historyRows)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Snapshot{}
	}
	return list, nil
}

func loadDataCmd(inputPath, historyPath string, keep int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		return DataLoadedMsg{Result: loadMetrics(inputPath, historyPath, keep), LoadTime: time.Since(start)}
	}
}

func refreshDataCmd(inputPath, historyPath string, keep int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		return RefreshDataMsg{Result: loadMetrics(inputPath, historyPath, keep), LoadTime: time.Since(start)}
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
