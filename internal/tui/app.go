// Package tui provides the interactive Bubble Tea dashboard for nestegg.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/pipeline"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

// ReportLoadedMsg is sent when a snapshot has been loaded and analysed.
type ReportLoadedMsg struct {
	Report   model.Report
	Label    string
	LoadTime time.Duration
	Err      error
}

// Options configure where the dashboard reads goals from.
type Options struct {
	Load     pipeline.LoadOptions
	Settings pipeline.Settings
	// Setup shows the first-run form before the dashboard.
	Setup bool
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	report   model.Report
	label    string
	loaded   bool
	loadErr  error
	loadTime time.Duration
	loadedAt time.Time

	refreshing bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursor    int // selected goal on the Goals tab

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool
	setupErr  error

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

const (
	tabOverview = iota
	tabGoals
	tabConflicts
	tabInsights
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		opts:      opts,
		needSetup: opts.Setup,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadReportCmd(a.opts),
		a.spinner.Tick,
	)
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
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		return a.updateKeys(msg)

	case ReportLoadedMsg:
		a.refreshing = false
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadedAt = time.Now()
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.report = msg.Report
			a.label = msg.Label
			a.clampCursor()
		}

		if a.needSetup && a.setupForm == nil {
			cfg, _ := config.Load()
			a.setupVals = SetupValuesFrom(cfg)
			a.setupForm = NewSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabGoals {
		switch key {
		case "j", "down":
			a.cursor++
			a.clampCursor()
			return a, nil
		case "k", "up":
			a.cursor--
			a.clampCursor()
			return a, nil
		case "home":
			a.cursor = 0
			return a, nil
		case "end", "G":
			a.cursor = len(a.report.GoalOrder) - 1
			a.clampCursor()
			return a, nil
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if a.refreshing {
			return a, nil
		}
		a.refreshing = true
		return a, tea.Batch(loadReportCmd(a.opts), a.spinner.Tick)
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabGoals {
			a.cursor--
			a.clampCursor()
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabGoals {
			a.cursor++
			a.clampCursor()
		}
	case tea.MouseButtonLeft:
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
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
		a.setupForm = nil
		a.needSetup = false
		cfg, _ := config.Load()
		if err := a.setupVals.Apply(&cfg); err != nil {
			a.setupErr = err
			return a, nil
		}
		a.setupErr = config.Save(cfg)
		theme.SetActive(cfg.Appearance.Theme)
		a.opts.Load.Signals = cfg.ToSignals()
		a.opts.Settings = cfg.Settings()
		a.refreshing = true
		return a, tea.Batch(loadReportCmd(a.opts), a.spinner.Tick)
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}
	return a, cmd
}

func (a *App) clampCursor() {
	n := len(a.report.GoalOrder)
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// selectedGoal returns the analysis under the Goals tab cursor.
func (a App) selectedGoal() (model.GoalAnalysis, bool) {
	if a.cursor < 0 || a.cursor >= len(a.report.GoalOrder) {
		return model.GoalAnalysis{}, false
	}
	ga, ok := a.report.Goals[a.report.GoalOrder[a.cursor]]
	return ga, ok
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
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  nestegg needs at least %d columns.\n",
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
	b.WriteString(logoStyle.Render("◈ nestegg"))
	b.WriteString(subtitleStyle.Render(" · Savings Goals"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Analysing goals..."))

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

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o g c i", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Select goal"},
		{"r", "Reload goals"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
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

	header := components.RenderTabBar(a.activeTab, w)

	age := ""
	if !a.loadedAt.IsZero() {
		age = fmt.Sprintf("analysed %s in %s", cli.FormatAge(a.loadedAt, time.Now()), a.loadTime.Round(time.Millisecond))
	}
	statusBar := components.RenderStatusBar(w, a.label, age, a.refreshing)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.loadErr != nil:
		content = a.renderError(cw)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabGoals:
			content = a.renderGoalsTab(cw)
		case tabConflicts:
			content = a.renderConflictsTab(cw)
		case tabInsights:
			content = a.renderInsightsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderError(cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	body := errStyle.Render(a.loadErr.Error())
	if a.setupErr != nil {
		body += "\n" + errStyle.Render("setup: "+a.setupErr.Error())
	}
	return components.ContentCard("Could not load goals", body, cw)
}

// loadReportCmd loads a fresh snapshot and analyses it off the UI goroutine.
func loadReportCmd(opts Options) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		load := opts.Load
		load.Now = start

		snap, err := pipeline.LoadSnapshot(load)
		if err != nil {
			return ReportLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		return ReportLoadedMsg{
			Report:   pipeline.Analyze(snap.Goals, snap.Pass(opts.Settings)),
			Label:    snap.Label,
			LoadTime: time.Since(start),
		}
	}
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

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
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
