package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Goals", Key: 'g', KeyPos: 0},
	{Name: "Conflicts", Key: 'c', KeyPos: 0},
	{Name: "Insights", Key: 'i', KeyPos: 0},
}

func tabStyles(active bool) (name, key, pad lipgloss.Style) {
	t := theme.Active
	bg := t.Surface
	name = lipgloss.NewStyle().Foreground(t.TextMuted)
	if active {
		bg = t.SurfaceHover
		name = name.Foreground(t.AccentBright).Bold(true)
	}
	name = name.Background(bg)
	key = lipgloss.NewStyle().Foreground(t.Accent).Background(bg).Bold(true).Underline(true)
	pad = lipgloss.NewStyle().Background(bg)
	return name, key, pad
}

// renderTab draws " Name " with the shortcut letter highlighted on
// inactive tabs.
func renderTab(tab Tab, active bool) string {
	name, key, pad := tabStyles(active)
	body := name.Render(tab.Name)
	if !active && tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		body = name.Render(tab.Name[:tab.KeyPos]) +
			key.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
			name.Render(tab.Name[tab.KeyPos+1:])
	}
	return pad.Render(" ") + body + pad.Render(" ")
}

// TabVisualWidth returns the rendered width of a tab, used for mouse hit tests.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	row := strings.Join(parts, sep.Render("│"))

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
