package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar. source names where the
// goals came from; age describes the last load.
func RenderStatusBar(width int, source, age string, refreshing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [r]efresh  [q]uit"
	right := ""
	if source != "" {
		right = source + "  "
	}
	switch {
	case refreshing:
		right += "refreshing… "
	case age != "":
		right += age + " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", padding)) + right

	return style.Render(bar)
}
