// Package components provides reusable TUI widgets for the nestegg dashboard.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

// Metric is one value shown in a MetricCard.
type Metric struct {
	Label string
	Value string
	Note  string
	// Color overrides the value color when set.
	Color lipgloss.Color
}

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

// MetricCard renders a small card with label, value and an optional note.
// outerWidth is the total rendered width including border.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active

	contentWidth := max(outerWidth-2, 10)

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(contentWidth).
		Padding(0, 1)

	valueColor := t.TextPrimary
	if m.Color != "" {
		valueColor = m.Color
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(valueColor).Background(t.Surface).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	content := labelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)
	if m.Note != "" {
		content += "\n" + noteStyle.Render(m.Note)
	}

	return cardStyle.Render(content)
}

// MetricCardRow renders a row of metric cards side by side.
// totalWidth is the full row width; cards sum to exactly that.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}

	widths := LayoutRow(totalWidth, len(metrics))
	rendered := make([]string, len(metrics))
	for i, m := range metrics {
		rendered[i] = MetricCard(m, widths[i])
	}
	return CardRow(rendered)
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	contentWidth := max(outerWidth-2, 10)

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

// CardRow joins pre-rendered cards horizontally, filling the space under
// shorter cards with the app background.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}

	tallest := 0
	for _, c := range cards {
		tallest = max(tallest, lipgloss.Height(c))
	}

	bg := theme.Active.Background
	padded := make([]string, len(cards))
	for i, c := range cards {
		padded[i] = lipgloss.PlaceVertical(tallest, lipgloss.Top, c,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
