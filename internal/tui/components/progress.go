package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

// ProgressBar renders a block progress bar for a 0-1 fraction with a
// percentage label.
func ProgressBar(frac float64, width int) string {
	t := theme.Active
	frac = clamp01(frac)
	filled := min(int(frac*float64(width)), width)

	var barColor lipgloss.Color
	switch {
	case frac >= 0.8:
		barColor = t.AccentBright
	case frac >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", frac*100))
}

// ColorForUtilization returns green/yellow/orange/red as a share of
// capacity rises.
func ColorForUtilization(frac float64) lipgloss.Color {
	t := theme.Active
	switch {
	case frac >= 0.9:
		return t.Red
	case frac >= 0.7:
		return t.Orange
	case frac >= 0.5:
		return t.Yellow
	default:
		return t.Green
	}
}

// GoalBar renders a labeled completion bar tinted by goal health.
func GoalBar(label, health string, completionPct float64, labelW, barWidth int) string {
	t := theme.Active
	frac := clamp01(completionPct / 100)
	color := t.Health(health)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(frac) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", completionPct))
}

// UtilizationBar renders how much of a capacity band is spoken for.
func UtilizationBar(label string, used, capacity float64, labelW, barWidth int) string {
	t := theme.Active
	frac := 1.0
	if capacity > 0 {
		frac = used / capacity
	}
	shown := clamp01(frac)
	color := ColorForUtilization(frac)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(shown) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", frac*100))
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
