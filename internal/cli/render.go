package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	moneyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dangerStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
	// LeftCols is how many leading columns are left-aligned; the rest are
	// right-aligned. Zero means just the first.
	LeftCols int
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderSection renders an accent section heading.
func RenderSection(title string) string {
	return "  " + headerStyle.Render(title)
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	leftCols := t.LeftCols
	if leftCols < 1 {
		leftCols = 1
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString(RenderSection(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], i < leftCols)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], i < leftCols)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

// pad surrounds cell with one space each side and fills it to width
// display columns.
func pad(cell string, width int, left bool) string {
	fill := width - lipgloss.Width(cell)
	if fill < 0 {
		fill = 0
	}
	if left {
		return " " + cell + strings.Repeat(" ", fill) + " "
	}
	return " " + strings.Repeat(" ", fill) + cell + " "
}

// RenderProgressBar renders a completion bar for a 0-100 percentage.
func RenderProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := pct / 100
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}

	filled := int(frac * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %5.1f%%", mutedStyle.Render(bar), pct)
}

// RenderHorizontalBar renders a labelled horizontal bar chart entry.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return fmt.Sprintf("  %s", label)
	}
	barLen := int(value / maxValue * float64(maxWidth))
	if barLen < 0 {
		barLen = 0
	}
	if barLen > maxWidth {
		barLen = maxWidth
	}
	bar := strings.Repeat("█", barLen)
	return fmt.Sprintf("  %s %s %s", label, moneyStyle.Render(bar), FormatMoney(value))
}

// HealthStyle returns the style used to render a health state.
func HealthStyle(h model.GoalHealth) lipgloss.Style {
	switch h {
	case model.HealthCompleted:
		return lipgloss.NewStyle().Foreground(ColorBlue)
	case model.HealthOnTrack:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case model.HealthAtRisk:
		return warnStyle
	case model.HealthOffTrack:
		return lipgloss.NewStyle().Foreground(ColorRed)
	default:
		return dangerStyle
	}
}

// PriorityStyle returns the style used for an insight or conflict grade.
func PriorityStyle(p string) lipgloss.Style {
	switch p {
	case string(model.InsightCritical):
		return dangerStyle
	case string(model.InsightHigh):
		return lipgloss.NewStyle().Foreground(ColorRed)
	case string(model.InsightMedium):
		return warnStyle
	default:
		return mutedStyle
	}
}
