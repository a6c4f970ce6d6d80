package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

func (a App) renderInsightsTab(cw int) string {
	t := theme.Active
	r := a.report
	innerW := components.CardInnerWidth(cw)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(r.Insights) == 0 {
		return components.ContentCard("Insights", muted.Render("Nothing to flag right now."), cw)
	}

	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	var body strings.Builder
	for i, in := range r.Insights {
		if i > 0 {
			body.WriteString("\n\n")
		}
		pri := lipgloss.NewStyle().Foreground(t.Severity(string(in.Priority))).Background(t.Surface).Bold(true)
		body.WriteString(pri.Render(fmt.Sprintf("%-9s", in.Priority)))
		title := in.Title
		if in.GoalID != "" {
			title += " · " + a.goalName(in.GoalID)
		}
		body.WriteString(text.Bold(true).Render(cli.Truncate(title, innerW-9)))
		body.WriteString("\n")
		body.WriteString(text.Render(cli.Truncate(in.Message, innerW)))
		if in.Action != "" {
			body.WriteString("\n")
			body.WriteString(accent.Render(cli.Truncate("→ "+in.Action, innerW)))
		}
	}

	footer := muted.Render(fmt.Sprintf("\n\nEngine %s · generated %s",
		r.EngineVersion, r.ReportGenerated.Format("2006-01-02 15:04")))
	return components.ContentCard(fmt.Sprintf("Insights [%d]", len(r.Insights)), body.String()+footer, cw)
}
