package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/pipeline"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

func (a App) renderConflictsTab(cw int) string {
	t := theme.Active
	r := a.report
	innerW := components.CardInnerWidth(cw)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	var b strings.Builder

	if len(r.Conflicts) == 0 {
		b.WriteString(components.ContentCard("Conflicts", muted.Render("No conflicts between goals."), cw))
	} else {
		var body strings.Builder
		for i, c := range r.Conflicts {
			if i > 0 {
				body.WriteString("\n\n")
			}
			sev := lipgloss.NewStyle().Foreground(t.Severity(string(c.Severity))).Background(t.Surface).Bold(true)
			body.WriteString(sev.Render(fmt.Sprintf("%-8s", c.Severity)))
			body.WriteString(text.Render(cli.Truncate(c.Description, innerW-8)))
			if c.Impact != "" {
				body.WriteString("\n")
				body.WriteString(muted.Render(cli.Truncate(c.Impact, innerW)))
			}
			if len(c.AffectedGoals) > 0 {
				body.WriteString("\n")
				body.WriteString(muted.Render(cli.Truncate("Goals: "+a.goalNames(c.AffectedGoals), innerW)))
			}
			body.WriteString("\n")
			body.WriteString(accent.Render(cli.Truncate("→ "+c.Recommendation, innerW)))
		}
		b.WriteString(components.ContentCard(fmt.Sprintf("Conflicts [%d]", len(r.Conflicts)), body.String(), cw))
	}

	stressed := r.StressAdjustments.StressDetected
	overspending := r.OverspendingImpact.OverspendingDetected
	n := 0
	for _, on := range []bool{stressed, overspending} {
		if on {
			n++
		}
	}
	if n == 0 {
		return b.String()
	}

	widths := components.LayoutRow(cw, n)
	cards := make([]string, 0, n)
	if stressed {
		cards = append(cards, components.ContentCard("Financial Stress", a.renderStress(widths[0]), widths[0]))
	}
	if overspending {
		w := widths[len(cards)]
		cards = append(cards, components.ContentCard("Overspending Impact", a.renderOverspending(w), w))
	}
	b.WriteString("\n")
	b.WriteString(components.CardRow(cards))
	return b.String()
}

func (a App) renderStress(outerW int) string {
	t := theme.Active
	s := a.report.StressAdjustments
	innerW := components.CardInnerWidth(outerW)

	level := lipgloss.NewStyle().Foreground(t.Severity(s.StressLevel)).Background(t.Surface).Bold(true)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	lines := []string{level.Render(s.StressLevel + " stress")}
	for _, rec := range s.Recommendations {
		lines = append(lines, text.Render(cli.Truncate("• "+rec, innerW)))
	}
	for _, f := range s.FrozenGoals {
		lines = append(lines, muted.Render(cli.Truncate("Pause "+f.GoalName, innerW)))
	}
	for _, rc := range s.ReducedContributions {
		lines = append(lines, muted.Render(cli.Truncate(fmt.Sprintf("%s: %s → %s",
			rc.GoalName, cli.FormatMoney(rc.CurrentContribution), cli.FormatMoney(rc.RecommendedContribution)), innerW)))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderOverspending(outerW int) string {
	t := theme.Active
	o := a.report.OverspendingImpact
	innerW := components.CardInnerWidth(outerW)

	sev := lipgloss.NewStyle().Foreground(t.Severity(string(o.Severity))).Background(t.Surface).Bold(true)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	lines := []string{sev.Render(fmt.Sprintf("%s severity · %d months total delay", o.Severity, o.TotalDelayMonths()))}
	for _, id := range o.AffectedGoals {
		d := o.EstimatedDelay[id]
		delay := "stalled"
		if d.DelayMonths < pipeline.HorizonSentinel {
			delay = fmt.Sprintf("+%d months", d.DelayMonths)
		}
		lines = append(lines, text.Render(cli.Truncate(fmt.Sprintf("%s  %s", d.GoalName, delay), innerW)))
	}
	for _, act := range o.RecoveryActions {
		lines = append(lines, accent.Render(cli.Truncate("→ "+act, innerW)))
	}
	return strings.Join(lines, "\n")
}
