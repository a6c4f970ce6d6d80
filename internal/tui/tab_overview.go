package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	r := a.report
	s := r.Summary
	var b strings.Builder

	if s.TotalGoals == 0 {
		return components.ContentCard("No goals yet",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render("Add one with `nestegg add`, then press r to reload."), cw)
	}

	attention := ""
	if s.GoalsNeedingAttention > 0 {
		attention = fmt.Sprintf("%d need attention", s.GoalsNeedingAttention)
	}
	progressColor := t.Health(string(model.HealthOnTrack))
	if s.OverallProgress < 50 {
		progressColor = t.Yellow
	}

	// Row 1: Metric cards
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Saved", Value: cli.FormatMoney(s.TotalSaved), Note: "of " + cli.FormatMoney(s.TotalTargetAmount), Color: t.Green},
		{Label: "Remaining", Value: cli.FormatMoney(s.TotalRemaining)},
		{Label: "Progress", Value: cli.FormatPercent(s.OverallProgress), Color: progressColor},
		{Label: "Goals", Value: fmt.Sprintf("%d / %d on track", s.GoalsOnTrack, s.TotalGoals), Note: attention},
	}, cw))
	b.WriteString("\n")

	// Row 2: capacity vs what the goals ask for | health distribution
	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Monthly Capacity", a.renderCapacityBars(halves[0]), halves[0]),
		components.ContentCard("Goal Health", a.renderHealthDistribution(halves[1]), halves[1]),
	}))
	b.WriteString("\n")

	// Row 3: top insight
	if len(r.Insights) > 0 {
		in := r.Insights[0]
		titleStyle := lipgloss.NewStyle().Foreground(t.Severity(string(in.Priority))).Background(t.Surface).Bold(true)
		bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		body := titleStyle.Render(in.Title) + "\n" + bodyStyle.Render(cli.Truncate(in.Message, components.CardInnerWidth(cw)))
		b.WriteString(components.ContentCard("Top Insight", body, cw))
	}

	return b.String()
}

// requiredMonthly sums what every unfinished goal needs per month.
func (a App) requiredMonthly() float64 {
	total := 0.0
	for _, id := range a.report.GoalOrder {
		ga := a.report.Goals[id]
		if ga.HealthStatus == model.HealthCompleted {
			continue
		}
		total = money.Add(total, ga.Feasibility.RequiredMonthly)
	}
	return total
}

func (a App) renderCapacityBars(outerW int) string {
	t := theme.Active
	c := a.report.SavingsCapacity
	required := a.requiredMonthly()

	innerW := components.CardInnerWidth(outerW)
	labelW := 13
	barW := max(innerW-labelW-6, 10)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(muted.Render(fmt.Sprintf("Goals need %s/mo of %s base", cli.FormatMoney(required), cli.FormatMoney(c.BaseCapacity))))
	b.WriteString("\n")
	bands := []struct {
		name string
		v    float64
	}{
		{"Conservative", c.Conservative},
		{"Moderate", c.Moderate},
		{"Aggressive", c.Aggressive},
		{"Maximum", c.Maximum},
	}
	for i, band := range bands {
		b.WriteString(components.UtilizationBar(band.name, required, band.v, labelW, barW))
		if i < len(bands)-1 {
			b.WriteString("\n")
		}
	}
	if c.StressAdjusted {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).
			Render(fmt.Sprintf("Stress-adjusted x%.2f", c.StressMultiplier)))
	}
	return b.String()
}

func (a App) renderHealthDistribution(outerW int) string {
	d := a.report.GoalHealth
	total := a.report.Summary.TotalGoals

	innerW := components.CardInnerWidth(outerW)
	labelW := 12
	barW := max(innerW-labelW-6, 10)

	rows := []struct {
		health model.GoalHealth
		n      int
	}{
		{model.HealthOnTrack, d.OnTrack},
		{model.HealthAtRisk, d.AtRisk},
		{model.HealthOffTrack, d.OffTrack},
		{model.HealthUnrealistic, d.Unrealistic},
		{model.HealthCompleted, d.Completed},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		pct := 0.0
		if total > 0 {
			pct = float64(row.n) / float64(total) * 100
		}
		label := fmt.Sprintf("%s %d", cli.FormatHealth(row.health), row.n)
		lines = append(lines, components.GoalBar(label, string(row.health), pct, labelW, barW))
	}
	return strings.Join(lines, "\n")
}
