package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

func (a App) renderGoalsTab(cw int) string {
	if len(a.report.GoalOrder) == 0 {
		return components.ContentCard("Goals", "No goals to show.", cw)
	}

	listW := cw * 2 / 5
	detailW := cw - listW

	return components.CardRow([]string{
		components.ContentCard(fmt.Sprintf("Goals [%d]", len(a.report.GoalOrder)), a.renderGoalList(listW), listW),
		components.ContentCard("Detail", a.renderGoalDetail(detailW), detailW),
	})
}

func (a App) renderGoalList(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)
	labelW := min(18, innerW/2)
	barW := max(innerW-labelW-6, 6)

	selected := lipgloss.NewStyle().Background(t.SurfaceHover)

	lines := make([]string, 0, len(a.report.GoalOrder))
	for i, id := range a.report.GoalOrder {
		ga := a.report.Goals[id]
		line := components.GoalBar(
			cli.Truncate(ga.GoalInfo.Name, labelW),
			string(ga.HealthStatus),
			ga.Progress.CompletionPercentage,
			labelW, barW,
		)
		if i == a.cursor {
			line = selected.Render(lipgloss.PlaceHorizontal(innerW, lipgloss.Left, line,
				lipgloss.WithWhitespaceBackground(t.SurfaceHover)))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a App) renderGoalDetail(outerW int) string {
	ga, ok := a.selectedGoal()
	if !ok {
		return ""
	}
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)
	g := ga.GoalInfo

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	healthStyle := lipgloss.NewStyle().Foreground(t.Health(string(ga.HealthStatus))).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render(cli.Truncate(g.Name, innerW)))
	b.WriteString("\n")
	b.WriteString(healthStyle.Render(cli.FormatHealth(ga.HealthStatus)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %s priority", g.Type, g.Priority)))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(cli.Truncate(ga.HealthExplanation, innerW)))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	field("Saved", fmt.Sprintf("%s of %s", cli.FormatMoney(g.CurrentAmount), cli.FormatMoney(g.TargetAmount)))
	field("Due", cli.FormatDate(g.TargetDate))
	field("Expected", fmt.Sprintf("%s (%s)", cli.FormatPercent(ga.Progress.ExpectedProgress), cli.FormatVariance(ga.Progress.Variance)))
	field("Contributing", cli.FormatMoney(g.MonthlyContribution)+"/mo")
	field("Needs", cli.FormatMoney(ga.Feasibility.RequiredMonthly)+"/mo")
	field("Feasibility", fmt.Sprintf("%d/100 · %s", ga.Feasibility.Score, cli.FormatPercent(ga.Feasibility.CapacityUtilization)))
	field("Finishes", fmt.Sprintf("%s · %.0f%% likely", cli.FormatPredicted(ga.Prediction.MonthsToCompletion), ga.Prediction.SuccessProbability))
	if ga.DelayEstimate.HasDelay {
		delayStyle := lipgloss.NewStyle().Foreground(t.Severity(string(ga.DelayEstimate.RiskLevel))).Background(t.Surface)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", "Delay")))
		b.WriteString(delayStyle.Render(fmt.Sprintf("%.1f months (%s risk)", ga.DelayEstimate.DelayMonths, ga.DelayEstimate.RiskLevel)))
		b.WriteString("\n")
	}

	bullets := func(title string, items []string, color lipgloss.Color) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Bold(true).Render(title))
		bullet := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
		for _, item := range items {
			b.WriteString("\n")
			b.WriteString(bullet.Render("• " + cli.Truncate(item, innerW-2)))
		}
	}
	bullets("Why", ga.Feasibility.Reasons, t.TextPrimary)
	bullets("Try", ga.Feasibility.Recommendations, t.AccentBright)
	if ga.DelayEstimate.HasDelay {
		bullets("Delay causes", ga.DelayEstimate.DelayReasons, t.Orange)
	}

	return strings.TrimRight(b.String(), "\n")
}

// goalName resolves a goal id to its display name.
func (a App) goalName(id string) string {
	if ga, ok := a.report.Goals[id]; ok {
		return ga.GoalInfo.Name
	}
	return id
}

// goalNames maps ids onto display names.
func (a App) goalNames(ids []string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = a.goalName(id)
	}
	return strings.Join(names, ", ")
}
