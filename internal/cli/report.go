package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/nestegg/internal/model"
)

// RenderReport renders every section of a report for the terminal.
func RenderReport(r model.Report) string {
	var b strings.Builder

	b.WriteString(RenderTitle("SAVINGS GOALS"))
	b.WriteString("\n\n")

	if r.Summary.TotalGoals == 0 {
		b.WriteString(RenderInsights(r.Insights))
		return b.String()
	}

	b.WriteString(RenderSummary(r.Summary))
	b.WriteString("\n")
	b.WriteString(RenderCapacity(r.SavingsCapacity))
	b.WriteString("\n")
	b.WriteString(RenderGoals(r))
	if len(r.Conflicts) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderConflicts(r.Conflicts))
	}
	if adj := RenderAdjustments(r.StressAdjustments, r.OverspendingImpact); adj != "" {
		b.WriteString("\n")
		b.WriteString(adj)
	}
	if len(r.Insights) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderInsights(r.Insights))
	}
	return b.String()
}

// RenderSummary renders the portfolio totals and health distribution.
func RenderSummary(s model.Summary) string {
	d := s.HealthDistribution
	rows := [][]string{
		{"Goals", strconv.Itoa(s.TotalGoals)},
		{"Target", FormatMoney(s.TotalTargetAmount)},
		{"Saved", FormatMoney(s.TotalSaved)},
		{"Remaining", FormatMoney(s.TotalRemaining)},
		{"Overall Progress", FormatPercent(s.OverallProgress)},
		{"---"},
		{"On Track", strconv.Itoa(d.OnTrack)},
		{"At Risk", strconv.Itoa(d.AtRisk)},
		{"Off Track", strconv.Itoa(d.OffTrack)},
		{"Unrealistic", strconv.Itoa(d.Unrealistic)},
		{"Completed", strconv.Itoa(d.Completed)},
	}
	return RenderTable(Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	})
}

// RenderCapacity renders the monthly capacity bands as a bar chart.
func RenderCapacity(c model.CapacityEstimate) string {
	var b strings.Builder
	b.WriteString(RenderSection("Monthly Savings Capacity"))
	b.WriteString("\n")

	bands := []struct {
		label string
		value float64
	}{
		{"Conservative", c.Conservative},
		{"Moderate    ", c.Moderate},
		{"Aggressive  ", c.Aggressive},
		{"Maximum     ", c.Maximum},
	}
	for _, band := range bands {
		b.WriteString(RenderHorizontalBar(band.label, band.value, c.Maximum, 30))
		b.WriteString("\n")
	}

	var notes []string
	if c.StressAdjusted {
		notes = append(notes, fmt.Sprintf("stress multiplier %.2f", c.StressMultiplier))
	}
	if c.OverspendingImpact {
		notes = append(notes, "reduced by overspending")
	}
	if len(notes) > 0 {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(strings.Join(notes, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderGoals renders one row per goal in report order.
func RenderGoals(r model.Report) string {
	rows := make([][]string, 0, len(r.GoalOrder))
	for _, id := range r.GoalOrder {
		a, ok := r.Goals[id]
		if !ok {
			continue
		}
		g := a.GoalInfo
		rows = append(rows, []string{
			Truncate(g.Name, 24),
			FormatHealth(a.HealthStatus),
			FormatMoney(g.CurrentAmount) + " / " + FormatMoney(g.TargetAmount),
			FormatPercent(a.Progress.CompletionPercentage),
			FormatVariance(a.Progress.Variance),
			strconv.Itoa(a.Feasibility.Score),
			FormatMoney(a.Feasibility.RequiredMonthly),
			FormatPredicted(a.Prediction.MonthsToCompletion),
			FormatDate(g.TargetDate),
		})
	}
	return RenderTable(Table{
		Title:    "Goals",
		Headers:  []string{"Goal", "Health", "Saved / Target", "Done", "Variance", "Score", "Needs/mo", "ETA", "Due"},
		Rows:     rows,
		LeftCols: 2,
	})
}

// RenderConflicts lists detected conflicts with their recommendations.
func RenderConflicts(conflicts []model.Conflict) string {
	var b strings.Builder
	b.WriteString(RenderSection("Conflicts"))
	b.WriteString("\n")
	for _, c := range conflicts {
		tag := PriorityStyle(string(c.Severity)).Render("[" + string(c.Severity) + "]")
		fmt.Fprintf(&b, "  %s %s\n", tag, c.Description)
		if c.Impact != "" {
			fmt.Fprintf(&b, "      %s\n", mutedStyle.Render(c.Impact))
		}
		fmt.Fprintf(&b, "      -> %s\n", c.Recommendation)
	}
	return b.String()
}

// RenderInsights lists insights, most urgent first.
func RenderInsights(insights []model.Insight) string {
	var b strings.Builder
	b.WriteString(RenderSection("Insights"))
	b.WriteString("\n")
	for _, in := range insights {
		tag := PriorityStyle(string(in.Priority)).Render(fmt.Sprintf("%-8s", in.Priority))
		fmt.Fprintf(&b, "  %s %s\n", tag, valueStyle.Render(in.Title))
		fmt.Fprintf(&b, "           %s\n", in.Message)
		if in.Action != "" {
			fmt.Fprintf(&b, "           %s\n", mutedStyle.Render("-> "+in.Action))
		}
	}
	return b.String()
}

// RenderAdjustments renders stress and overspending recommendations, or ""
// when neither signal is active.
func RenderAdjustments(sa model.StressAdjustments, oi model.OverspendingImpact) string {
	if !sa.StressDetected && !oi.OverspendingDetected {
		return ""
	}

	var b strings.Builder
	if sa.StressDetected {
		b.WriteString(RenderSection(fmt.Sprintf("Stress Adjustments (%s)", sa.StressLevel)))
		b.WriteString("\n")
		for _, f := range sa.FrozenGoals {
			fmt.Fprintf(&b, "  %s %s\n", warnStyle.Render("pause"), f.GoalName)
		}
		for _, rc := range sa.ReducedContributions {
			fmt.Fprintf(&b, "  %s %s: %s -> %s\n", warnStyle.Render("reduce"), rc.GoalName,
				FormatMoney(rc.CurrentContribution), FormatMoney(rc.RecommendedContribution))
		}
		for _, rec := range sa.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}
	}

	if oi.OverspendingDetected {
		if sa.StressDetected {
			b.WriteString("\n")
		}
		b.WriteString(RenderSection(fmt.Sprintf("Overspending Impact (%s)", oi.Severity)))
		b.WriteString("\n")
		for _, id := range oi.AffectedGoals {
			d := oi.EstimatedDelay[id]
			delay := fmt.Sprintf("+%d months", d.DelayMonths)
			if d.DelayMonths >= 999 {
				delay = "stalled"
			}
			fmt.Fprintf(&b, "  %s %s (%s)\n", d.GoalName, delay, d.ImpactSeverity)
		}
		for _, a := range oi.RecoveryActions {
			fmt.Fprintf(&b, "  - %s\n", a)
		}
	}
	return b.String()
}

// RenderHealthCheck renders the quick single-goal answer.
func RenderHealthCheck(hc model.HealthCheck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s\n", valueStyle.Bold(true).Render(hc.GoalName), mutedStyle.Render(hc.GoalID))
	fmt.Fprintf(&b, "  %s  %s\n", HealthStyle(hc.HealthStatus).Render(FormatHealth(hc.HealthStatus)),
		RenderProgressBar(hc.CompletionPercentage, 24))
	fmt.Fprintf(&b, "  %s\n", hc.Explanation)
	return b.String()
}
