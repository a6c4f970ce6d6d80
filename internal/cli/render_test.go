package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nestegg/internal/model"
)

func TestRenderTable_AlignsByDisplayWidth(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Goal", "Saved"},
		Rows: [][]string{
			{"Bike", "₹36,000"},
			{"---"},
			{"Emergency Fund", "₹1,000"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != width {
			t.Errorf("line %d width = %d, want %d: %q", i, w, width, l)
		}
	}
	if !strings.Contains(out, "  ₹1,000 │") {
		t.Errorf("numeric column not right-aligned:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	got := RenderProgressBar(50, 10)
	if !strings.Contains(got, "█████░░░░░") || !strings.HasSuffix(got, " 50.0%") {
		t.Errorf("RenderProgressBar(50) = %q", got)
	}
	if got := RenderProgressBar(150, 4); !strings.Contains(got, "████") {
		t.Errorf("RenderProgressBar(150) = %q, want a full bar", got)
	}
	if got := RenderProgressBar(10, 0); got != "" {
		t.Errorf("RenderProgressBar(width 0) = %q", got)
	}
}

func sampleReport() model.Report {
	due := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	months := 8
	return model.Report{
		Summary: model.Summary{
			TotalGoals:         1,
			TotalTargetAmount:  100000,
			TotalSaved:         40000,
			TotalRemaining:     60000,
			OverallProgress:    40,
			HealthDistribution: model.HealthDistribution{AtRisk: 1},
		},
		GoalOrder: []string{"car"},
		Goals: map[string]model.GoalAnalysis{
			"car": {
				GoalInfo:     model.SavingsGoal{ID: "car", Name: "Car", TargetAmount: 100000, CurrentAmount: 40000, TargetDate: &due},
				Progress:     model.GoalProgress{CompletionPercentage: 40, Variance: -8, MonthsRemaining: &months},
				Feasibility:  model.FeasibilityResult{Score: 70, RequiredMonthly: 7500},
				HealthStatus: model.HealthAtRisk,
				Prediction:   model.Prediction{MonthsToCompletion: 12},
			},
		},
		SavingsCapacity: model.CapacityEstimate{Conservative: 4000, Moderate: 8000, Aggressive: 14000, Maximum: 20000},
		Conflicts: []model.Conflict{{
			Type:           model.ConflictCapacityOverload,
			Severity:       model.SeverityHigh,
			Description:    "Too much committed",
			Recommendation: "Trim goals",
		}},
		Insights: []model.Insight{{
			Type:     "behind_schedule",
			Priority: model.InsightHigh,
			Title:    "Car is behind schedule",
			Message:  "You need more per month",
			Action:   "Increase contributions",
		}},
		StressAdjustments: model.StressAdjustments{
			StressDetected:  true,
			StressLevel:     "moderate",
			Recommendations: []string{"Reduce contributions"},
		},
	}
}

func TestRenderReport(t *testing.T) {
	out := RenderReport(sampleReport())
	for _, want := range []string{
		"SAVINGS GOALS",
		"Summary",
		"₹100,000",
		"Monthly Savings Capacity",
		"Car",
		"at risk",
		"-8.0pp",
		"2027-06-01",
		"Too much committed",
		"Stress Adjustments (moderate)",
		"Car is behind schedule",
		"-> Increase contributions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(out, "Overspending Impact") {
		t.Error("overspending section rendered without overspending")
	}
}

func TestRenderReport_NoGoals(t *testing.T) {
	out := RenderReport(model.Report{Insights: []model.Insight{{Priority: model.InsightHigh, Title: "No goals yet"}}})
	if !strings.Contains(out, "No goals yet") || strings.Contains(out, "Summary") {
		t.Errorf("empty report =\n%s", out)
	}
}

func TestRenderAdjustments_Overspending(t *testing.T) {
	out := RenderAdjustments(model.StressAdjustments{}, model.OverspendingImpact{
		OverspendingDetected: true,
		Severity:             model.SeverityHigh,
		AffectedGoals:        []string{"a", "b"},
		EstimatedDelay: map[string]model.GoalDelay{
			"a": {GoalName: "Trip", DelayMonths: 4, ImpactSeverity: model.RiskMedium},
			"b": {GoalName: "Phone", DelayMonths: 999, ImpactSeverity: model.RiskHigh},
		},
		RecoveryActions: []string{"Reduce spending in: dining"},
	})
	for _, want := range []string{"Overspending Impact (high)", "Trip +4 months (medium)", "Phone stalled (high)", "- Reduce spending in: dining"} {
		if !strings.Contains(out, want) {
			t.Errorf("adjustments missing %q:\n%s", want, out)
		}
	}
	if got := RenderAdjustments(model.StressAdjustments{}, model.OverspendingImpact{}); got != "" {
		t.Errorf("no signals rendered %q", got)
	}
}

func TestRenderHealthCheck(t *testing.T) {
	out := RenderHealthCheck(model.HealthCheck{
		GoalID:               "car",
		GoalName:             "Car",
		HealthStatus:         model.HealthOnTrack,
		Explanation:          "Goal is progressing well",
		CompletionPercentage: 62.5,
	})
	for _, want := range []string{"Car", "car", "on track", "62.5%", "Goal is progressing well"} {
		if !strings.Contains(out, want) {
			t.Errorf("health check missing %q:\n%s", want, out)
		}
	}
}
