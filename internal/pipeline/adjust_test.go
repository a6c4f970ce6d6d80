package pipeline

import (
	"testing"

	"github.com/theirongolddev/nestegg/internal/model"
)

func prioritized(id string, prio model.Priority, contribution float64) model.SavingsGoal {
	g := goalAt(id, 100000, 40000, 4, 0)
	g.Priority = prio
	g.MonthlyContribution = contribution
	return g
}

func stressPass(stressed bool, score float64) Pass {
	sig := signals(50000, 30000)
	sig.Stress = model.StressSignal{IsStressed: stressed, Score: score}
	return NewPass(sig, testNow)
}

func TestAdjustForStress_NotStressed(t *testing.T) {
	adj := AdjustForStress([]model.SavingsGoal{prioritized("a", model.PriorityLow, 100)}, stressPass(false, 95))
	if adj.StressDetected {
		t.Error("StressDetected = true, want false")
	}
	if len(adj.Recommendations) != 1 || adj.Recommendations[0] != "No stress detected - maintain current goal strategy" {
		t.Errorf("Recommendations = %v", adj.Recommendations)
	}
	if len(adj.FrozenGoals) != 0 || len(adj.ReducedContributions) != 0 {
		t.Errorf("unexpected adjustments: %+v", adj)
	}
}

func TestAdjustForStress_HighFreezesLowPriority(t *testing.T) {
	goals := []model.SavingsGoal{
		prioritized("a", model.PriorityLow, 100),
		prioritized("b", model.PriorityHigh, 100),
		prioritized("c", model.PriorityLow, 0),
	}
	adj := AdjustForStress(goals, stressPass(true, 85))

	if adj.StressLevel != "high" {
		t.Errorf("StressLevel = %q, want high", adj.StressLevel)
	}
	if len(adj.FrozenGoals) != 2 || adj.FrozenGoals[0].GoalID != "a" || adj.FrozenGoals[1].GoalID != "c" {
		t.Errorf("FrozenGoals = %+v, want a and c", adj.FrozenGoals)
	}
	if len(adj.Recommendations) != 2 {
		t.Errorf("Recommendations = %v, want 2", adj.Recommendations)
	}
}

func TestAdjustForStress_ModerateHalvesContributions(t *testing.T) {
	goals := []model.SavingsGoal{
		prioritized("a", model.PriorityLow, 1000),
		prioritized("b", model.PriorityMedium, 2001),
		prioritized("c", model.PriorityHigh, 3000),
	}
	adj := AdjustForStress(goals, stressPass(true, 55))

	if len(adj.ReducedContributions) != 2 {
		t.Fatalf("ReducedContributions = %+v, want 2", adj.ReducedContributions)
	}
	r := adj.ReducedContributions[1]
	if r.GoalID != "b" || r.CurrentContribution != 2001 || r.RecommendedContribution != 1000.5 {
		t.Errorf("reduced = %+v, want b 2001 -> 1000.5", r)
	}
}

func TestAdjustForStress_LowScoreMonitors(t *testing.T) {
	adj := AdjustForStress(nil, stressPass(true, 30))
	if len(adj.Recommendations) != 1 || adj.Recommendations[0] != "Monitor stress levels and adjust goals if stress increases" {
		t.Errorf("Recommendations = %v", adj.Recommendations)
	}
}

func TestOverspendingImpact(t *testing.T) {
	sig := signals(50000, 30000)
	sig.Overspending = model.OverspendingSignal{
		IsOverspending:     true,
		Amount:             10000,
		Severity:           model.SeverityHigh,
		AffectedCategories: []string{"dining", "shopping", "travel", "games"},
	}
	p := NewPass(sig, testNow)

	goals := []model.SavingsGoal{
		prioritized("big", model.PriorityHigh, 5000),  // 60000 left: 12 -> 30 months
		prioritized("small", model.PriorityLow, 1000), // wiped out by the overspend
		prioritized("idle", model.PriorityLow, 0),     // contributes nothing
	}

	impact := OverspendingImpact(goals, p)
	if !impact.OverspendingDetected || impact.Severity != model.SeverityHigh {
		t.Fatalf("impact = %+v", impact)
	}
	if len(impact.AffectedGoals) != 2 {
		t.Fatalf("AffectedGoals = %v, want big and small", impact.AffectedGoals)
	}
	if d := impact.EstimatedDelay["big"]; d.DelayMonths != 18 || d.ImpactSeverity != model.RiskHigh {
		t.Errorf("big delay = %+v, want 18 months high", d)
	}
	if d := impact.EstimatedDelay["small"]; d.DelayMonths != HorizonSentinel {
		t.Errorf("small delay = %+v, want sentinel", d)
	}
	if impact.TotalDelayMonths() != 18+HorizonSentinel {
		t.Errorf("TotalDelayMonths = %d", impact.TotalDelayMonths())
	}

	want := []string{
		"Reduce spending in: dining, shopping, travel",
		"Reclaim ₹10,000/month to restore goal timelines",
		"Critical: Review and freeze non-essential subscriptions and expenses",
	}
	if len(impact.RecoveryActions) != len(want) {
		t.Fatalf("RecoveryActions = %v, want %v", impact.RecoveryActions, want)
	}
	for i := range want {
		if impact.RecoveryActions[i] != want[i] {
			t.Errorf("RecoveryActions[%d] = %q, want %q", i, impact.RecoveryActions[i], want[i])
		}
	}
}

func TestOverspendingImpact_DelayCappedAtHorizon(t *testing.T) {
	sig := signals(50000, 30000)
	sig.Overspending = model.OverspendingSignal{IsOverspending: true, Amount: 3333.33, Severity: model.SeverityMedium}
	p := NewPass(sig, testNow)

	// 0.3 * 3333.33 leaves a thousandth of a rupee a month.
	g := goalAt("slow", 1000000, 0, 1, 0)
	g.MonthlyContribution = 1000

	d := OverspendingImpact([]model.SavingsGoal{g}, p).EstimatedDelay["slow"]
	if d.DelayMonths != HorizonSentinel {
		t.Errorf("DelayMonths = %d, want %d", d.DelayMonths, HorizonSentinel)
	}
	if d.ImpactSeverity != model.RiskHigh {
		t.Errorf("ImpactSeverity = %v, want %v", d.ImpactSeverity, model.RiskHigh)
	}
}

func TestOverspendingImpact_None(t *testing.T) {
	impact := OverspendingImpact([]model.SavingsGoal{prioritized("a", model.PriorityLow, 100)}, NewPass(signals(1, 0), testNow))
	if impact.OverspendingDetected || len(impact.AffectedGoals) != 0 || len(impact.RecoveryActions) != 0 {
		t.Errorf("impact = %+v, want empty", impact)
	}
}
