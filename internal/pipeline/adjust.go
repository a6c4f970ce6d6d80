package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
)

// Stress score thresholds for goal adjustments.
const (
	freezeStressScore = 70
	reduceStressScore = 40
)

// AdjustForStress recommends pausing or shrinking goals while the user is
// financially stressed. Above a score of 70 low-priority goals are frozen;
// above 40 low and medium priority contributions are halved.
func AdjustForStress(goals []model.SavingsGoal, p Pass) model.StressAdjustments {
	stress := p.Signals.Stress
	adj := model.StressAdjustments{
		StressDetected:       stress.IsStressed,
		StressLevel:          stress.Level,
		Recommendations:      []string{},
		FrozenGoals:          []model.FrozenGoal{},
		ReducedContributions: []model.ReducedContribution{},
	}
	if adj.StressLevel == "" {
		adj.StressLevel = model.StressLevel(stress.Score)
	}

	if !stress.IsStressed {
		adj.Recommendations = append(adj.Recommendations, "No stress detected - maintain current goal strategy")
		return adj
	}

	switch {
	case stress.Score > freezeStressScore:
		for _, g := range goals {
			if g.Priority != model.PriorityLow {
				continue
			}
			adj.FrozenGoals = append(adj.FrozenGoals, model.FrozenGoal{
				GoalID:   g.ID,
				GoalName: g.Name,
				Reason:   "Low priority goal frozen due to high financial stress",
			})
		}
		adj.Recommendations = append(adj.Recommendations,
			"Focus only on essential goals (emergency fund, critical deadlines)",
			"Temporarily pause low-priority goals until stress reduces")

	case stress.Score > reduceStressScore:
		for _, g := range goals {
			if g.Priority == model.PriorityHigh {
				continue
			}
			adj.ReducedContributions = append(adj.ReducedContributions, model.ReducedContribution{
				GoalID:                  g.ID,
				GoalName:                g.Name,
				CurrentContribution:     money.Round(g.MonthlyContribution),
				RecommendedContribution: money.Round(g.MonthlyContribution * 0.5),
				Reason:                  "Reduced contribution due to moderate financial stress",
			})
		}
		adj.Recommendations = append(adj.Recommendations,
			"Consider reducing non-essential goal contributions by 30-50%",
			"Prioritize financial stability and stress reduction")

	default:
		adj.Recommendations = append(adj.Recommendations,
			"Monitor stress levels and adjust goals if stress increases")
	}
	return adj
}

// overspendDiversion is the share of an overspend assumed to come out of
// each goal's contribution.
const overspendDiversion = 0.3

// OverspendingImpact estimates how much longer each contributing goal takes
// if the current overspend keeps eating into contributions.
func OverspendingImpact(goals []model.SavingsGoal, p Pass) model.OverspendingImpact {
	over := p.Signals.Overspending
	impact := model.OverspendingImpact{
		OverspendingDetected: over.IsOverspending,
		Severity:             over.Severity,
		AffectedGoals:        []string{},
		EstimatedDelay:       map[string]model.GoalDelay{},
		RecoveryActions:      []string{},
	}
	if !over.IsOverspending {
		return impact
	}

	for _, g := range goals {
		if g.MonthlyContribution <= 0 {
			continue
		}
		delay := HorizonSentinel
		if reduced := g.MonthlyContribution - over.Amount*overspendDiversion; reduced > 0 {
			remaining := g.Remaining()
			delay = int(math.Min(float64(HorizonSentinel), remaining/reduced-remaining/g.MonthlyContribution))
		}
		impact.AffectedGoals = append(impact.AffectedGoals, g.ID)
		impact.EstimatedDelay[g.ID] = model.GoalDelay{
			GoalName:       g.Name,
			DelayMonths:    delay,
			ImpactSeverity: delayRisk(float64(delay)),
		}
	}

	if cats := over.AffectedCategories; len(cats) > 0 {
		if len(cats) > 3 {
			cats = cats[:3]
		}
		impact.RecoveryActions = append(impact.RecoveryActions,
			"Reduce spending in: "+strings.Join(cats, ", "))
	}
	impact.RecoveryActions = append(impact.RecoveryActions,
		fmt.Sprintf("Reclaim %s/month to restore goal timelines", p.amount(over.Amount)))
	if over.Severity == model.SeverityHigh {
		impact.RecoveryActions = append(impact.RecoveryActions,
			"Critical: Review and freeze non-essential subscriptions and expenses")
	}
	return impact
}
