package pipeline

import (
	"fmt"
	"math"
	"slices"

	"github.com/theirongolddev/nestegg/internal/model"
)

// Insight types.
const (
	InsightNoGoals          = "no_goals"
	InsightNoCapacity       = "no_capacity"
	InsightUnderutilized    = "underutilized_capacity"
	InsightOverutilized     = "overutilized_capacity"
	InsightBehindSchedule   = "behind_schedule"
	InsightNearCompletion   = "near_completion"
	InsightUnrealisticGoal  = "unrealistic_goal"
	InsightOverspendingHurt = "overspending_impact"
	InsightStressWarning    = "stress_warning"
	InsightGoalConflict     = "goal_conflict"
)

// InsightInputs is everything the insight synthesizer reads. Analyses are
// keyed by goal id; Goals fixes the order per-goal insights appear in.
type InsightInputs struct {
	Goals        []model.SavingsGoal
	Analyses     map[string]model.GoalAnalysis
	Conflicts    []model.Conflict
	Stress       model.StressAdjustments
	Overspending model.OverspendingImpact
}

// GenerateInsights turns a finished analysis into actionable messages,
// stable-sorted by priority so ties keep generation order.
func GenerateInsights(in InsightInputs, p Pass) []model.Insight {
	if len(in.Goals) == 0 {
		return []model.Insight{{
			Type:     InsightNoGoals,
			Priority: model.InsightHigh,
			Title:    "No Savings Goals Set",
			Message:  "Start building your financial future by creating your first savings goal",
			Action:   "Create a goal",
		}}
	}

	insights := []model.Insight{}
	insights = append(insights, capacityInsights(in.Goals, p)...)

	for _, g := range in.Goals {
		a, ok := in.Analyses[g.ID]
		if !ok {
			continue
		}
		insights = append(insights, goalInsights(g, a, p)...)
	}

	if over := in.Overspending; over.OverspendingDetected {
		if total := over.TotalDelayMonths(); total > 0 {
			action := "Reduce discretionary spending"
			if len(over.RecoveryActions) > 0 {
				action = over.RecoveryActions[0]
			}
			insights = append(insights, model.Insight{
				Type:     InsightOverspendingHurt,
				Priority: model.InsightHigh,
				Title:    "Overspending Delaying Goals",
				Message:  fmt.Sprintf("Current overspending could delay goals by %d months total", total),
				Action:   action,
			})
		}
	}

	if s := in.Stress; s.StressDetected && len(s.Recommendations) > 0 {
		insights = append(insights, model.Insight{
			Type:     InsightStressWarning,
			Priority: model.InsightHigh,
			Title:    "Financial Stress Detected",
			Message:  s.Recommendations[0],
			Action:   "Consider pausing or reducing low-priority goals temporarily",
		})
	}

	if ins, ok := conflictInsight(in.Conflicts); ok {
		insights = append(insights, ins)
	}

	slices.SortStableFunc(insights, func(a, b model.Insight) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return insights
}

func capacityInsights(goals []model.SavingsGoal, p Pass) []model.Insight {
	total := totalContributions(goals)
	maximum := p.Capacity.Maximum

	if maximum <= 0 && total == 0 {
		return []model.Insight{{
			Type:     InsightNoCapacity,
			Priority: model.InsightHigh,
			Title:    "No Room to Save",
			Message:  "Your expenses take up your entire income, leaving nothing for goals",
			Action:   "Cut recurring expenses or raise income before committing to goals",
		}}
	}

	used := utilization(total, maximum)
	switch {
	case used < 50:
		return []model.Insight{{
			Type:     InsightUnderutilized,
			Priority: model.InsightMedium,
			Title:    "Opportunity to Save More",
			Message: fmt.Sprintf("You're using only %.0f%% of your savings capacity (%s/month available)",
				used, p.amount(maximum-total)),
			Action: "Consider increasing goal contributions or adding new goals",
		}}
	case used > 90:
		return []model.Insight{{
			Type:     InsightOverutilized,
			Priority: model.InsightHigh,
			Title:    "Savings Capacity Strained",
			Message:  fmt.Sprintf("Your goals require %.0f%% of available savings capacity", used),
			Action:   "Review goal priorities or extend timelines",
		}}
	}
	return nil
}

func goalInsights(g model.SavingsGoal, a model.GoalAnalysis, p Pass) []model.Insight {
	var out []model.Insight
	prog, feas := a.Progress, a.Feasibility

	switch {
	case prog.Variance < -20:
		months := 12
		if prog.MonthsRemaining != nil && *prog.MonthsRemaining > 0 {
			months = *prog.MonthsRemaining
		}
		behind := math.Abs(prog.Variance)
		extra := g.TargetAmount * behind / 100 / float64(months)
		out = append(out, model.Insight{
			Type:     InsightBehindSchedule,
			Priority: model.InsightHigh,
			GoalID:   g.ID,
			Title:    g.Name + ": Behind Schedule",
			Message:  fmt.Sprintf("You need %s more per month to meet your target date", p.amount(extra)),
			Action:   fmt.Sprintf("Increase monthly contribution or extend deadline by %.0f months", behind/10),
		})
	case prog.CompletionPercentage >= 80 && prog.CompletionPercentage < 100:
		out = append(out, model.Insight{
			Type:     InsightNearCompletion,
			Priority: model.InsightLow,
			GoalID:   g.ID,
			Title:    g.Name + ": Almost There!",
			Message:  fmt.Sprintf("Only %s remaining to reach your goal", p.amount(g.Remaining())),
			Action:   "Stay focused - you're in the home stretch",
		})
	}

	if !feas.IsFeasible {
		action := "Review goal parameters"
		if len(feas.Recommendations) > 0 {
			action = feas.Recommendations[0]
		}
		out = append(out, model.Insight{
			Type:     InsightUnrealisticGoal,
			Priority: model.InsightCritical,
			GoalID:   g.ID,
			Title:    g.Name + ": Needs Adjustment",
			Message:  feas.Summary,
			Action:   action,
		})
	}
	return out
}

// conflictInsight summarises the first high-severity conflict, or the first
// conflict of any severity when none is high.
func conflictInsight(conflicts []model.Conflict) (model.Insight, bool) {
	if len(conflicts) == 0 {
		return model.Insight{}, false
	}
	for _, c := range conflicts {
		if c.Severity == model.SeverityHigh {
			return model.Insight{
				Type:     InsightGoalConflict,
				Priority: model.InsightCritical,
				Title:    "Goal Conflicts Detected",
				Message:  c.Description,
				Action:   c.Recommendation,
			}, true
		}
	}
	c := conflicts[0]
	return model.Insight{
		Type:     InsightGoalConflict,
		Priority: model.InsightMedium,
		Title:    "Goals Competing for Savings",
		Message:  c.Description,
		Action:   c.Recommendation,
	}, true
}
