package pipeline

import (
	"fmt"
	"math"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
)

// Feasibility summary bands.
const (
	summaryHighlyFeasible = "Highly feasible - goal is well within reach"
	summaryDiscipline     = "Feasible with discipline - stay focused on contributions"
	summaryChallenging    = "Challenging but possible - requires optimization"
	summaryUnrealistic    = "Unrealistic under current conditions - adjustment needed"
)

// RequiredMonthly is what a goal needs per month: the remaining amount
// spread over the months left before its deadline, the whole remaining
// amount when the deadline has arrived, or the planned contribution when
// there is no deadline.
func RequiredMonthly(g model.SavingsGoal, prog model.GoalProgress) float64 {
	if !g.HasDeadline() || prog.MonthsRemaining == nil {
		return g.MonthlyContribution
	}
	if left := *prog.MonthsRemaining; left > 0 {
		return g.Remaining() / float64(left)
	}
	return g.Remaining()
}

// EvaluateFeasibility scores how achievable a goal is within the pass's
// capacity. Reasons and recommendations appear in the order the checks fire.
func EvaluateFeasibility(g model.SavingsGoal, prog model.GoalProgress, p Pass) model.FeasibilityResult {
	capacity := p.Capacity
	remaining := g.Remaining()
	required := RequiredMonthly(g, prog)

	res := model.FeasibilityResult{
		IsFeasible:        true,
		AvailableCapacity: capacity.Moderate,
		Reasons:           []string{},
		Recommendations:   []string{},
	}
	score := 100

	if prog.NeedsReview {
		res.NeedsReview = true
		res.Reasons = append(res.Reasons, "Target amount is zero, so progress cannot be measured")
		res.Recommendations = append(res.Recommendations, "Set a target amount for this goal")
	}

	switch {
	case required > capacity.Maximum:
		res.IsFeasible = false
		score -= 50
		months := 12
		if prog.MonthsRemaining != nil && *prog.MonthsRemaining > 0 {
			months = *prog.MonthsRemaining
		}
		shortfall := (required - capacity.Maximum) * float64(months)
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"Required monthly savings (%s) exceeds maximum capacity (%s)",
			p.amount(required), p.amount(capacity.Maximum)))
		res.Recommendations = append(res.Recommendations, fmt.Sprintf(
			"Consider extending target date or reducing goal amount by %s", p.amount(shortfall)))
	case required > capacity.Aggressive:
		score -= 20
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"Goal requires aggressive savings (%s/month)", p.amount(required)))
		res.Recommendations = append(res.Recommendations,
			"This goal is achievable but requires significant financial discipline")
	case required > capacity.Moderate:
		score -= 10
		res.Reasons = append(res.Reasons, "Goal requires above-moderate savings commitment")
	}

	if p.stressed() {
		score -= 15
		res.Reasons = append(res.Reasons, "Current financial stress may impact savings ability")
		res.Recommendations = append(res.Recommendations,
			"Focus on stress reduction and expense optimization first")
	}

	if p.overspending() {
		score -= 15
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"Active overspending (%s severity) threatens goal progress", p.Signals.Overspending.Severity))
		res.Recommendations = append(res.Recommendations,
			"Address overspending in discretionary categories before increasing goal contributions")
	}

	if prog.Variance < -20 {
		score -= 20
		res.Reasons = append(res.Reasons, fmt.Sprintf("Goal is %.0f%% behind schedule", math.Abs(prog.Variance)))
		res.Recommendations = append(res.Recommendations,
			"Review and adjust monthly contribution or extend timeline")
	}

	if g.HasDeadline() && prog.MonthsRemaining != nil {
		left := *prog.MonthsRemaining
		if left < 3 && remaining > capacity.Maximum*3 {
			res.IsFeasible = false
			score -= 30
			res.Reasons = append(res.Reasons, "Insufficient time remaining to reach goal")
			res.Recommendations = append(res.Recommendations, extendDeadlineAdvice(remaining, left, capacity.Moderate))
		}
	}

	res.Score = min(100, max(0, score))
	res.Summary = feasibilitySummary(res.Score)
	res.RequiredMonthly = money.Round(required)
	res.CapacityUtilization = money.Round(utilization(required, capacity.Maximum))
	return res
}

func extendDeadlineAdvice(remaining float64, monthsLeft int, moderate float64) string {
	if moderate <= 0 {
		return "Extend the deadline and free up savings capacity before continuing"
	}
	extra := max(1, int(remaining/moderate)-monthsLeft)
	return fmt.Sprintf("Extend deadline by at least %d months", extra)
}

func feasibilitySummary(score int) string {
	switch {
	case score >= 80:
		return summaryHighlyFeasible
	case score >= 60:
		return summaryDiscipline
	case score >= 40:
		return summaryChallenging
	default:
		return summaryUnrealistic
	}
}
