package pipeline

import (
	"math"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
)

// CalculateProgress computes completion, elapsed time and schedule variance
// for one goal. A zero target never divides: completion is 0 and the goal
// is flagged for review.
func CalculateProgress(g model.SavingsGoal, p Pass) model.GoalProgress {
	prog := model.GoalProgress{GoalID: g.ID}

	var completion float64
	if g.TargetAmount > 0 {
		completion = math.Min(100, g.CurrentAmount/g.TargetAmount*100)
	} else {
		prog.NeedsReview = true
	}

	elapsed := max(1, monthsBetween(g.CreatedDate, p.Now))

	var timeElapsed, expected float64
	if g.HasDeadline() {
		total := max(1, monthsBetween(g.CreatedDate, *g.TargetDate))
		remaining := max(0, monthsBetween(p.Now, *g.TargetDate))
		prog.MonthsRemaining = &remaining
		timeElapsed = math.Min(100, float64(elapsed)/float64(total)*100)
		expected = timeElapsed
	}

	variance := completion - expected

	onTrack := true
	if g.HasDeadline() {
		onTrack = variance >= p.Tuning.DeadlineVarianceTolerance
	} else {
		planned := g.MonthlyContribution * float64(elapsed)
		onTrack = g.CurrentAmount >= planned*p.Tuning.PlanTolerance
	}

	prog.CompletionPercentage = money.Round(completion)
	prog.TimeElapsedPercent = money.Round(timeElapsed)
	prog.ExpectedProgress = money.Round(expected)
	prog.ActualProgress = money.Round(completion)
	prog.Variance = money.Round(variance)
	prog.OnTrack = onTrack
	prog.MonthsElapsed = elapsed
	return prog
}
