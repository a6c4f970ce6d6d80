package pipeline

import (
	"fmt"
	"math"

	"github.com/theirongolddev/nestegg/internal/model"
)

// AssignHealth places a goal in exactly one health state and explains why.
// Completed wins over everything; a goal with no target is at risk until
// it gets one; an infeasible or very low scoring goal is unrealistic;
// otherwise schedule variance decides.
func AssignHealth(prog model.GoalProgress, feas model.FeasibilityResult) (model.GoalHealth, string) {
	if prog.CompletionPercentage >= 100 {
		return model.HealthCompleted, "Goal successfully completed!"
	}
	if prog.NeedsReview {
		return model.HealthAtRisk, "Insufficient data: set a target amount to track this goal"
	}
	if !feas.IsFeasible || feas.Score < 30 {
		return model.HealthUnrealistic, feas.Summary
	}

	switch v := prog.Variance; {
	case prog.OnTrack && v >= -5:
		if feas.Score >= 70 {
			return model.HealthOnTrack, "Goal is progressing as planned"
		}
		return model.HealthAtRisk, "On track but capacity concerns exist"
	case v >= -5:
		return model.HealthAtRisk, "Saved amount is behind the planned contributions"
	case v >= -20:
		return model.HealthAtRisk, fmt.Sprintf("Goal is %.0f%% behind schedule", math.Abs(v))
	default:
		return model.HealthOffTrack, fmt.Sprintf("Goal is significantly behind (variance: %.0f%%)", v)
	}
}
