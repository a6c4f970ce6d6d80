package pipeline

import (
	"errors"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
)

// ErrGoalNotFound is returned when a goal id is not in the snapshot.
var ErrGoalNotFound = errors.New("goal not found")

// AnalyzeGoal runs the per-goal stages: progress, feasibility, health,
// prediction and delay.
func AnalyzeGoal(g model.SavingsGoal, p Pass) model.GoalAnalysis {
	prog := CalculateProgress(g, p)
	feas := EvaluateFeasibility(g, prog, p)
	health, why := AssignHealth(prog, feas)
	pred := PredictCompletion(g, prog, p)

	return model.GoalAnalysis{
		GoalInfo:          g,
		Progress:          prog,
		Feasibility:       feas,
		HealthStatus:      health,
		HealthExplanation: why,
		Prediction:        pred,
		DelayEstimate:     EstimateDelay(g, prog, pred, feas, p),
	}
}

// Analyze produces the full report for one snapshot. goals is deep-copied
// first and never modified. Goals are analysed in slice order; when ids
// repeat, the first goal with that id wins.
func Analyze(goals []model.SavingsGoal, p Pass) model.Report {
	goals = uniqueGoals(model.CloneGoals(goals))

	report := model.Report{
		Goals:           make(map[string]model.GoalAnalysis, len(goals)),
		GoalOrder:       make([]string, 0, len(goals)),
		Predictions:     make(map[string]model.Prediction, len(goals)),
		SavingsCapacity: p.Capacity,
		ReportGenerated: p.Now,
		EngineVersion:   EngineVersion,
	}

	feas := make(map[string]model.FeasibilityResult, len(goals))
	var dist model.HealthDistribution
	for _, g := range goals {
		a := AnalyzeGoal(g, p)
		report.Goals[g.ID] = a
		report.GoalOrder = append(report.GoalOrder, g.ID)
		report.Predictions[g.ID] = a.Prediction
		feas[g.ID] = a.Feasibility
		dist.Add(a.HealthStatus)
	}

	report.Conflicts = DetectConflicts(goals, feas, p)
	report.StressAdjustments = AdjustForStress(goals, p)
	report.OverspendingImpact = OverspendingImpact(goals, p)
	report.Insights = GenerateInsights(InsightInputs{
		Goals:        goals,
		Analyses:     report.Goals,
		Conflicts:    report.Conflicts,
		Stress:       report.StressAdjustments,
		Overspending: report.OverspendingImpact,
	}, p)

	report.Summary = summarize(goals, dist)
	report.GoalHealth = dist
	return report
}

// CheckGoal answers the quick health question for one goal.
func CheckGoal(goals []model.SavingsGoal, id string, p Pass) (model.HealthCheck, error) {
	for _, g := range goals {
		if g.ID != id {
			continue
		}
		g = g.Clone()
		prog := CalculateProgress(g, p)
		health, why := AssignHealth(prog, EvaluateFeasibility(g, prog, p))
		return model.HealthCheck{
			GoalID:               g.ID,
			GoalName:             g.Name,
			HealthStatus:         health,
			Explanation:          why,
			CompletionPercentage: prog.CompletionPercentage,
			OnTrack:              prog.OnTrack,
		}, nil
	}
	return model.HealthCheck{}, ErrGoalNotFound
}

func summarize(goals []model.SavingsGoal, dist model.HealthDistribution) model.Summary {
	targets := make([]float64, len(goals))
	saved := make([]float64, len(goals))
	remaining := make([]float64, len(goals))
	for i, g := range goals {
		targets[i] = g.TargetAmount
		saved[i] = g.CurrentAmount
		remaining[i] = g.Remaining()
	}
	totalTarget, totalSaved := money.Add(targets...), money.Add(saved...)

	var overall float64
	if totalTarget > 0 {
		overall = totalSaved / totalTarget * 100
	}

	return model.Summary{
		TotalGoals:            len(goals),
		TotalTargetAmount:     money.Round(totalTarget),
		TotalSaved:            money.Round(totalSaved),
		TotalRemaining:        money.Round(money.Add(remaining...)),
		OverallProgress:       money.Round(overall),
		HealthDistribution:    dist,
		GoalsOnTrack:          dist.OnTrack + dist.Completed,
		GoalsNeedingAttention: dist.AtRisk + dist.OffTrack + dist.Unrealistic,
	}
}

func uniqueGoals(goals []model.SavingsGoal) []model.SavingsGoal {
	seen := make(map[string]struct{}, len(goals))
	out := goals[:0]
	for _, g := range goals {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	return out
}
