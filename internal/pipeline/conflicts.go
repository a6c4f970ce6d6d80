package pipeline

import (
	"fmt"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
)

// DetectConflicts examines the whole goal set for capacity overload,
// competing high-priority goals, short-term versus long-term tension and
// individually infeasible goals. feas holds each goal's feasibility keyed by
// goal id. Conflicts are returned in detection order, unranked.
func DetectConflicts(goals []model.SavingsGoal, feas map[string]model.FeasibilityResult, p Pass) []model.Conflict {
	conflicts := []model.Conflict{}
	if len(goals) == 0 {
		return conflicts
	}
	capacity := p.Capacity

	total := totalContributions(goals)
	if total > capacity.Maximum {
		conflicts = append(conflicts, model.Conflict{
			Type:     model.ConflictCapacityOverload,
			Severity: model.SeverityHigh,
			Description: fmt.Sprintf("All goals require %s/month but maximum capacity is %s",
				p.amount(total), p.amount(capacity.Maximum)),
			Impact:         fmt.Sprintf("%s shortfall per month", p.amount(total-capacity.Maximum)),
			AffectedGoals:  goalIDs(goals),
			Recommendation: "Prioritize goals or extend timelines",
		})
	}

	var high []model.SavingsGoal
	for _, g := range goals {
		if g.Priority == model.PriorityHigh {
			high = append(high, g)
		}
	}
	if len(high) > 1 {
		if highTotal := totalContributions(high); highTotal > capacity.Aggressive {
			conflicts = append(conflicts, model.Conflict{
				Type:     model.ConflictPriority,
				Severity: model.SeverityMedium,
				Description: fmt.Sprintf("Multiple high-priority goals competing for %s/month",
					p.amount(highTotal)),
				AffectedGoals:  goalIDs(high),
				Recommendation: "Re-evaluate goal priorities or adjust contribution amounts",
			})
		}
	}

	short, long := splitByHorizon(goals, p)
	if len(short) > 0 && len(long) > 0 && totalContributions(short) > capacity.Moderate {
		shortIDs, longIDs := goalIDs(short), goalIDs(long)
		conflicts = append(conflicts, model.Conflict{
			Type:           model.ConflictTemporal,
			Severity:       model.SeverityMedium,
			Description:    "Short-term goal focus may compromise long-term financial stability",
			AffectedGoals:  append(append([]string{}, shortIDs...), longIDs...),
			ShortTermGoals: shortIDs,
			LongTermGoals:  longIDs,
			Recommendation: "Ensure emergency fund and retirement goals maintain minimum contributions",
		})
	}

	for _, g := range goals {
		f, ok := feas[g.ID]
		if !ok || f.IsFeasible {
			continue
		}
		score := f.Score
		rec := "Review goal parameters"
		if len(f.Recommendations) > 0 {
			rec = f.Recommendations[0]
		}
		conflicts = append(conflicts, model.Conflict{
			Type:             model.ConflictLifestyle,
			Severity:         model.SeverityHigh,
			Description:      fmt.Sprintf("Goal '%s' is unachievable under current spending patterns", g.Name),
			AffectedGoals:    []string{g.ID},
			FeasibilityScore: &score,
			Recommendation:   rec,
		})
	}

	return conflicts
}

// splitByHorizon separates goals due within the short-term horizon from the
// rest. Goals without a deadline are long-term.
func splitByHorizon(goals []model.SavingsGoal, p Pass) (short, long []model.SavingsGoal) {
	for _, g := range goals {
		if g.HasDeadline() && monthsBetween(p.Now, *g.TargetDate) <= p.Tuning.ShortTermMonths {
			short = append(short, g)
		} else {
			long = append(long, g)
		}
	}
	return short, long
}

func totalContributions(goals []model.SavingsGoal) float64 {
	amounts := make([]float64, len(goals))
	for i, g := range goals {
		amounts[i] = g.MonthlyContribution
	}
	return money.Add(amounts...)
}

func goalIDs(goals []model.SavingsGoal) []string {
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return ids
}
