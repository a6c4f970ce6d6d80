package source

import (
	"fmt"
	"time"

	"github.com/theirongolddev/nestegg/internal/model"
)

// typeAliases maps labels used by older state files onto goal types.
var typeAliases = map[string]model.GoalType{
	"emergency":    model.GoalEmergencyFund,
	"home":         model.GoalHomeDownPayment,
	"down_payment": model.GoalHomeDownPayment,
	"purchase":     model.GoalGadget,
	"other":        model.GoalCustom,
}

// GoalFromRecord normalizes one raw record. id wins over any id stored in
// the record itself; pass "" to use the record's own.
func GoalFromRecord(id string, r Record, now time.Time) model.SavingsGoal {
	if id == "" {
		id = r.String("goal_id", "id")
	}

	g := model.SavingsGoal{
		ID:                  id,
		Name:                r.String("name", "title"),
		Type:                parseType(r.String("goal_type", "type", "category")),
		Priority:            model.ParsePriority(normalizeKey(r.String("priority"))),
		TargetAmount:        r.Amount("target_amount", "target"),
		CurrentAmount:       r.Amount("current_amount", "current", "saved"),
		MonthlyContribution: r.Amount("monthly_contribution", "contribution"),
		Description:         r.String("description"),
		CreatedDate:         now,
		LastUpdated:         now,
	}
	if g.Name == "" {
		g.Name = "Unnamed Goal"
	}

	loc := now.Location()
	if t, ok := r.Time(loc, "created_date", "created_at"); ok {
		g.CreatedDate = t
	}
	if t, ok := r.Time(loc, "last_updated", "updated_at"); ok {
		g.LastUpdated = t
	}
	if t, ok := r.Time(loc, "target_date", "deadline"); ok {
		g.TargetDate = &t
	}
	return g
}

// LoadGoals normalizes records in order. Records without an id get a
// positional one ("goal-1", "goal-2", ...) so repeated loads agree; a
// duplicate id gets a positional suffix.
func LoadGoals(records []Record, now time.Time) []model.SavingsGoal {
	goals := make([]model.SavingsGoal, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		g := GoalFromRecord("", r, now)
		if g.ID == "" {
			g.ID = fmt.Sprintf("goal-%d", i+1)
		}
		if _, dup := seen[g.ID]; dup {
			g.ID = fmt.Sprintf("%s-%d", g.ID, i+1)
		}
		seen[g.ID] = struct{}{}
		goals = append(goals, g)
	}
	return goals
}

func parseType(raw string) model.GoalType {
	key := normalizeKey(raw)
	if t, ok := typeAliases[key]; ok {
		return t
	}
	return model.ParseGoalType(key)
}
