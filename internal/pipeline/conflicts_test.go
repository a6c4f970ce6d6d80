package pipeline

import (
	"testing"

	"github.com/theirongolddev/nestegg/internal/model"
)

func conflictTypes(cs []model.Conflict) map[model.ConflictType]model.Conflict {
	out := make(map[model.ConflictType]model.Conflict, len(cs))
	for _, c := range cs {
		if _, seen := out[c.Type]; !seen {
			out[c.Type] = c
		}
	}
	return out
}

func TestDetectConflicts_Empty(t *testing.T) {
	cs := DetectConflicts(nil, nil, NewPass(model.Signals{}, testNow))
	if cs == nil || len(cs) != 0 {
		t.Fatalf("DetectConflicts(nil) = %#v, want empty non-nil slice", cs)
	}
}

func TestDetectConflicts_PriorityClash(t *testing.T) {
	a := goalAt("a", 100000, 0, 1, 0)
	b := goalAt("b", 100000, 0, 1, 0)
	a.Priority, b.Priority = model.PriorityHigh, model.PriorityHigh
	a.MonthlyContribution, b.MonthlyContribution = 3000, 3000

	cs := DetectConflicts([]model.SavingsGoal{a, b}, nil, capacityPass(2000, 4000, 10000))
	byType := conflictTypes(cs)

	c, ok := byType[model.ConflictPriority]
	if !ok {
		t.Fatalf("no priority conflict in %+v", cs)
	}
	if c.Severity != model.SeverityMedium {
		t.Errorf("Severity = %s, want medium", c.Severity)
	}
	if len(c.AffectedGoals) != 2 || c.AffectedGoals[0] != "a" || c.AffectedGoals[1] != "b" {
		t.Errorf("AffectedGoals = %v, want [a b]", c.AffectedGoals)
	}
	if _, ok := byType[model.ConflictCapacityOverload]; ok {
		t.Error("unexpected capacity overload with 6000 <= 10000")
	}
}

func TestDetectConflicts_SingleHighPriorityNoClash(t *testing.T) {
	a := goalAt("a", 100000, 0, 1, 0)
	a.Priority = model.PriorityHigh
	a.MonthlyContribution = 9000
	cs := DetectConflicts([]model.SavingsGoal{a}, nil, capacityPass(2000, 4000, 10000))
	if _, ok := conflictTypes(cs)[model.ConflictPriority]; ok {
		t.Errorf("priority conflict with one high goal: %+v", cs)
	}
}

func TestDetectConflicts_CapacityOverload(t *testing.T) {
	goals := []model.SavingsGoal{goalAt("a", 1000, 0, 1, 0), goalAt("b", 1000, 0, 1, 0)}
	goals[0].MonthlyContribution = 2500.50
	goals[1].MonthlyContribution = 2500.50

	cs := DetectConflicts(goals, nil, capacityPass(2000, 3500, 5000))
	c, ok := conflictTypes(cs)[model.ConflictCapacityOverload]
	if !ok {
		t.Fatalf("no capacity overload in %+v", cs)
	}
	if c.Severity != model.SeverityHigh {
		t.Errorf("Severity = %s, want high", c.Severity)
	}
	if c.Impact != "₹1 shortfall per month" {
		t.Errorf("Impact = %q", c.Impact)
	}
	if len(c.AffectedGoals) != 2 {
		t.Errorf("AffectedGoals = %v, want both goals", c.AffectedGoals)
	}
}

func TestDetectConflicts_Temporal(t *testing.T) {
	// Due in 6 and 30 months from now; plus one open-ended goal.
	short := goalAt("trip", 50000, 0, 0, 6)
	long := goalAt("home", 900000, 0, 0, 30)
	open := goalAt("retire", 5000000, 0, 0, 0)
	short.MonthlyContribution = 5000

	cs := DetectConflicts([]model.SavingsGoal{short, long, open}, nil, capacityPass(4000, 7000, 10000))
	c, ok := conflictTypes(cs)[model.ConflictTemporal]
	if !ok {
		t.Fatalf("no temporal conflict in %+v", cs)
	}
	if len(c.ShortTermGoals) != 1 || c.ShortTermGoals[0] != "trip" {
		t.Errorf("ShortTermGoals = %v, want [trip]", c.ShortTermGoals)
	}
	if len(c.LongTermGoals) != 2 || c.LongTermGoals[0] != "home" || c.LongTermGoals[1] != "retire" {
		t.Errorf("LongTermGoals = %v, want [home retire]", c.LongTermGoals)
	}
	if len(c.AffectedGoals) != 3 {
		t.Errorf("AffectedGoals = %v, want all three", c.AffectedGoals)
	}

	// Within moderate capacity there is no tension.
	short.MonthlyContribution = 3000
	cs = DetectConflicts([]model.SavingsGoal{short, long}, nil, capacityPass(4000, 7000, 10000))
	if _, ok := conflictTypes(cs)[model.ConflictTemporal]; ok {
		t.Errorf("temporal conflict within moderate capacity: %+v", cs)
	}
}

func TestDetectConflicts_Lifestyle(t *testing.T) {
	goals := []model.SavingsGoal{goalAt("ok", 1000, 0, 1, 0), goalAt("bad", 1000, 0, 1, 0)}
	feas := map[string]model.FeasibilityResult{
		"ok":  {IsFeasible: true, Score: 90},
		"bad": {IsFeasible: false, Score: 20, Recommendations: []string{"Push the deadline back"}},
	}

	cs := DetectConflicts(goals, feas, capacityPass(4000, 7000, 10000))
	if len(cs) != 1 {
		t.Fatalf("len(conflicts) = %d, want 1: %+v", len(cs), cs)
	}
	c := cs[0]
	if c.Type != model.ConflictLifestyle || c.AffectedGoals[0] != "bad" {
		t.Errorf("conflict = %+v", c)
	}
	if c.FeasibilityScore == nil || *c.FeasibilityScore != 20 {
		t.Errorf("FeasibilityScore = %v, want 20", c.FeasibilityScore)
	}
	if c.Recommendation != "Push the deadline back" {
		t.Errorf("Recommendation = %q", c.Recommendation)
	}
}
