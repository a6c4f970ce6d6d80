// Package model defines domain types for nestegg goals, signals and reports.
package model

import (
	"time"

	"github.com/google/uuid"
)

// GoalType is the category of a savings goal.
type GoalType string

const (
	GoalEmergencyFund   GoalType = "emergency_fund"
	GoalVacation        GoalType = "vacation"
	GoalGadget          GoalType = "gadget"
	GoalHomeDownPayment GoalType = "home_down_payment"
	GoalRetirement      GoalType = "retirement"
	GoalCustom          GoalType = "custom"
)

// GoalTypes lists every known goal type in display order.
var GoalTypes = []GoalType{
	GoalEmergencyFund, GoalVacation, GoalGadget, GoalHomeDownPayment, GoalRetirement, GoalCustom,
}

// ParseGoalType maps a raw string onto a GoalType. Unknown values become custom.
func ParseGoalType(s string) GoalType {
	for _, t := range GoalTypes {
		if string(t) == s {
			return t
		}
	}
	return GoalCustom
}

// Priority is the user-assigned importance of a goal.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps a raw string onto a Priority. Unknown values become medium.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityHigh:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// GoalHealth is the per-pass health state of a goal.
type GoalHealth string

const (
	HealthOnTrack     GoalHealth = "on_track"
	HealthAtRisk      GoalHealth = "at_risk"
	HealthOffTrack    GoalHealth = "off_track"
	HealthUnrealistic GoalHealth = "unrealistic"
	HealthCompleted   GoalHealth = "completed"
)

// SavingsGoal is one user-defined savings target.
type SavingsGoal struct {
	ID                  string     `json:"goal_id"`
	Name                string     `json:"name"`
	Type                GoalType   `json:"goal_type"`
	Priority            Priority   `json:"priority"`
	TargetAmount        float64    `json:"target_amount"`
	CurrentAmount       float64    `json:"current_amount"`
	TargetDate          *time.Time `json:"target_date"`
	MonthlyContribution float64    `json:"monthly_contribution"`
	CreatedDate         time.Time  `json:"created_date"`
	LastUpdated         time.Time  `json:"last_updated"`
	Description         string     `json:"description,omitempty"`
}

// NewGoal creates a goal with a fresh id, nothing saved yet and default
// type and priority.
func NewGoal(name string, target float64, now time.Time) SavingsGoal {
	return SavingsGoal{
		ID:           uuid.New().String(),
		Name:         name,
		Type:         GoalCustom,
		Priority:     PriorityMedium,
		TargetAmount: target,
		CreatedDate:  now,
		LastUpdated:  now,
	}
}

// HasDeadline reports whether the goal carries a target date.
func (g SavingsGoal) HasDeadline() bool {
	return g.TargetDate != nil
}

// Remaining returns the amount still to save, never negative.
func (g SavingsGoal) Remaining() float64 {
	if r := g.TargetAmount - g.CurrentAmount; r > 0 {
		return r
	}
	return 0
}

// Clone returns a deep copy that shares no pointers with g.
func (g SavingsGoal) Clone() SavingsGoal {
	c := g
	if g.TargetDate != nil {
		td := *g.TargetDate
		c.TargetDate = &td
	}
	return c
}

// CloneGoals deep-copies a goal slice.
func CloneGoals(goals []SavingsGoal) []SavingsGoal {
	out := make([]SavingsGoal, len(goals))
	for i, g := range goals {
		out[i] = g.Clone()
	}
	return out
}
