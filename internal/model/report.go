package model

import "time"

// GoalProgress holds the elapsed-time and completion metrics of one goal.
type GoalProgress struct {
	GoalID               string  `json:"goal_id"`
	CompletionPercentage float64 `json:"completion_percentage"`
	TimeElapsedPercent   float64 `json:"time_elapsed_percentage"`
	ExpectedProgress     float64 `json:"expected_progress"`
	ActualProgress       float64 `json:"actual_progress"`
	Variance             float64 `json:"variance"`
	OnTrack              bool    `json:"on_track"`
	MonthsElapsed        int     `json:"months_elapsed"`
	MonthsRemaining      *int    `json:"months_remaining"`
	NeedsReview          bool    `json:"needs_review,omitempty"`
}

// CapacityEstimate is the monthly savings capacity band.
type CapacityEstimate struct {
	BaseCapacity       float64 `json:"base_capacity"`
	Conservative       float64 `json:"conservative"`
	Moderate           float64 `json:"moderate"`
	Aggressive         float64 `json:"aggressive"`
	Maximum            float64 `json:"maximum"`
	StressMultiplier   float64 `json:"stress_multiplier"`
	StressAdjusted     bool    `json:"stress_adjusted"`
	OverspendingImpact bool    `json:"overspending_impact"`
}

// FeasibilityResult explains whether a goal fits within capacity.
type FeasibilityResult struct {
	IsFeasible          bool     `json:"is_feasible"`
	Score               int      `json:"feasibility_score"`
	RequiredMonthly     float64  `json:"required_monthly"`
	AvailableCapacity   float64  `json:"available_capacity"`
	CapacityUtilization float64  `json:"capacity_utilization"`
	Summary             string   `json:"summary"`
	NeedsReview         bool     `json:"needs_review,omitempty"`
	Reasons             []string `json:"reasons"`
	Recommendations     []string `json:"recommendations"`
}

// ConflictType names a structural tension between goals.
type ConflictType string

const (
	ConflictCapacityOverload ConflictType = "capacity_overload"
	ConflictPriority         ConflictType = "priority_conflict"
	ConflictTemporal         ConflictType = "temporal_conflict"
	ConflictLifestyle        ConflictType = "lifestyle_conflict"
)

// Conflict is one detected tension in the goal set.
type Conflict struct {
	Type             ConflictType `json:"type"`
	Severity         Severity     `json:"severity"`
	Description      string       `json:"description"`
	Impact           string       `json:"impact,omitempty"`
	AffectedGoals    []string     `json:"affected_goals"`
	ShortTermGoals   []string     `json:"short_term_goals,omitempty"`
	LongTermGoals    []string     `json:"long_term_goals,omitempty"`
	FeasibilityScore *int         `json:"feasibility_score,omitempty"`
	Recommendation   string       `json:"recommendation"`
}

// Prediction projects when a goal completes and how likely that is.
type Prediction struct {
	GoalID                  string     `json:"goal_id"`
	GoalName                string     `json:"goal_name"`
	PredictedCompletionDate *time.Time `json:"predicted_completion_date"`
	MonthsToCompletion      float64    `json:"months_to_completion"`
	SuccessProbability      float64    `json:"success_probability"`
	PredictedMonthlyRate    float64    `json:"predicted_monthly_rate"`
	TargetMonthlyRate       float64    `json:"target_monthly_rate"`
	Confidence              string     `json:"confidence"`
}

// RiskLevel buckets a predicted delay.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// DelayEstimate describes how late a goal is expected to finish.
type DelayEstimate struct {
	GoalID       string    `json:"goal_id"`
	HasDelay     bool      `json:"has_delay"`
	DelayMonths  float64   `json:"delay_months"`
	DelayReasons []string  `json:"delay_reasons"`
	RiskLevel    RiskLevel `json:"risk_level"`
}

// InsightPriority orders insights.
type InsightPriority string

const (
	InsightCritical InsightPriority = "critical"
	InsightHigh     InsightPriority = "high"
	InsightMedium   InsightPriority = "medium"
	InsightLow      InsightPriority = "low"
)

// Rank returns 0 for critical through 3 for low; unknown values sort last.
func (p InsightPriority) Rank() int {
	switch p {
	case InsightCritical:
		return 0
	case InsightHigh:
		return 1
	case InsightMedium:
		return 2
	case InsightLow:
		return 3
	default:
		return 4
	}
}

// Insight is one actionable message for the user.
type Insight struct {
	Type     string          `json:"type"`
	Priority InsightPriority `json:"priority"`
	GoalID   string          `json:"goal_id,omitempty"`
	Title    string          `json:"title"`
	Message  string          `json:"message"`
	Action   string          `json:"action"`
}

// FrozenGoal is a goal recommended for a pause under high stress.
type FrozenGoal struct {
	GoalID   string `json:"goal_id"`
	GoalName string `json:"goal_name"`
	Reason   string `json:"reason"`
}

// ReducedContribution is a goal recommended for a smaller contribution.
type ReducedContribution struct {
	GoalID                  string  `json:"goal_id"`
	GoalName                string  `json:"goal_name"`
	CurrentContribution     float64 `json:"current_contribution"`
	RecommendedContribution float64 `json:"recommended_contribution"`
	Reason                  string  `json:"reason"`
}

// StressAdjustments holds stress-driven recommendations.
type StressAdjustments struct {
	StressDetected       bool                  `json:"stress_detected"`
	StressLevel          string                `json:"stress_level"`
	Recommendations      []string              `json:"recommendations"`
	FrozenGoals          []FrozenGoal          `json:"frozen_goals"`
	ReducedContributions []ReducedContribution `json:"reduced_contributions"`
}

// GoalDelay is the overspending-driven delay of one goal.
type GoalDelay struct {
	GoalName       string    `json:"goal_name"`
	DelayMonths    int       `json:"delay_months"`
	ImpactSeverity RiskLevel `json:"impact_severity"`
}

// OverspendingImpact describes how overspending slows each goal down.
type OverspendingImpact struct {
	OverspendingDetected bool                 `json:"overspending_detected"`
	Severity             Severity             `json:"severity"`
	AffectedGoals        []string             `json:"affected_goals"`
	EstimatedDelay       map[string]GoalDelay `json:"estimated_delay"`
	RecoveryActions      []string             `json:"recovery_actions"`
}

// TotalDelayMonths sums the estimated delay across goals.
func (o OverspendingImpact) TotalDelayMonths() int {
	total := 0
	for _, id := range o.AffectedGoals {
		total += o.EstimatedDelay[id].DelayMonths
	}
	return total
}

// GoalAnalysis is the per-goal section of a report.
type GoalAnalysis struct {
	GoalInfo          SavingsGoal       `json:"goal_info"`
	Progress          GoalProgress      `json:"progress"`
	Feasibility       FeasibilityResult `json:"feasibility"`
	HealthStatus      GoalHealth        `json:"health_status"`
	HealthExplanation string            `json:"health_explanation"`
	Prediction        Prediction        `json:"prediction"`
	DelayEstimate     DelayEstimate     `json:"delay_estimate"`
}

// HealthDistribution counts goals per health state.
type HealthDistribution struct {
	OnTrack     int `json:"on_track"`
	AtRisk      int `json:"at_risk"`
	OffTrack    int `json:"off_track"`
	Unrealistic int `json:"unrealistic"`
	Completed   int `json:"completed"`
}

// Add increments the counter for h.
func (d *HealthDistribution) Add(h GoalHealth) {
	switch h {
	case HealthOnTrack:
		d.OnTrack++
	case HealthAtRisk:
		d.AtRisk++
	case HealthOffTrack:
		d.OffTrack++
	case HealthUnrealistic:
		d.Unrealistic++
	case HealthCompleted:
		d.Completed++
	}
}

// Summary holds the top-level aggregate across all goals.
type Summary struct {
	TotalGoals            int                `json:"total_goals"`
	TotalTargetAmount     float64            `json:"total_target_amount"`
	TotalSaved            float64            `json:"total_saved"`
	TotalRemaining        float64            `json:"total_remaining"`
	OverallProgress       float64            `json:"overall_progress_percentage"`
	HealthDistribution    HealthDistribution `json:"health_distribution"`
	GoalsOnTrack          int                `json:"goals_on_track"`
	GoalsNeedingAttention int                `json:"goals_needing_attention"`
}

// Report is the full output of one analysis pass.
type Report struct {
	Summary            Summary                 `json:"summary"`
	Goals              map[string]GoalAnalysis `json:"goals"`
	GoalOrder          []string                `json:"goal_order"`
	GoalHealth         HealthDistribution      `json:"goal_health"`
	Conflicts          []Conflict              `json:"conflicts"`
	Predictions        map[string]Prediction   `json:"predictions"`
	Insights           []Insight               `json:"insights"`
	SavingsCapacity    CapacityEstimate        `json:"savings_capacity"`
	StressAdjustments  StressAdjustments       `json:"stress_adjustments"`
	OverspendingImpact OverspendingImpact      `json:"overspending_impact"`
	ReportGenerated    time.Time               `json:"report_generated"`
	EngineVersion      string                  `json:"engine_version"`
}

// HealthCheck is the quick single-goal health answer.
type HealthCheck struct {
	GoalID               string     `json:"goal_id"`
	GoalName             string     `json:"goal_name"`
	HealthStatus         GoalHealth `json:"health_status"`
	Explanation          string     `json:"explanation"`
	CompletionPercentage float64    `json:"completion_percentage"`
	OnTrack              bool       `json:"on_track"`
}
