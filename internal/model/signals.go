package model

// SignalsVersion is the current shape of Signals.
const SignalsVersion = 1

// Severity grades an overspending signal.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IncomeSignal is the resolved monthly income.
type IncomeSignal struct {
	MonthlyIncome float64 `json:"monthly_income"`
}

// ExpenseSignal is the resolved monthly expense total.
type ExpenseSignal struct {
	MonthlyTotal float64 `json:"monthly_total"`
}

// OverspendingSignal is produced by the overspending analyser.
type OverspendingSignal struct {
	IsOverspending     bool     `json:"is_overspending"`
	Amount             float64  `json:"overspending_amount"`
	Severity           Severity `json:"severity"`
	AffectedCategories []string `json:"affected_categories"`
}

// StressSignal is produced by the stress index.
type StressSignal struct {
	IsStressed bool    `json:"is_stressed"`
	Score      float64 `json:"stress_score"`
	Level      string  `json:"stress_level,omitempty"`
}

// Signals bundles every externally computed input of one analysis pass.
type Signals struct {
	Version      int                `json:"version"`
	Income       IncomeSignal       `json:"income"`
	Expenses     ExpenseSignal      `json:"expenses"`
	Overspending OverspendingSignal `json:"overspending"`
	Stress       StressSignal       `json:"stress"`
}

// Normalized returns a copy with defaults filled in and out-of-range values
// clamped: stress score into [0,100], negative amounts to 0, missing
// severity to low.
func (s Signals) Normalized() Signals {
	out := s
	if out.Version == 0 {
		out.Version = SignalsVersion
	}
	if out.Overspending.Amount < 0 {
		out.Overspending.Amount = 0
	}
	switch out.Overspending.Severity {
	case SeverityLow, SeverityMedium, SeverityHigh:
	default:
		out.Overspending.Severity = SeverityLow
	}
	if len(s.Overspending.AffectedCategories) > 0 {
		out.Overspending.AffectedCategories = append([]string(nil), s.Overspending.AffectedCategories...)
	}
	switch {
	case out.Stress.Score < 0:
		out.Stress.Score = 0
	case out.Stress.Score > 100:
		out.Stress.Score = 100
	}
	if out.Stress.Level == "" {
		out.Stress.Level = StressLevel(out.Stress.Score)
	}
	return out
}

// StressLevel buckets a stress score into low, moderate or high.
func StressLevel(score float64) string {
	switch {
	case score > 70:
		return "high"
	case score > 40:
		return "moderate"
	default:
		return "low"
	}
}
