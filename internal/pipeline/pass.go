// Package pipeline turns one snapshot of goals and signals into a goal
// report. Analysis functions are pure: they hold no package state, do no
// I/O and read "now" only from the Pass they are given.
package pipeline

import (
	"time"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
)

// EngineVersion is stamped on every report.
const EngineVersion = "1.0.0"

// DefaultCurrency is used in messages when no currency symbol is configured.
const DefaultCurrency = "₹"

// Tuning holds the tolerance bands used to call a goal on track.
type Tuning struct {
	// PlanTolerance is the share of the planned contributions a goal
	// without a deadline must have saved to count as on track.
	PlanTolerance float64 `json:"plan_tolerance"`
	// DeadlineVarianceTolerance is the lowest variance (actual minus
	// expected progress, in points) a goal with a deadline may have.
	DeadlineVarianceTolerance float64 `json:"deadline_variance_tolerance"`
	// ShortTermMonths is the horizon splitting short-term from long-term goals.
	ShortTermMonths int `json:"short_term_months"`
}

// DefaultTuning returns the stock tolerances.
func DefaultTuning() Tuning {
	return Tuning{
		PlanTolerance:             0.9,
		DeadlineVarianceTolerance: -10,
		ShortTermMonths:           12,
	}
}

// Pass is the immutable context of one analysis pass.
type Pass struct {
	Now      time.Time
	Signals  model.Signals
	Capacity model.CapacityEstimate
	Tuning   Tuning
	Currency string
}

// NewPass normalizes sig, estimates capacity from it and captures now.
func NewPass(sig model.Signals, now time.Time) Pass {
	sig = sig.Normalized()
	return Pass{
		Now:      now,
		Signals:  sig,
		Capacity: EstimateCapacity(sig),
		Tuning:   DefaultTuning(),
		Currency: DefaultCurrency,
	}
}

// WithTuning returns a copy of p using t. Non-positive plan tolerance or
// short-term horizon fall back to the defaults.
func (p Pass) WithTuning(t Tuning) Pass {
	def := DefaultTuning()
	if t.PlanTolerance <= 0 {
		t.PlanTolerance = def.PlanTolerance
	}
	if t.ShortTermMonths <= 0 {
		t.ShortTermMonths = def.ShortTermMonths
	}
	p.Tuning = t
	return p
}

// WithCurrency returns a copy of p that formats amounts with symbol.
func (p Pass) WithCurrency(symbol string) Pass {
	if symbol != "" {
		p.Currency = symbol
	}
	return p
}

func (p Pass) amount(v float64) string {
	return money.Format(p.Currency, v)
}

func (p Pass) stressed() bool {
	return p.Signals.Stress.IsStressed
}

func (p Pass) overspending() bool {
	return p.Signals.Overspending.IsOverspending
}

// monthsBetween counts calendar month boundaries from a to b, ignoring days.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// utilization is required as a percentage of maximum. With no capacity at
// all, anything required is full utilization.
func utilization(required, maximum float64) float64 {
	switch {
	case maximum > 0:
		return required / maximum * 100
	case required > 0:
		return 100
	default:
		return 0
	}
}
