package pipeline

import (
	"math"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
)

// Capacity band shares of the adjusted base capacity.
const (
	conservativeShare = 0.2
	moderateShare     = 0.4
	aggressiveShare   = 0.7

	// overspendCarryOver is the share of an active overspend assumed to continue.
	overspendCarryOver = 0.5
	// minStressMultiplier is where the stress discount bottoms out.
	minStressMultiplier = 0.6
)

// EstimateCapacity derives the monthly savings capacity band from income,
// expenses, overspending and stress. Bands are never negative.
func EstimateCapacity(sig model.Signals) model.CapacityEstimate {
	sig = sig.Normalized()

	base := sig.Income.MonthlyIncome - sig.Expenses.MonthlyTotal
	if sig.Overspending.IsOverspending {
		base -= sig.Overspending.Amount * overspendCarryOver
	}

	multiplier := 1.0
	if sig.Stress.IsStressed {
		multiplier = math.Max(minStressMultiplier, 1.0-(sig.Stress.Score/100)*0.4)
	}

	band := func(share float64) float64 {
		return money.Round(math.Max(0, base*share*multiplier))
	}

	return model.CapacityEstimate{
		BaseCapacity:       money.Round(base),
		Conservative:       band(conservativeShare),
		Moderate:           band(moderateShare),
		Aggressive:         band(aggressiveShare),
		Maximum:            band(1.0),
		StressMultiplier:   money.RoundTo(multiplier, 4),
		StressAdjusted:     multiplier < 1.0,
		OverspendingImpact: sig.Overspending.IsOverspending,
	}
}
