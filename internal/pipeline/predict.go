package pipeline

import (
	"math"
	"time"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
)

// HorizonSentinel stands in for "never" wherever a month count cannot be
// resolved, keeping reports finite and comparable.
const HorizonSentinel = 999

// daysPerMonth converts projected months into calendar time.
const daysPerMonth = 30

// PredictCompletion projects a completion date from the goal's historical
// saving rate, discounted while overspending (x0.85) or stressed (x0.90).
// A zero rate, or one too slow to finish within the sentinel horizon,
// yields no date and a 0.1 probability.
func PredictCompletion(g model.SavingsGoal, prog model.GoalProgress, p Pass) model.Prediction {
	elapsed := max(1, prog.MonthsElapsed)
	rate := g.CurrentAmount / float64(elapsed)

	factor := 1.0
	if p.overspending() {
		factor *= 0.85
	}
	if p.stressed() {
		factor *= 0.90
	}
	rate *= factor

	pred := model.Prediction{
		GoalID:               g.ID,
		GoalName:             g.Name,
		MonthsToCompletion:   HorizonSentinel,
		SuccessProbability:   0.1,
		PredictedMonthlyRate: money.Round(rate),
		TargetMonthlyRate:    money.Round(g.MonthlyContribution),
		Confidence:           confidence(prog.MonthsElapsed),
	}

	if rate <= 0 {
		return pred
	}
	months := g.Remaining() / rate
	if months >= HorizonSentinel {
		return pred
	}

	date := p.Now.Add(time.Duration(months * daysPerMonth * 24 * float64(time.Hour)))
	pred.PredictedCompletionDate = &date
	pred.MonthsToCompletion = money.RoundTo(months, 1)

	var prob float64
	switch {
	case !g.HasDeadline():
		prob = 0.6
		if prog.Variance >= p.Tuning.DeadlineVarianceTolerance {
			prob = 0.8
		}
	case !date.After(*g.TargetDate):
		prob = math.Min(0.95, 0.7+prog.Variance/100*0.25)
	default:
		late := wholeDays(date.Sub(*g.TargetDate))
		prob = math.Max(0.1, 0.7-float64(late)/365*0.3)
	}
	pred.SuccessProbability = money.RoundTo(prob, 2)
	return pred
}

// EstimateDelay says how far past its deadline a goal is projected to
// finish, with a risk bucket and the active signals behind the delay.
func EstimateDelay(g model.SavingsGoal, prog model.GoalProgress, pred model.Prediction, feas model.FeasibilityResult, p Pass) model.DelayEstimate {
	d := model.DelayEstimate{
		GoalID:       g.ID,
		DelayReasons: []string{},
		RiskLevel:    model.RiskLow,
	}
	if !g.HasDeadline() {
		return d
	}

	if pred.PredictedCompletionDate == nil {
		d.HasDelay = true
		d.DelayMonths = HorizonSentinel
		d.RiskLevel = model.RiskCritical
		d.DelayReasons = append(d.DelayReasons, "Goal appears unachievable at current rate")
		return d
	}

	predicted, target := *pred.PredictedCompletionDate, *g.TargetDate
	if !predicted.After(target) {
		return d
	}

	months := float64(wholeDays(predicted.Sub(target))) / daysPerMonth
	d.HasDelay = true
	d.DelayMonths = money.RoundTo(months, 1)
	d.RiskLevel = delayRisk(months)

	if prog.Variance < -15 {
		d.DelayReasons = append(d.DelayReasons, "Significantly behind schedule")
	}
	if p.overspending() {
		d.DelayReasons = append(d.DelayReasons, "Overspending reducing available savings")
	}
	if p.stressed() {
		d.DelayReasons = append(d.DelayReasons, "Financial stress impacting contributions")
	}
	if feas.CapacityUtilization > 80 {
		d.DelayReasons = append(d.DelayReasons, "Limited savings capacity")
	}
	return d
}

func delayRisk(months float64) model.RiskLevel {
	switch {
	case months > 6:
		return model.RiskHigh
	case months > 3:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func confidence(monthsElapsed int) string {
	switch {
	case monthsElapsed >= 3:
		return "high"
	case monthsElapsed >= 1:
		return "medium"
	default:
		return "low"
	}
}

func wholeDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}
