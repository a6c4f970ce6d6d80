package source

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/theirongolddev/nestegg/internal/model"
)

// ErrInvalidState is returned when a state document is not JSON at all.
var ErrInvalidState = errors.New("state is not valid JSON")

// State is everything a MonetIQ state document carries for goal analysis.
type State struct {
	Goals      []model.SavingsGoal
	Signals    model.Signals
	HasSignals bool // true if any income, expense, stress or overspending block was present
}

// ReadStateFile reads and parses a state document from disk.
func ReadStateFile(path string, now time.Time) (State, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the local user
	if err != nil {
		return State{}, fmt.Errorf("reading state file: %w", err)
	}
	st, err := ParseState(data, now)
	if err != nil {
		return State{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return st, nil
}

// ParseState parses a state document. Goals live under "savings_goals"
// (or "goals") as either a list or an object keyed by goal id. Signals are
// read from "income", "expenses", "overspending" and "stress_index".
func ParseState(data []byte, now time.Time) (State, error) {
	if !gjson.ValidBytes(data) {
		return State{}, ErrInvalidState
	}
	doc := gjson.ParseBytes(data)

	st := State{Goals: parseGoals(doc, now)}
	st.Signals, st.HasSignals = parseSignals(doc)
	return st, nil
}

func parseGoals(doc gjson.Result, now time.Time) []model.SavingsGoal {
	node := doc.Get("savings_goals")
	if !node.Exists() {
		node = doc.Get("goals")
	}

	switch {
	case node.IsArray():
		var records []Record
		node.ForEach(func(_, v gjson.Result) bool {
			if rec, ok := v.Value().(map[string]any); ok {
				records = append(records, Record(rec))
			}
			return true
		})
		return LoadGoals(records, now)

	case node.IsObject():
		// Object maps keep the document's key order.
		var (
			ids     []string
			records []Record
		)
		node.ForEach(func(k, v gjson.Result) bool {
			if rec, ok := v.Value().(map[string]any); ok {
				ids = append(ids, k.String())
				records = append(records, Record(rec))
			}
			return true
		})
		goals := make([]model.SavingsGoal, 0, len(records))
		for i, rec := range records {
			goals = append(goals, GoalFromRecord(ids[i], rec, now))
		}
		return goals
	}
	return nil
}

func parseSignals(doc gjson.Result) (model.Signals, bool) {
	var sig model.Signals
	present := false

	income := firstOf(doc, "income.monthly_income", "income.monthly", "monthly_income")
	if income.Exists() {
		present = true
		sig.Income.MonthlyIncome = nonNegative(toFloat(income.Value()))
	}

	switch exp := doc.Get("expenses"); {
	case exp.IsObject():
		present = true
		sig.Expenses.MonthlyTotal = nonNegative(toFloat(firstOf(exp, "monthly_total", "total").Value()))
	case exp.IsArray():
		// A raw expense ledger: total the amounts.
		present = true
		var total float64
		exp.ForEach(func(_, v gjson.Result) bool {
			total += nonNegative(toFloat(v.Get("amount").Value()))
			return true
		})
		sig.Expenses.MonthlyTotal = total
	}

	if over := doc.Get("overspending"); over.IsObject() {
		present = true
		sig.Overspending.IsOverspending = over.Get("is_overspending").Bool()
		sig.Overspending.Amount = nonNegative(toFloat(over.Get("overspending_amount").Value()))
		sig.Overspending.Severity = model.Severity(normalizeKey(over.Get("severity").String()))
		over.Get("affected_categories").ForEach(func(_, v gjson.Result) bool {
			if s := v.String(); s != "" {
				sig.Overspending.AffectedCategories = append(sig.Overspending.AffectedCategories, s)
			}
			return true
		})
	}

	stress := doc.Get("stress_index")
	if !stress.Exists() {
		stress = doc.Get("stress")
	}
	if stress.IsObject() {
		present = true
		sig.Stress.IsStressed = stress.Get("is_stressed").Bool()
		sig.Stress.Score = toFloat(stress.Get("stress_score").Value())
		sig.Stress.Level = stress.Get("stress_level").String()
	}

	return sig.Normalized(), present
}

func firstOf(doc gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := doc.Get(p); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
