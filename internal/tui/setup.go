package tui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/money"
	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

// SetupValues holds the answers of the setup form as typed.
type SetupValues struct {
	Income   string
	Expenses string
	Currency string
	Theme    string
	Stressed bool
}

// SetupValuesFrom pre-fills the form from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	v := SetupValues{
		Currency: cfg.General.Currency,
		Theme:    cfg.Appearance.Theme,
		Stressed: cfg.Signals.Stress.Active,
	}
	if cfg.Signals.MonthlyIncome > 0 {
		v.Income = strconv.FormatFloat(cfg.Signals.MonthlyIncome, 'f', -1, 64)
	}
	if cfg.Signals.MonthlyExpenses > 0 {
		v.Expenses = strconv.FormatFloat(cfg.Signals.MonthlyExpenses, 'f', -1, 64)
	}
	return v
}

func validateAmount(s string) error {
	v, err := money.Parse(s)
	if err != nil {
		return errors.New("enter an amount, e.g. 85000")
	}
	if v < 0 {
		return errors.New("amount cannot be negative")
	}
	return nil
}

// NewSetupForm builds the signal and appearance form. Answers land in v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themes := huh.NewOptions(theme.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to nestegg").
				Description("A few numbers let nestegg size your monthly savings capacity."),
			huh.NewInput().
				Title("Monthly income").
				Placeholder("85000").
				Value(&v.Income).
				Validate(validateAmount),
			huh.NewInput().
				Title("Monthly expenses").
				Placeholder("52000").
				Value(&v.Expenses).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Placeholder("₹").
				Value(&v.Currency),
			huh.NewConfirm().
				Title("Under financial stress right now?").
				Description("Stress lowers the capacity nestegg plans against.").
				Value(&v.Stressed),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	income, err := money.Parse(v.Income)
	if err != nil {
		return err
	}
	expenses, err := money.Parse(v.Expenses)
	if err != nil {
		return err
	}
	cfg.Signals.MonthlyIncome = income
	cfg.Signals.MonthlyExpenses = expenses
	cfg.Signals.Stress.Active = v.Stressed
	if v.Stressed && cfg.Signals.Stress.Score == 0 {
		// A bare "yes" is treated as moderate stress.
		cfg.Signals.Stress.Score = 50
	}
	if v.Currency != "" {
		cfg.General.Currency = v.Currency
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	return nil
}
