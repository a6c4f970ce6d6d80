package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
	"github.com/theirongolddev/nestegg/internal/store"
)

const dateLayout = "2006-01-02"

// goalInput holds a new goal as typed, before parsing.
type goalInput struct {
	Name        string
	Target      string
	Current     string
	Monthly     string
	Due         string
	Type        string
	Priority    string
	Description string
}

var flagGoal goalInput

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a savings goal (interactive without --name)",
	RunE:  runAdd,
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&flagGoal.Name, "name", "", "Goal name")
	f.StringVar(&flagGoal.Target, "target", "", "Target amount")
	f.StringVar(&flagGoal.Current, "current", "", "Amount already saved")
	f.StringVar(&flagGoal.Monthly, "monthly", "", "Planned monthly contribution")
	f.StringVar(&flagGoal.Due, "due", "", "Target date (YYYY-MM-DD)")
	f.StringVar(&flagGoal.Type, "type", string(model.GoalCustom), "Goal type")
	f.StringVar(&flagGoal.Priority, "priority", string(model.PriorityMedium), "low, medium or high")
	f.StringVar(&flagGoal.Description, "description", "", "Free-form note")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	in := flagGoal
	if in.Name == "" {
		if err := newGoalForm(&in).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	goal, err := in.build(time.Now())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := store.Open(dbPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveGoal(goal); err != nil {
		return fmt.Errorf("saving goal: %w", err)
	}

	fmt.Printf("  Added %s (%s)\n", goal.Name, goal.ID)
	fmt.Printf("  Target %s by %s\n", cli.FormatMoney(goal.TargetAmount), cli.FormatDate(goal.TargetDate))
	return nil
}

// build parses the typed fields into a goal.
func (in goalInput) build(now time.Time) (model.SavingsGoal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.SavingsGoal{}, errors.New("goal name is required")
	}
	target, err := money.Parse(in.Target)
	if err != nil {
		return model.SavingsGoal{}, fmt.Errorf("target: %w", err)
	}
	if target <= 0 {
		return model.SavingsGoal{}, errors.New("target must be positive")
	}

	g := model.NewGoal(name, target, now)
	g.Type = model.ParseGoalType(in.Type)
	g.Priority = model.ParsePriority(in.Priority)
	g.Description = strings.TrimSpace(in.Description)

	if in.Current != "" {
		if g.CurrentAmount, err = money.Parse(in.Current); err != nil {
			return model.SavingsGoal{}, fmt.Errorf("current: %w", err)
		}
	}
	if in.Monthly != "" {
		if g.MonthlyContribution, err = money.Parse(in.Monthly); err != nil {
			return model.SavingsGoal{}, fmt.Errorf("monthly: %w", err)
		}
	}
	if in.Due != "" {
		due, err := time.ParseInLocation(dateLayout, in.Due, now.Location())
		if err != nil {
			return model.SavingsGoal{}, fmt.Errorf("due date %q: want YYYY-MM-DD", in.Due)
		}
		g.TargetDate = &due
	}
	return g, nil
}

func optionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := money.Parse(s)
	return err
}

func newGoalForm(in *goalInput) *huh.Form {
	types := make([]huh.Option[string], len(model.GoalTypes))
	for i, t := range model.GoalTypes {
		types[i] = huh.NewOption(strings.ReplaceAll(string(t), "_", " "), string(t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal name").
				Value(&in.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Target amount").
				Placeholder("150000").
				Value(&in.Target).
				Validate(func(s string) error {
					v, err := money.Parse(s)
					if err != nil || v <= 0 {
						return errors.New("enter a positive amount")
					}
					return nil
				}),
			huh.NewInput().
				Title("Already saved").
				Placeholder("0").
				Value(&in.Current).
				Validate(optionalAmount),
			huh.NewInput().
				Title("Monthly contribution").
				Placeholder("5000").
				Value(&in.Monthly).
				Validate(optionalAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Target date").
				Description("YYYY-MM-DD, blank for no deadline").
				Value(&in.Due).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := time.Parse(dateLayout, s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(types...).
				Value(&in.Type),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High", string(model.PriorityHigh)),
					huh.NewOption("Medium", string(model.PriorityMedium)),
					huh.NewOption("Low", string(model.PriorityLow)),
				).
				Value(&in.Priority),
		),
	).WithTheme(huh.ThemeCharm())
}
