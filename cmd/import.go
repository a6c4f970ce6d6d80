package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/source"
	"github.com/theirongolddev/nestegg/internal/store"
)

var flagImportSignals bool

var importCmd = &cobra.Command{
	Use:   "import <state.json>",
	Short: "Copy the goals of a MonetIQ state file into the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportSignals, "signals", false, "Also save the file's income, expense, stress and overspending signals to the config")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	st, err := source.ReadStateFile(args[0], time.Now())
	if err != nil {
		return err
	}

	full, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := store.Open(dbPath(full))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveGoals(st.Goals); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	fmt.Printf("  Imported %d goals from %s\n", len(st.Goals), args[0])

	if !flagImportSignals {
		return nil
	}
	if !st.HasSignals {
		fmt.Println("  No signals in the file; config unchanged")
		return nil
	}

	// Save onto the file alone so env overrides are not persisted.
	cfg, err := config.LoadFile()
	if err != nil {
		return err
	}
	s := st.Signals
	cfg.Signals = config.SignalsConfig{
		MonthlyIncome:   s.Income.MonthlyIncome,
		MonthlyExpenses: s.Expenses.MonthlyTotal,
		Overspending: config.OverspendingConfig{
			Active:     s.Overspending.IsOverspending,
			Amount:     s.Overspending.Amount,
			Severity:   string(s.Overspending.Severity),
			Categories: s.Overspending.AffectedCategories,
		},
		Stress: config.StressConfig{
			Active: s.Stress.IsStressed,
			Score:  s.Stress.Score,
		},
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("  Saved signals to %s\n", config.ConfigPath())
	return nil
}
