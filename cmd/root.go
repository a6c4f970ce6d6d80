// Package cmd implements the nestegg CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/pipeline"
)

var (
	flagDB       string
	flagStates   []string
	flagIncome   float64
	flagExpenses float64
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "nestegg",
	Short: "Savings goal intelligence",
	Long:  "Analyze savings goals against your real capacity: progress, feasibility, conflicts and forecasts.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cli.Currency = cfg.General.Currency
		return nil
	},
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (runReport -> loadOptions -> rootCmd).
	rootCmd.RunE = runReport
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Goal database (default "+pipeline.DBPath()+")")
	rootCmd.PersistentFlags().StringArrayVarP(&flagStates, "state", "s", nil, "Analyse a state JSON file instead of the database (repeatable)")
	rootCmd.PersistentFlags().Float64Var(&flagIncome, "income", 0, "Monthly income override")
	rootCmd.PersistentFlags().Float64Var(&flagExpenses, "expenses", 0, "Monthly expenses override")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config file and NESTEGG_* overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// loadOptions merges config, env and flags into snapshot options.
// Flags win over env, env wins over the file.
func loadOptions(cfg config.Config, statePath string) pipeline.LoadOptions {
	flags := rootCmd.PersistentFlags()
	if flags.Changed("income") {
		cfg.Signals.MonthlyIncome = flagIncome
	}
	if flags.Changed("expenses") {
		cfg.Signals.MonthlyExpenses = flagExpenses
	}

	opts := pipeline.LoadOptions{
		DBPath:    cfg.General.DBPath,
		StatePath: statePath,
		Signals:   cfg.ToSignals(),
		Now:       time.Now(),
	}
	if flagDB != "" {
		opts.DBPath = flagDB
	}
	if opts.StatePath == "" {
		opts.StatePath = cfg.General.StateFile
	}
	return opts
}

// dbPath returns the goal database commands should write to.
func dbPath(cfg config.Config) string {
	switch {
	case flagDB != "":
		return flagDB
	case cfg.General.DBPath != "":
		return cfg.General.DBPath
	default:
		return pipeline.DBPath()
	}
}

// loadSnapshot is the shared load path for single-report commands.
func loadSnapshot() (*pipeline.Snapshot, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	state := ""
	if len(flagStates) > 0 {
		state = flagStates[0]
	}
	snap, err := pipeline.LoadSnapshot(loadOptions(cfg, state))
	if err != nil {
		return nil, cfg, err
	}
	return snap, cfg, nil
}
