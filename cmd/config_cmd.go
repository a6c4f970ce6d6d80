package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:   %s\n", cfg.General.Currency)
	fmt.Printf("    Database:   %s\n", dbPath(cfg))
	if cfg.General.StateFile != "" {
		fmt.Printf("    State file: %s\n", cfg.General.StateFile)
	}
	fmt.Println()

	s := cfg.Signals
	fmt.Println("  [Signals]")
	fmt.Printf("    Monthly income:   %s\n", cli.FormatMoney(s.MonthlyIncome))
	fmt.Printf("    Monthly expenses: %s\n", cli.FormatMoney(s.MonthlyExpenses))
	if s.Overspending.Active {
		fmt.Printf("    Overspending:     %s (%s)", cli.FormatMoney(s.Overspending.Amount), s.Overspending.Severity)
		if len(s.Overspending.Categories) > 0 {
			fmt.Printf(" in %s", strings.Join(s.Overspending.Categories, ", "))
		}
		fmt.Println()
	} else {
		fmt.Println("    Overspending:     no")
	}
	if s.Stress.Active {
		fmt.Printf("    Stress:           yes (score %.0f)\n", s.Stress.Score)
	} else {
		fmt.Println("    Stress:           no")
	}
	fmt.Println()

	fmt.Println("  [Tuning]")
	fmt.Printf("    Plan tolerance:     %.2f\n", cfg.Tuning.PlanTolerance)
	fmt.Printf("    Variance tolerance: %.1fpp\n", cfg.Tuning.DeadlineVarianceTolerance)
	fmt.Printf("    Short-term horizon: %d months\n", cfg.Tuning.ShortTermMonths)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:  %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval: %s\n", cfg.DaemonInterval())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("  Environment overrides use the %s prefix, e.g. %sMONTHLY_INCOME.\n", config.EnvPrefix, config.EnvPrefix)
	fmt.Println("  Run `nestegg setup` to reconfigure.")
	return nil
}
