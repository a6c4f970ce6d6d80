package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/money"
	"github.com/theirongolddev/nestegg/internal/store"
)

var flagNote string

var contributeCmd = &cobra.Command{
	Use:   "contribute <goal-id> <amount>",
	Short: "Record a deposit (or a negative withdrawal) against a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runContribute,
}

func init() {
	contributeCmd.Flags().StringVar(&flagNote, "note", "", "Note stored with the contribution")
	rootCmd.AddCommand(contributeCmd)
}

func runContribute(_ *cobra.Command, args []string) error {
	amount, err := money.Parse(args[1])
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

	g, err := db.Contribute(args[0], amount, time.Now(), flagNote)
	switch {
	case errors.Is(err, store.ErrGoalNotFound):
		return fmt.Errorf("goal %q not found", args[0])
	case err != nil:
		return err
	}

	fmt.Printf("  %s: %s saved of %s\n", g.Name, cli.FormatMoneyCents(g.CurrentAmount), cli.FormatMoney(g.TargetAmount))
	pct := 0.0
	if g.TargetAmount > 0 {
		pct = g.CurrentAmount / g.TargetAmount * 100
	}
	fmt.Printf("  %s\n", cli.RenderProgressBar(pct, 24))
	return nil
}
