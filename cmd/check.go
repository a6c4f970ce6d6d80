package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/daemon"
	"github.com/theirongolddev/nestegg/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check <goal-id>",
	Short: "Quick health check of a single goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	if flagFromDaemon != "" {
		return checkViaDaemon(args[0])
	}

	snap, cfg, err := loadSnapshot()
	if err != nil {
		return err
	}

	hc, err := pipeline.CheckGoal(snap.Goals, args[0], snap.Pass(cfg.Settings()))
	if errors.Is(err, pipeline.ErrGoalNotFound) {
		return fmt.Errorf("goal %q not found in %s", args[0], snap.Label)
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(hc)
	}
	fmt.Println()
	fmt.Print(cli.RenderHealthCheck(hc))
	return nil
}

// checkViaDaemon asks a running daemon instead of loading goals locally.
func checkViaDaemon(id string) error {
	hc, err := daemon.NewClient(flagFromDaemon).GoalHealth(context.Background(), id)
	if errors.Is(err, daemon.ErrGoalNotFound) {
		return fmt.Errorf("goal %q not found", id)
	}
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(hc)
	}
	fmt.Println()
	fmt.Print(cli.RenderHealthCheck(hc))
	return nil
}
