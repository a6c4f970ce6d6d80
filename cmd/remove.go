package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/store"
)

var removeCmd = &cobra.Command{
	Use:     "remove <goal-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a goal and its contributions",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := store.Open(dbPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.DeleteGoal(args[0]); err != nil {
		if errors.Is(err, store.ErrGoalNotFound) {
			return fmt.Errorf("goal %q not found", args[0])
		}
		return err
	}
	fmt.Printf("  Removed %s\n", args[0])
	return nil
}
