package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// The file alone: env overrides must not be written back.
	cfg, err := config.LoadFile()
	if err != nil {
		return err
	}

	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing saved.")
			return nil
		}
		return err
	}

	if err := vals.Apply(&cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `nestegg setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
