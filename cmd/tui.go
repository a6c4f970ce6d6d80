package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/tui"
	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	state := ""
	if len(flagStates) > 0 {
		state = flagStates[0]
	}
	app := tui.NewApp(tui.Options{
		Load:     loadOptions(cfg, state),
		Settings: cfg.Settings(),
		Setup:    !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
