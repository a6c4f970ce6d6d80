package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/daemon"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/pipeline"
)

var (
	flagJSON       bool
	flagFromDaemon string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Full goal report with capacity, conflicts and insights",
	RunE:  runReport,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print the report as JSON")
	rootCmd.PersistentFlags().StringVar(&flagFromDaemon, "from-daemon", "", "Read the report from a running daemon at this address")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	if len(flagStates) > 1 {
		return runReportMany()
	}

	var (
		report model.Report
		label  string
		goals  int
	)
	if flagFromDaemon != "" {
		r, err := daemon.NewClient(flagFromDaemon).Report(context.Background())
		if err != nil {
			return err
		}
		report, label, goals = r, flagFromDaemon, r.Summary.TotalGoals
	} else {
		snap, cfg, err := loadSnapshot()
		if err != nil {
			return err
		}
		report = pipeline.Analyze(snap.Goals, snap.Pass(cfg.Settings()))
		label, goals = snap.Label, len(snap.Goals)
	}

	if flagJSON {
		return writeJSON(report)
	}

	fmt.Println()
	fmt.Print(cli.RenderReport(report))
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\n  %d goals from %s\n", goals, label)
	}
	return nil
}

// runReportMany analyses several state files in parallel.
func runReportMany() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snaps := make([]pipeline.Snapshot, 0, len(flagStates))
	for _, path := range flagStates {
		snap, err := pipeline.LoadSnapshot(loadOptions(cfg, path))
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		snaps = append(snaps, *snap)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Analysing [%d/%d]", current, total)
		if current == total {
			fmt.Fprintln(os.Stderr)
		}
	}
	reports := pipeline.AnalyzeMany(snaps, cfg.Settings(), progressFn)

	if flagJSON {
		byFile := make(map[string]model.Report, len(reports))
		for i, r := range reports {
			byFile[filepath.Base(flagStates[i])] = r
		}
		return writeJSON(byFile)
	}

	for i, r := range reports {
		fmt.Println()
		fmt.Println(cli.RenderSection(snaps[i].Label))
		fmt.Print(cli.RenderReport(r))
	}
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
