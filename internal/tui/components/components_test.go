package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(100, 3)
	if len(widths) != 3 || widths[0] != 34 || widths[1] != 33 || widths[2] != 33 {
		t.Fatalf("LayoutRow(100, 3) = %v, want [34 33 33]", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(n=0) should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d under the short card has no background styling", i)
		}
	}

	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != width {
			t.Errorf("line %d width = %d, want %d", i, w, width)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Saved", Value: "₹66,000"},
		{Label: "Remaining", Value: "₹94,000", Note: "across 2 goals"},
		{Label: "Progress", Value: "41.3%"},
	}, 90)

	for i, l := range strings.Split(row, "\n") {
		if w := lipgloss.Width(l); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
	if !strings.Contains(row, "across 2 goals") {
		t.Error("note missing from metric card")
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := lipgloss.Width(ProgressBar(1.7, 20)); got != 20+len(" 100%") {
		t.Errorf("ProgressBar(1.7) width = %d", got)
	}
	if !strings.Contains(ProgressBar(-1, 10), "0%") {
		t.Error("ProgressBar(-1) should show 0%")
	}
}

func TestColorForUtilization(t *testing.T) {
	th := theme.Active
	cases := []struct {
		frac float64
		want lipgloss.Color
	}{
		{0.2, th.Green},
		{0.55, th.Yellow},
		{0.75, th.Orange},
		{1.4, th.Red},
	}
	for _, c := range cases {
		if got := ColorForUtilization(c.frac); got != c.want {
			t.Errorf("ColorForUtilization(%v) = %v, want %v", c.frac, got, c.want)
		}
	}
}

func TestGoalBarWidth(t *testing.T) {
	bar := GoalBar("Bike", "on_track", 90, 10, 20)
	// label + space + bar + space + "pct%"
	if got, want := lipgloss.Width(bar), 10+1+20+1+4; got != want {
		t.Errorf("GoalBar width = %d, want %d", got, want)
	}
}

func TestTabBarWidthsMatchHitboxes(t *testing.T) {
	for active := range Tabs {
		total := 0
		for i, tab := range Tabs {
			total += TabVisualWidth(tab, i == active)
		}
		total += len(Tabs) - 1 // separators

		bar := RenderTabBar(active, 120)
		if !strings.Contains(bar, "Overview") {
			t.Fatal("tab bar missing Overview")
		}
		if w := lipgloss.Width(bar); w != 120 {
			t.Errorf("tab bar width = %d, want 120", w)
		}
		if total > 120 {
			t.Errorf("tabs need %d columns", total)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('c'); got != 2 {
		t.Errorf("TabIdxByKey('c') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	bar := RenderStatusBar(80, "goals.db", "loaded 2s ago", false)
	if w := lipgloss.Width(bar); w != 80 {
		t.Errorf("status bar width = %d, want 80", w)
	}
	if !strings.Contains(bar, "goals.db") {
		t.Error("status bar missing source")
	}
	if !strings.Contains(RenderStatusBar(80, "", "", true), "refreshing") {
		t.Error("status bar missing refresh marker")
	}
}
