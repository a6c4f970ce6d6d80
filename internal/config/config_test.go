package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/nestegg/internal/model"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "₹" {
		t.Errorf("Currency = %q, want ₹", cfg.General.Currency)
	}
	if cfg.Tuning.PlanTolerance != 0.9 || cfg.Tuning.DeadlineVarianceTolerance != -10 || cfg.Tuning.ShortTermMonths != 12 {
		t.Errorf("Tuning = %+v", cfg.Tuning)
	}
	if cfg.Daemon.Addr != "127.0.0.1:8787" || cfg.Daemon.EventsBuffer != 200 {
		t.Errorf("Daemon = %+v", cfg.Daemon)
	}
	if Exists() {
		t.Error("Exists = true with an empty config dir")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Signals.MonthlyIncome = 90000
	cfg.Signals.MonthlyExpenses = 55000
	cfg.Signals.Overspending = OverspendingConfig{
		Active:     true,
		Amount:     4000,
		Severity:   "medium",
		Categories: []string{"dining", "shopping"},
	}
	cfg.Appearance.Theme = "catppuccin-mocha"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Signals.MonthlyIncome != 90000 || got.Appearance.Theme != "catppuccin-mocha" {
		t.Errorf("round trip = %+v", got)
	}
	if len(got.Signals.Overspending.Categories) != 2 {
		t.Errorf("Categories = %v", got.Signals.Overspending.Categories)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	doc := "[signals]\nmonthly_income = 50000\nmonthly_expenses = 30000\n"
	if err := os.MkdirAll(filepath.Join(dir, "nestegg"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nestegg", "config.toml"), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("NESTEGG_MONTHLY_INCOME", "75000")
	t.Setenv("NESTEGG_STRESSED", "true")
	t.Setenv("NESTEGG_STRESS_SCORE", "62.5")
	t.Setenv("NESTEGG_OVERSPENDING_CATEGORIES", "dining,travel")
	t.Setenv("NESTEGG_DAEMON_ADDR", "127.0.0.1:9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Signals.MonthlyIncome != 75000 {
		t.Errorf("MonthlyIncome = %v, want env 75000", cfg.Signals.MonthlyIncome)
	}
	if cfg.Signals.MonthlyExpenses != 30000 {
		t.Errorf("MonthlyExpenses = %v, want file 30000", cfg.Signals.MonthlyExpenses)
	}
	if !cfg.Signals.Stress.Active || cfg.Signals.Stress.Score != 62.5 {
		t.Errorf("Stress = %+v", cfg.Signals.Stress)
	}
	if got := cfg.Signals.Overspending.Categories; len(got) != 2 || got[1] != "travel" {
		t.Errorf("Categories = %v", got)
	}
	if cfg.Daemon.Addr != "127.0.0.1:9999" {
		t.Errorf("Addr = %q", cfg.Daemon.Addr)
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NESTEGG_MONTHLY_INCOME", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("Load with non-numeric income returned nil error")
	}
}

func TestLoad_BadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "nestegg"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nestegg", "config.toml"), []byte("[signals\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load with broken TOML returned nil error")
	}
}

func TestToSignals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Signals.MonthlyIncome = 60000
	cfg.Signals.MonthlyExpenses = 40000
	cfg.Signals.Overspending.Severity = "extreme"
	cfg.Signals.Stress = StressConfig{Active: true, Score: 140}

	sig := cfg.ToSignals()
	if sig.Income.MonthlyIncome != 60000 || sig.Expenses.MonthlyTotal != 40000 {
		t.Errorf("income/expenses = %v/%v", sig.Income.MonthlyIncome, sig.Expenses.MonthlyTotal)
	}
	if sig.Overspending.Severity != model.SeverityLow {
		t.Errorf("Severity = %q, want low for an unknown grade", sig.Overspending.Severity)
	}
	if sig.Stress.Score != 100 || sig.Stress.Level != "high" {
		t.Errorf("Stress = %+v, want clamped to 100/high", sig.Stress)
	}
}

func TestSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.Currency = "$"
	cfg.Tuning.ShortTermMonths = 6

	set := cfg.Settings()
	if set.Currency != "$" || set.Tuning.ShortTermMonths != 6 || set.Tuning.PlanTolerance != 0.9 {
		t.Errorf("Settings = %+v", set)
	}
}
