package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/pipeline"
)

// EnvPrefix is prepended to every environment override, e.g. NESTEGG_MONTHLY_INCOME.
const EnvPrefix = "NESTEGG_"

// Config holds all nestegg configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Signals    SignalsConfig    `toml:"signals"`
	Tuning     TuningConfig     `toml:"tuning"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency  string `toml:"currency" env:"CURRENCY"`
	DBPath    string `toml:"db_path,omitempty" env:"DB"`
	StateFile string `toml:"state_file,omitempty" env:"STATE_FILE"`
}

// SignalsConfig holds the resolved financial signals fed into every pass.
type SignalsConfig struct {
	MonthlyIncome   float64            `toml:"monthly_income" env:"MONTHLY_INCOME"`
	MonthlyExpenses float64            `toml:"monthly_expenses" env:"MONTHLY_EXPENSES"`
	Overspending    OverspendingConfig `toml:"overspending"`
	Stress          StressConfig       `toml:"stress"`
}

// OverspendingConfig mirrors the overspending analyser's output.
type OverspendingConfig struct {
	Active     bool     `toml:"active" env:"OVERSPENDING"`
	Amount     float64  `toml:"amount" env:"OVERSPENDING_AMOUNT"`
	Severity   string   `toml:"severity" env:"OVERSPENDING_SEVERITY"`
	Categories []string `toml:"categories,omitempty" env:"OVERSPENDING_CATEGORIES" envSeparator:","`
}

// StressConfig mirrors the stress index output.
type StressConfig struct {
	Active bool    `toml:"active" env:"STRESSED"`
	Score  float64 `toml:"score" env:"STRESS_SCORE"`
}

// TuningConfig holds the on-track tolerances.
type TuningConfig struct {
	PlanTolerance             float64 `toml:"plan_tolerance" env:"PLAN_TOLERANCE"`
	DeadlineVarianceTolerance float64 `toml:"deadline_variance_tolerance" env:"DEADLINE_VARIANCE_TOLERANCE"`
	ShortTermMonths           int     `toml:"short_term_months" env:"SHORT_TERM_MONTHS"`
}

// DaemonConfig holds background service settings.
type DaemonConfig struct {
	Addr         string `toml:"addr" env:"DAEMON_ADDR"`
	IntervalSecs int    `toml:"interval_secs" env:"DAEMON_INTERVAL"`
	EventsBuffer int    `toml:"events_buffer" env:"DAEMON_EVENTS_BUFFER"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"THEME"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	t := pipeline.DefaultTuning()
	return Config{
		General: GeneralConfig{
			Currency: pipeline.DefaultCurrency,
		},
		Signals: SignalsConfig{
			Overspending: OverspendingConfig{Severity: string(model.SeverityLow)},
		},
		Tuning: TuningConfig{
			PlanTolerance:             t.PlanTolerance,
			DeadlineVarianceTolerance: t.DeadlineVarianceTolerance,
			ShortTermMonths:           t.ShortTermMonths,
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8787",
			IntervalSecs: 60,
			EventsBuffer: 200,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nestegg")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nestegg")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies NESTEGG_* environment overrides.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile reads only the config file.
func LoadFile() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with any NESTEGG_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ToSignals converts the configured signals into engine inputs.
func (c Config) ToSignals() model.Signals {
	s := c.Signals
	return model.Signals{
		Version:  model.SignalsVersion,
		Income:   model.IncomeSignal{MonthlyIncome: s.MonthlyIncome},
		Expenses: model.ExpenseSignal{MonthlyTotal: s.MonthlyExpenses},
		Overspending: model.OverspendingSignal{
			IsOverspending:     s.Overspending.Active,
			Amount:             s.Overspending.Amount,
			Severity:           model.Severity(s.Overspending.Severity),
			AffectedCategories: s.Overspending.Categories,
		},
		Stress: model.StressSignal{
			IsStressed: s.Stress.Active,
			Score:      s.Stress.Score,
		},
	}.Normalized()
}

// Settings returns the pass settings for this config.
func (c Config) Settings() pipeline.Settings {
	return pipeline.Settings{
		Tuning: pipeline.Tuning{
			PlanTolerance:             c.Tuning.PlanTolerance,
			DeadlineVarianceTolerance: c.Tuning.DeadlineVarianceTolerance,
			ShortTermMonths:           c.Tuning.ShortTermMonths,
		},
		Currency: c.General.Currency,
	}
}

// DaemonInterval returns the poll interval.
func (c Config) DaemonInterval() time.Duration {
	return time.Duration(c.Daemon.IntervalSecs) * time.Second
}
