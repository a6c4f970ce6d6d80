package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/theirongolddev/nestegg/internal/store"
)

func TestLoadSnapshot_StateFileSignalsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monetiq_state.json")
	doc := `{
		"income": {"monthly_income": 80000},
		"expenses": {"monthly_total": 50000},
		"savings_goals": [{"goal_id": "bike", "name": "Bike", "target_amount": 30000}]
	}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	snap, err := LoadSnapshot(LoadOptions{
		StatePath: path,
		Signals:   signals(1, 1),
		Now:       testNow,
	})
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap.Label != "monetiq_state.json" {
		t.Errorf("Label = %q", snap.Label)
	}
	if len(snap.Goals) != 1 || snap.Goals[0].ID != "bike" {
		t.Fatalf("Goals = %+v", snap.Goals)
	}
	if snap.Signals.Income.MonthlyIncome != 80000 {
		t.Errorf("income = %v, want the state file's 80000", snap.Signals.Income.MonthlyIncome)
	}
}

func TestLoadSnapshot_Store(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "goals.db")
	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	g := goalAt("fund", 100000, 25000, 3, 0)
	if err := db.SaveGoal(g); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	snap, err := LoadSnapshot(LoadOptions{DBPath: dbPath, Signals: signals(5000, 1000), Now: testNow})
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Goals) != 1 || snap.Goals[0].CurrentAmount != 25000 {
		t.Fatalf("Goals = %+v", snap.Goals)
	}
	if snap.Signals.Income.MonthlyIncome != 5000 {
		t.Errorf("income = %v, want the baseline 5000", snap.Signals.Income.MonthlyIncome)
	}
}

func TestLoadSnapshot_MissingStateFile(t *testing.T) {
	_, err := LoadSnapshot(LoadOptions{StatePath: filepath.Join(t.TempDir(), "nope.json"), Now: testNow})
	if err == nil {
		t.Fatal("LoadSnapshot with missing state file returned nil error")
	}
}

func TestAnalyzeMany_MatchesSequential(t *testing.T) {
	goals, p := busyPortfolio()
	set := Settings{Tuning: DefaultTuning(), Currency: DefaultCurrency}

	snaps := make([]Snapshot, 8)
	for i := range snaps {
		sig := p.Signals
		sig.Income.MonthlyIncome += float64(i * 1000)
		snaps[i] = Snapshot{Goals: goals, Signals: sig, Now: testNow}
	}

	var calls atomic.Int64
	reports := AnalyzeMany(snaps, set, func(current, total int) {
		calls.Add(1)
		if total != len(snaps) || current < 1 || current > total {
			t.Errorf("progress(%d, %d)", current, total)
		}
	})

	if got := calls.Load(); got != int64(len(snaps)) {
		t.Errorf("progress called %d times, want %d", got, len(snaps))
	}
	for i, s := range snaps {
		want, _ := json.Marshal(Analyze(s.Goals, s.Pass(set)))
		got, _ := json.Marshal(reports[i])
		if string(got) != string(want) {
			t.Errorf("report %d differs from a sequential pass", i)
		}
	}
}

func TestAnalyzeMany_Empty(t *testing.T) {
	if got := AnalyzeMany(nil, Settings{}, nil); len(got) != 0 {
		t.Errorf("AnalyzeMany(nil) = %d reports", len(got))
	}
}

func TestDBPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	if got, want := DBPath(), filepath.Join(dir, "nestegg", "goals.db"); got != want {
		t.Errorf("DBPath = %q, want %q", got, want)
	}
}
