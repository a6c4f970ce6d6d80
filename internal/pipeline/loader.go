package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/source"
	"github.com/theirongolddev/nestegg/internal/store"
)

// Snapshot is one consistent set of goals and resolved signals, captured
// before analysis starts.
type Snapshot struct {
	Label   string
	Goals   []model.SavingsGoal
	Signals model.Signals
	Now     time.Time
}

// Settings carries the user-tunable parts of a pass.
type Settings struct {
	Tuning   Tuning
	Currency string
}

// Pass builds the analysis context for the snapshot.
func (s Snapshot) Pass(set Settings) Pass {
	return NewPass(s.Signals, s.Now).WithTuning(set.Tuning).WithCurrency(set.Currency)
}

// LoadOptions selects where a snapshot comes from.
type LoadOptions struct {
	// DBPath is the goal database, used when StatePath is empty.
	DBPath string
	// StatePath is a MonetIQ-style state document.
	StatePath string
	// Signals is the baseline; a state document carrying its own income,
	// expense, stress or overspending blocks replaces it.
	Signals model.Signals
	Now     time.Time
}

// LoadSnapshot reads goals (and possibly signals) into a snapshot.
func LoadSnapshot(opts LoadOptions) (*Snapshot, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	snap := &Snapshot{Signals: opts.Signals, Now: opts.Now}

	if opts.StatePath != "" {
		st, err := source.ReadStateFile(opts.StatePath, opts.Now)
		if err != nil {
			return nil, err
		}
		snap.Label = filepath.Base(opts.StatePath)
		snap.Goals = st.Goals
		if st.HasSignals {
			snap.Signals = st.Signals
		}
		return snap, nil
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = DBPath()
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	goals, err := db.LoadGoals(opts.Now)
	if err != nil {
		return nil, fmt.Errorf("loading goals from %s: %w", dbPath, err)
	}
	snap.Label = filepath.Base(dbPath)
	snap.Goals = goals
	return snap, nil
}

// ProgressFunc is called as reports finish.
// current is the number of snapshots analysed so far, total is the total count.
type ProgressFunc func(current, total int)

// AnalyzeMany analyses independent snapshots on a bounded worker pool.
// Reports come back in snapshot order.
func AnalyzeMany(snaps []Snapshot, set Settings, progressFn ProgressFunc) []model.Report {
	reports := make([]model.Report, len(snaps))
	if len(snaps) == 0 {
		return reports
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(snaps) {
		numWorkers = len(snaps)
	}

	work := make(chan int, len(snaps))
	for i := range snaps {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	var done atomic.Int64

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				s := snaps[idx]
				reports[idx] = Analyze(s.Goals, s.Pass(set))
				n := done.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(snaps))
				}
			}
		}()
	}

	wg.Wait()
	return reports
}

// DataDir returns the platform-appropriate data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "nestegg")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "nestegg")
}

// DBPath returns the default path of the goal database.
func DBPath() string {
	return filepath.Join(DataDir(), "goals.db")
}
