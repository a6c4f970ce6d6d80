package daemon

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededService(t *testing.T) (*Service, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "goals.db")
	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	now := time.Now()
	due := now.AddDate(1, 0, 0)
	goals := []model.SavingsGoal{
		{
			ID: "fund", Name: "Emergency Fund", Type: model.GoalEmergencyFund, Priority: model.PriorityHigh,
			TargetAmount: 120000, CurrentAmount: 30000, TargetDate: &due,
			MonthlyContribution: 8000, CreatedDate: now.AddDate(0, -4, 0), LastUpdated: now,
		},
		{
			ID: "bike", Name: "Bike", Type: model.GoalGadget, Priority: model.PriorityLow,
			TargetAmount: 40000, CurrentAmount: 36000,
			MonthlyContribution: 2000, CreatedDate: now.AddDate(0, -6, 0), LastUpdated: now,
		},
	}
	if err := db.SaveGoals(goals); err != nil {
		t.Fatal(err)
	}

	sig := model.Signals{
		Income:   model.IncomeSignal{MonthlyIncome: 90000},
		Expenses: model.ExpenseSignal{MonthlyTotal: 60000},
	}
	return New(Config{DBPath: dbPath, Signals: sig, Logger: quietLogger(), EventsBuffer: 10}), dbPath
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Goals:          3,
		TotalSaved:     10000.1,
		TotalRemaining: 50000,
		Health:         model.HealthDistribution{OnTrack: 2, AtRisk: 1},
		Conflicts:      1,
	}
	curr := Snapshot{
		Goals:          3,
		TotalSaved:     12500.3,
		TotalRemaining: 47499.8,
		Health:         model.HealthDistribution{OnTrack: 3},
	}

	delta := diffSnapshots(prev, curr)
	if delta.Saved != 2500.2 {
		t.Fatalf("Saved delta = %v, want 2500.2", delta.Saved)
	}
	if delta.Remaining != -2500.2 {
		t.Fatalf("Remaining delta = %v, want -2500.2", delta.Remaining)
	}
	if delta.OnTrack != 1 || delta.AtRisk != -1 || delta.Conflicts != -1 {
		t.Fatalf("delta = %+v", delta)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots produced a non-zero delta")
	}
}

func TestDiffSnapshots_HealthSwap(t *testing.T) {
	prev := Snapshot{
		Goals:      2,
		Health:     model.HealthDistribution{OnTrack: 1, AtRisk: 1},
		GoalHealth: map[string]model.GoalHealth{"car": model.HealthOnTrack, "trip": model.HealthAtRisk},
	}
	curr := Snapshot{
		Goals:      2,
		Health:     model.HealthDistribution{OnTrack: 1, AtRisk: 1},
		GoalHealth: map[string]model.GoalHealth{"car": model.HealthAtRisk, "trip": model.HealthOnTrack},
	}

	delta := diffSnapshots(prev, curr)
	if delta.isZero() {
		t.Fatal("swapped goal health produced a zero delta")
	}
	if delta.OnTrack != 0 || delta.AtRisk != 0 {
		t.Errorf("OnTrack, AtRisk = %d, %d, want 0, 0", delta.OnTrack, delta.AtRisk)
	}
	if want := []string{"car", "trip"}; !slices.Equal(delta.Changed, want) {
		t.Errorf("Changed = %v, want %v", delta.Changed, want)
	}
}

func TestDiffSnapshots_GoalRemoved(t *testing.T) {
	prev := Snapshot{GoalHealth: map[string]model.GoalHealth{"car": model.HealthOnTrack, "old": model.HealthCompleted}}
	curr := Snapshot{GoalHealth: map[string]model.GoalHealth{"car": model.HealthOnTrack}}

	if got := diffSnapshots(prev, curr).Changed; !slices.Equal(got, []string{"old"}) {
		t.Errorf("Changed = %v, want [old]", got)
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Error("identical health maps produced a non-zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
		Logger:       quietLogger(),
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPublishEventFansOutToSubscribers(t *testing.T) {
	s := New(Config{Logger: quietLogger()})
	ch := make(chan Event, 1)
	id := s.addSubscriber(ch)

	s.publishEvent(Event{ID: 7, Type: "goals_delta"})
	select {
	case ev := <-ch:
		if ev.ID != 7 {
			t.Fatalf("subscriber got event %d, want 7", ev.ID)
		}
	default:
		t.Fatal("subscriber received nothing")
	}

	s.removeSubscriber(id)
	if got := s.snapshotStatus().SubscriberCount; got != 0 {
		t.Fatalf("SubscriberCount = %d after remove, want 0", got)
	}
}

func TestReportEndpointsBeforeFirstPoll(t *testing.T) {
	s := New(Config{Logger: quietLogger()})
	h := s.Handler()

	if rec := get(t, h, "/v1/report"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("/v1/report status = %d, want 503", rec.Code)
	}
	if rec := get(t, h, "/v1/goals/x/health"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("/v1/goals/x/health status = %d, want 503", rec.Code)
	}
	if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("/healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestPollServesReportAndStatus(t *testing.T) {
	s, _ := seededService(t)
	s.pollOnce()
	h := s.Handler()

	rec := get(t, h, "/v1/report")
	if rec.Code != http.StatusOK {
		t.Fatalf("/v1/report status = %d", rec.Code)
	}
	var report model.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Summary.TotalGoals != 2 || report.Summary.TotalSaved != 66000 {
		t.Errorf("Summary = %+v", report.Summary)
	}
	if len(report.GoalOrder) != 2 || report.GoalOrder[0] != "fund" {
		t.Errorf("GoalOrder = %v", report.GoalOrder)
	}

	var status Status
	if err := json.Unmarshal(get(t, h, "/v1/status").Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.PollCount != 1 || status.LastError != "" || status.Summary.Goals != 2 {
		t.Errorf("Status = %+v", status)
	}
	if status.EventCount != 1 {
		t.Errorf("EventCount = %d, want the first snapshot event", status.EventCount)
	}
}

func TestGoalHealthEndpoint(t *testing.T) {
	s, _ := seededService(t)
	s.pollOnce()
	h := s.Handler()

	rec := get(t, h, "/v1/goals/bike/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var hc model.HealthCheck
	if err := json.Unmarshal(rec.Body.Bytes(), &hc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hc.GoalID != "bike" || hc.GoalName != "Bike" || hc.CompletionPercentage != 90 {
		t.Errorf("HealthCheck = %+v", hc)
	}

	if rec := get(t, h, "/v1/goals/ghost/health"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown goal status = %d, want 404", rec.Code)
	}
}

func TestPollEmitsDeltaAfterContribution(t *testing.T) {
	s, dbPath := seededService(t)
	s.pollOnce()

	// Nothing changed: no new event.
	s.pollOnce()
	if got := s.snapshotStatus().EventCount; got != 1 {
		t.Fatalf("EventCount = %d after an idle poll, want 1", got)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Contribute("bike", 4000, time.Now(), "bonus"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	s.pollOnce()

	var events []Event
	if err := json.Unmarshal(get(t, s.Handler(), "/v1/events").Body.Bytes(), &events); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	last := events[1]
	if last.Type != "goals_delta" || last.Delta.Saved != 4000 || last.Delta.Completed != 1 {
		t.Errorf("last event = %+v", last)
	}
	if last.ID <= events[0].ID {
		t.Errorf("event ids not increasing: %d then %d", events[0].ID, last.ID)
	}
}

func TestPollFailureRecordsError(t *testing.T) {
	s := New(Config{StatePath: filepath.Join(t.TempDir(), "missing.json"), Logger: quietLogger()})
	s.pollOnce()

	st := s.snapshotStatus()
	if st.LastError == "" || st.PollCount != 1 {
		t.Fatalf("Status = %+v, want a recorded error", st)
	}
	body := get(t, s.Handler(), "/metrics").Body.String()
	if !strings.Contains(body, "nestegg_load_failures_total 1") {
		t.Errorf("metrics missing failure count:\n%s", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := seededService(t)
	s.pollOnce()

	rec := get(t, s.Handler(), "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"nestegg_analysis_passes_total 1",
		`nestegg_savings_capacity{band="moderate"} 12000`,
		"nestegg_total_saved 66000",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestWriteSSE(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSSE(rec, Event{ID: 3, Type: "snapshot"})

	body := rec.Body.String()
	if !strings.HasPrefix(body, "event: snapshot\ndata: {") || !strings.HasSuffix(body, "}\n\n") {
		t.Fatalf("SSE frame = %q", body)
	}
}
