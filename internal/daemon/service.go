// Package daemon provides the long-running goal monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
	"github.com/theirongolddev/nestegg/internal/pipeline"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	StatePath    string
	Signals      model.Signals
	Settings     pipeline.Settings
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Logger       *slog.Logger
	// Registry receives the daemon's collectors. A private registry is
	// created when nil.
	Registry *prometheus.Registry
}

// Snapshot is a compact goal state for status/event payloads.
type Snapshot struct {
	At               time.Time                   `json:"at"`
	Goals            int                         `json:"goals"`
	TotalTarget      float64                     `json:"total_target"`
	TotalSaved       float64                     `json:"total_saved"`
	TotalRemaining   float64                     `json:"total_remaining"`
	OverallProgress  float64                     `json:"overall_progress"`
	Health           model.HealthDistribution    `json:"health"`
	Conflicts        int                         `json:"conflicts"`
	Insights         int                         `json:"insights"`
	ModerateCapacity float64                     `json:"moderate_capacity"`
	GoalHealth       map[string]model.GoalHealth `json:"goal_health"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Goals       int     `json:"goals"`
	Saved       float64 `json:"saved"`
	Remaining   float64 `json:"remaining"`
	OnTrack     int     `json:"on_track"`
	AtRisk      int     `json:"at_risk"`
	OffTrack    int     `json:"off_track"`
	Unrealistic int     `json:"unrealistic"`
	Completed   int     `json:"completed"`
	Conflicts   int     `json:"conflicts"`

	// Changed lists goals whose health status moved, sorted by id.
	Changed []string `json:"changed,omitempty"`
}

func (d Delta) isZero() bool {
	return len(d.Changed) == 0 &&
		d.Goals == 0 && d.Saved == 0 && d.Remaining == 0 &&
		d.OnTrack == 0 && d.AtRisk == 0 && d.OffTrack == 0 &&
		d.Unrealistic == 0 && d.Completed == 0 && d.Conflicts == 0
}

// Event is emitted whenever the goal snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Source          string    `json:"source"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	log     *slog.Logger
	metrics *metrics

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	goals       []model.SavingsGoal
	pass        pipeline.Pass
	report      *model.Report
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 60 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	return &Service{
		cfg:       cfg,
		log:       cfg.Logger,
		metrics:   newMetrics(cfg.Registry),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the daemon's HTTP routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/report", s.handleReport)
	mux.HandleFunc("GET /v1/goals/{id}/health", s.handleGoalHealth)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	mux.Handle("GET /metrics", s.metrics.handler(s.cfg.Registry))
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("daemon listening", slog.String("addr", s.cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.log.Info("daemon shutting down")
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	start := time.Now()
	snap, err := pipeline.LoadSnapshot(pipeline.LoadOptions{
		DBPath:    s.cfg.DBPath,
		StatePath: s.cfg.StatePath,
		Signals:   s.cfg.Signals,
		Now:       start,
	})
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		s.metrics.failures.Inc()
		s.log.Error("daemon poll failed", slog.String("error", err.Error()))
		return
	}

	pass := snap.Pass(s.cfg.Settings)
	report := pipeline.Analyze(snap.Goals, pass)
	s.metrics.observe(report, time.Since(start))

	compact := snapshotFromReport(report)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = compact
	s.goals = snap.Goals
	s.pass = pass
	s.report = &report
	s.lastPollAt = start
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: start,
			Snapshot:  compact,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, compact)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "goals_delta",
				Timestamp: start,
				Snapshot:  compact,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.log.Debug("daemon event", slog.String("type", ev.Type), slog.Int64("id", ev.ID))
		s.publishEvent(ev)
	}
}

func snapshotFromReport(r model.Report) Snapshot {
	health := make(map[string]model.GoalHealth, len(r.Goals))
	for id, ga := range r.Goals {
		health[id] = ga.HealthStatus
	}
	return Snapshot{
		At:               r.ReportGenerated,
		Goals:            r.Summary.TotalGoals,
		TotalTarget:      r.Summary.TotalTargetAmount,
		TotalSaved:       r.Summary.TotalSaved,
		TotalRemaining:   r.Summary.TotalRemaining,
		OverallProgress:  r.Summary.OverallProgress,
		Health:           r.Summary.HealthDistribution,
		Conflicts:        len(r.Conflicts),
		Insights:         len(r.Insights),
		ModerateCapacity: r.SavingsCapacity.Moderate,
		GoalHealth:       health,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Goals:       curr.Goals - prev.Goals,
		Saved:       money.Sub(curr.TotalSaved, prev.TotalSaved),
		Remaining:   money.Sub(curr.TotalRemaining, prev.TotalRemaining),
		OnTrack:     curr.Health.OnTrack - prev.Health.OnTrack,
		AtRisk:      curr.Health.AtRisk - prev.Health.AtRisk,
		OffTrack:    curr.Health.OffTrack - prev.Health.OffTrack,
		Unrealistic: curr.Health.Unrealistic - prev.Health.Unrealistic,
		Completed:   curr.Health.Completed - prev.Health.Completed,
		Conflicts:   curr.Conflicts - prev.Conflicts,
		Changed:     healthChanges(prev.GoalHealth, curr.GoalHealth),
	}
}

// healthChanges returns the ids whose status differs between the two
// maps, including goals that appeared or disappeared.
func healthChanges(prev, curr map[string]model.GoalHealth) []string {
	var ids []string
	for id, h := range curr {
		if old, ok := prev[id]; !ok || old != h {
			ids = append(ids, id)
		}
	}
	for id := range prev {
		if _, ok := curr[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) source() string {
	if s.cfg.StatePath != "" {
		return s.cfg.StatePath
	}
	if s.cfg.DBPath != "" {
		return s.cfg.DBPath
	}
	return pipeline.DBPath()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Source:          s.source(),
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		writeError(w, http.StatusServiceUnavailable, "no report yet")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleGoalHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ready := s.report != nil
	goals := s.goals
	pass := s.pass
	s.mu.RUnlock()

	if !ready {
		writeError(w, http.StatusServiceUnavailable, "no report yet")
		return
	}

	hc, err := pipeline.CheckGoal(goals, r.PathValue("id"), pass)
	if errors.Is(err, pipeline.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, hc)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
