package daemon

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theirongolddev/nestegg/internal/model"
)

type metrics struct {
	passes    prometheus.Counter
	failures  prometheus.Counter
	duration  prometheus.Histogram
	goals     *prometheus.GaugeVec
	capacity  *prometheus.GaugeVec
	saved     prometheus.Gauge
	remaining prometheus.Gauge
	conflicts prometheus.Gauge
}

func newMetrics(reg *prometheus.Registry) *metrics {
	f := promauto.With(reg)
	return &metrics{
		passes: f.NewCounter(prometheus.CounterOpts{
			Name: "nestegg_analysis_passes_total",
			Help: "Total number of completed analysis passes",
		}),
		failures: f.NewCounter(prometheus.CounterOpts{
			Name: "nestegg_load_failures_total",
			Help: "Total number of polls that could not load a snapshot",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nestegg_analysis_duration_seconds",
			Help:    "Time taken to load and analyse one snapshot",
			Buckets: prometheus.DefBuckets,
		}),
		goals: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nestegg_goals",
			Help: "Goals by health status in the latest report",
		}, []string{"health"}),
		capacity: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nestegg_savings_capacity",
			Help: "Monthly savings capacity band in the latest report",
		}, []string{"band"}),
		saved: f.NewGauge(prometheus.GaugeOpts{
			Name: "nestegg_total_saved",
			Help: "Sum of current amounts across goals",
		}),
		remaining: f.NewGauge(prometheus.GaugeOpts{
			Name: "nestegg_total_remaining",
			Help: "Sum of remaining amounts across goals",
		}),
		conflicts: f.NewGauge(prometheus.GaugeOpts{
			Name: "nestegg_conflicts",
			Help: "Conflicts detected in the latest report",
		}),
	}
}

func (m *metrics) observe(r model.Report, took time.Duration) {
	m.passes.Inc()
	m.duration.Observe(took.Seconds())

	d := r.Summary.HealthDistribution
	m.goals.WithLabelValues(string(model.HealthOnTrack)).Set(float64(d.OnTrack))
	m.goals.WithLabelValues(string(model.HealthAtRisk)).Set(float64(d.AtRisk))
	m.goals.WithLabelValues(string(model.HealthOffTrack)).Set(float64(d.OffTrack))
	m.goals.WithLabelValues(string(model.HealthUnrealistic)).Set(float64(d.Unrealistic))
	m.goals.WithLabelValues(string(model.HealthCompleted)).Set(float64(d.Completed))

	c := r.SavingsCapacity
	m.capacity.WithLabelValues("conservative").Set(c.Conservative)
	m.capacity.WithLabelValues("moderate").Set(c.Moderate)
	m.capacity.WithLabelValues("aggressive").Set(c.Aggressive)
	m.capacity.WithLabelValues("maximum").Set(c.Maximum)

	m.saved.Set(r.Summary.TotalSaved)
	m.remaining.Set(r.Summary.TotalRemaining)
	m.conflicts.Set(float64(len(r.Conflicts)))
}

func (m *metrics) handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
