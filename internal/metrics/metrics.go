package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "district_quiz"

// Answer results.
const (
	ResultCorrect   = "correct"
	ResultIncorrect = "incorrect"
)

// Metrics groups the quiz collectors.
type Metrics struct {
	Answers        *prometheus.CounterVec
	Skips          prometheus.Counter
	Finishes       prometheus.Counter
	Restarts       prometheus.Counter
	Reshuffles     prometheus.Counter
	ActiveSessions prometheus.Gauge

	CatalogLoads    *prometheus.CounterVec
	CatalogLoadTime *prometheus.HistogramVec
	CatalogRecords  prometheus.Gauge
}

// New registers the quiz collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Answers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Evaluated answers by result.",
		}, []string{"result"}),
		Skips: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skips_total",
			Help:      "Skipped questions.",
		}),
		Finishes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finishes_total",
			Help:      "Recaps requested.",
		}),
		Restarts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restarts_total",
			Help:      "Session restarts.",
		}),
		Reshuffles: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reshuffles_total",
			Help:      "Pools exhausted and reshuffled.",
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Connected quiz sessions.",
		}),
		CatalogLoads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Record set load attempts by source and status.",
		}, []string{"source", "status"}),
		CatalogLoadTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_load_seconds",
			Help:      "Record set load latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		CatalogRecords: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_records",
			Help:      "Records in the current set.",
		}),
	}
}

// ObserveAnswer counts an evaluated answer.
func (m *Metrics) ObserveAnswer(correct bool) {
	result := ResultIncorrect
	if correct {
		result = ResultCorrect
	}
	m.Answers.WithLabelValues(result).Inc()
}

// ObserveLoad records a catalog load attempt.
func (m *Metrics) ObserveLoad(source string, elapsed time.Duration, records int, err error) {
	m.CatalogLoadTime.WithLabelValues(source).Observe(elapsed.Seconds())
	if err != nil {
		m.CatalogLoads.WithLabelValues(source, "error").Inc()
		return
	}
	m.CatalogLoads.WithLabelValues(source, "ok").Inc()
	m.CatalogRecords.Set(float64(records))
}
