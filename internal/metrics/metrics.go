// Package metrics exposes the planner's Prometheus instruments.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names
const (
	MetricHTTPRequestsTotal      = "debtplanner_http_requests_total"
	MetricHTTPRequestDuration    = "debtplanner_http_request_duration_seconds"
	MetricSimulationsTotal       = "debtplanner_simulations_total"
	MetricSimulationDuration     = "debtplanner_simulation_duration_seconds"
	MetricSimulationMonths       = "debtplanner_simulation_months"
	MetricAnomaliesTotal         = "debtplanner_engine_anomalies_total"
	MetricPlanCacheTotal         = "debtplanner_plan_cache_total"
	MetricFundingsSettledTotal   = "debtplanner_fundings_settled_total"
	MetricSnapshotsRecordedTotal = "debtplanner_plan_snapshots_recorded_total"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds the instruments and the registry they are registered on.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	Simulations        *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	SimulationMonths   *prometheus.HistogramVec
	Anomalies          *prometheus.CounterVec
	PlanCache          *prometheus.CounterVec
	FundingsSettled    prometheus.Counter
	SnapshotsRecorded  prometheus.Counter
}

// New creates the instruments on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPRequestDuration,
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricSimulationsTotal,
			Help: "Payoff simulations by kind and outcome",
		}, []string{"kind", "outcome"}),
		SimulationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricSimulationDuration,
			Help:    "Time spent running payoff simulations",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"kind"}),
		SimulationMonths: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricSimulationMonths,
			Help:    "Simulated months until payoff",
			Buckets: []float64{6, 12, 24, 36, 60, 120, 240, 600, 1200},
		}, []string{"kind"}),
		Anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricAnomaliesTotal,
			Help: "Inputs and results corrected by the payoff engine",
		}, []string{"kind"}),
		PlanCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPlanCacheTotal,
			Help: "Plan cache lookups by result",
		}, []string{"result"}),
		FundingsSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricFundingsSettledTotal,
			Help: "One-time fundings marked as applied",
		}),
		SnapshotsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSnapshotsRecordedTotal,
			Help: "Plan snapshots written",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.Simulations,
		m.SimulationDuration,
		m.SimulationMonths,
		m.Anomalies,
		m.PlanCache,
		m.FundingsSettled,
		m.SnapshotsRecorded,
	)
	return m
}

// Registry returns the registry the instruments live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request. route is the matched route
// template, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveSimulation records one engine run.
func (m *Metrics) ObserveSimulation(kind, outcome string, months int, d time.Duration) {
	if m == nil {
		return
	}
	m.Simulations.WithLabelValues(kind, outcome).Inc()
	m.SimulationDuration.WithLabelValues(kind).Observe(d.Seconds())
	if months >= 0 {
		m.SimulationMonths.WithLabelValues(kind).Observe(float64(months))
	}
}

// RecordAnomaly counts one engine anomaly.
func (m *Metrics) RecordAnomaly(kind string) {
	if m == nil {
		return
	}
	m.Anomalies.WithLabelValues(kind).Inc()
}

// RecordCache counts one plan cache lookup.
func (m *Metrics) RecordCache(result string) {
	if m == nil {
		return
	}
	m.PlanCache.WithLabelValues(result).Inc()
}

// AddFundingsSettled counts fundings settled by the pipeline.
func (m *Metrics) AddFundingsSettled(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.FundingsSettled.Add(float64(n))
}

// AddSnapshotsRecorded counts plan snapshots written.
func (m *Metrics) AddSnapshotsRecorded(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SnapshotsRecorded.Add(float64(n))
}
