// Package metrics exposes resolution counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	resolutionsTotal      prometheus.Counter
	resolutionErrorsTotal prometheus.Counter
	resolutionDuration    prometheus.Histogram
	artifactSetsVisited   prometheus.Counter
	cyclesTolerated       prometheus.Counter
	selectionsTotal       *prometheus.CounterVec
	selectionErrorsTotal  prometheus.Counter
	buildTasksPlanned     prometheus.Gauge
}

// New creates the resolution metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buildgraph_resolutions_total",
			Help: "Number of graph traversals that collected artifacts.",
		}),
		resolutionErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buildgraph_resolution_errors_total",
			Help: "Number of graph descriptions that could not be loaded.",
		}),
		resolutionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "buildgraph_resolution_duration_seconds",
			Help:    "Time taken to traverse a graph and collect its artifacts.",
			Buckets: prometheus.DefBuckets,
		}),
		artifactSetsVisited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buildgraph_artifact_sets_visited_total",
			Help: "Number of artifact sets visited, counting repeated visits.",
		}),
		cyclesTolerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buildgraph_cycles_tolerated_total",
			Help: "Number of edges skipped because they closed a dependency cycle.",
		}),
		selectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "buildgraph_selections_total",
			Help: "Number of artifact selections by cache outcome.",
		}, []string{"cache"}),
		selectionErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buildgraph_selection_errors_total",
			Help: "Number of artifact selections that failed.",
		}),
		buildTasksPlanned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "buildgraph_build_tasks_planned",
			Help: "Number of build tasks in the last plan.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.resolutionsTotal,
		m.resolutionErrorsTotal,
		m.resolutionDuration,
		m.artifactSetsVisited,
		m.cyclesTolerated,
		m.selectionsTotal,
		m.selectionErrorsTotal,
		m.buildTasksPlanned,
	)
	return m
}

// Registry returns the registry all metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveResolution(elapsed time.Duration, artifactSets, cycles int) {
	m.resolutionsTotal.Inc()
	m.resolutionDuration.Observe(elapsed.Seconds())
	m.artifactSetsVisited.Add(float64(artifactSets))
	m.cyclesTolerated.Add(float64(cycles))
}

func (m *Metrics) ResolutionFailed() {
	m.resolutionErrorsTotal.Inc()
}

func (m *Metrics) ObserveSelection(cached bool) {
	outcome := "miss"
	if cached {
		outcome = "hit"
	}
	m.selectionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SelectionFailed() {
	m.selectionErrorsTotal.Inc()
}

func (m *Metrics) ObservePlan(tasks int) {
	m.buildTasksPlanned.Set(float64(tasks))
}
