// Package metrics exports driver lifecycle events as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
)

var (
	// Registry holds the driver collectors plus the process and Go
	// runtime collectors.
	Registry = prometheus.NewRegistry()

	iterations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cancellable",
			Subsystem: "driver",
			Name:      "iterations_total",
			Help:      "Total number of Run calls issued.",
		},
		[]string{"service"},
	)

	items = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cancellable",
			Subsystem: "driver",
			Name:      "items_total",
			Help:      "Total number of items handed to a sink.",
		},
		[]string{"service"},
	)

	exits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cancellable",
			Subsystem: "driver",
			Name:      "exits_total",
			Help:      "Total number of driver exits by terminal state.",
		},
		[]string{"service", "state"},
	)

	running = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cancellable",
			Subsystem: "driver",
			Name:      "running",
			Help:      "Current number of running drivers.",
		},
		[]string{"service"},
	)

	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cancellable",
			Subsystem: "driver",
			Name:      "run_duration_seconds",
			Help:      "Duration of a single Run call.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		},
		[]string{"service"},
	)
)

func init() {
	Registry.MustRegister(
		iterations,
		items,
		exits,
		running,
		runDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Observer records driver events into the package collectors.
type Observer struct{}

var _ cancellable.Observer = Observer{}

// NewObserver returns an Observer for cancellable.WithObserver.
func NewObserver() Observer {
	return Observer{}
}

// OnStart counts the driver as running.
func (Observer) OnStart(name, _ string) {
	running.WithLabelValues(name).Inc()
}

// OnIteration counts a Run call and records its duration.
func (Observer) OnIteration(name string, took time.Duration) {
	iterations.WithLabelValues(name).Inc()
	runDuration.WithLabelValues(name).Observe(took.Seconds())
}

// OnItem counts a delivered item.
func (Observer) OnItem(name string) {
	items.WithLabelValues(name).Inc()
}

// OnExit records the terminal state and drops the running count.
func (Observer) OnExit(name string, state cancellable.State, _ error) {
	running.WithLabelValues(name).Dec()
	exits.WithLabelValues(name, state.String()).Inc()
}
