// Package metrics holds the portal's Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds every portal metric plus the Go and process collectors.
var Registry = prometheus.NewRegistry()

var (
	// Catalog metrics
	catalogFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vmportal",
			Subsystem: "catalog",
			Name:      "fetch_total",
			Help:      "Total number of catalog fetches by kind and result",
		},
		[]string{"kind", "result"},
	)

	catalogFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vmportal",
			Subsystem: "catalog",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of catalog fetches in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"kind"},
	)

	// Workflow metrics
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vmportal",
			Subsystem: "workflow",
			Name:      "submissions_total",
			Help:      "Total number of submit attempts by result",
		},
		[]string{"result"},
	)

	staleCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vmportal",
			Subsystem: "workflow",
			Name:      "stale_completions_total",
			Help:      "Async completions dropped because their cycle or fetch was superseded",
		},
		[]string{"source"},
	)

	// Creation action metrics
	machinesCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vmportal",
			Subsystem: "machines",
			Name:      "create_total",
			Help:      "Total number of machine create calls by result",
		},
		[]string{"result"},
	)

	machineCreateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vmportal",
			Subsystem: "machines",
			Name:      "create_duration_seconds",
			Help:      "Duration of machine create calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 9), // 1s to ~8.5min
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		catalogFetchTotal,
		catalogFetchDuration,
		submissionsTotal,
		staleCompletionsTotal,
		machinesCreatedTotal,
		machineCreateDuration,
	)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordCatalogFetch records one catalog fetch.
func RecordCatalogFetch(kind string, duration time.Duration, err error) {
	catalogFetchTotal.WithLabelValues(kind, result(err)).Inc()
	catalogFetchDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordSubmission records a submit attempt. Rejected attempts failed
// validation and never reached the creation action.
func RecordSubmission(accepted bool) {
	if accepted {
		submissionsTotal.WithLabelValues("accepted").Inc()
		return
	}
	submissionsTotal.WithLabelValues("rejected").Inc()
}

// RecordStaleCompletion records a dropped async completion. Source is a
// catalog kind or "create".
func RecordStaleCompletion(source string) {
	staleCompletionsTotal.WithLabelValues(source).Inc()
}

// RecordMachineCreate records one creation action call.
func RecordMachineCreate(duration time.Duration, err error) {
	machinesCreatedTotal.WithLabelValues(result(err)).Inc()
	machineCreateDuration.Observe(duration.Seconds())
}
