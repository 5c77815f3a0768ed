package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersSynced tracks per-order outcomes. status: success, failure
	OrdersSynced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netsuite_orders_synced_total",
		Help: "Total number of order synchronization attempts by outcome",
	}, []string{"status"})

	// WriteBackFailures counts orders that synchronized externally but whose
	// local external-ID update failed. Anything above zero needs a human.
	WriteBackFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netsuite_writeback_failures_total",
		Help: "Total number of external-ID write-back failures after a successful callout",
	})

	// CalloutDuration measures the RESTlet round trip. The 60s bucket edge
	// matches the callout timeout
	CalloutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netsuite_callout_duration_seconds",
		Help:    "Duration of a single NetSuite RESTlet call in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	// BatchDuration measures end-to-end batch processing time
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netsuite_batch_duration_seconds",
		Help:    "Duration of one batch of order synchronizations in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// BatchSize tracks how many order IDs each trigger carried
	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netsuite_batch_size",
		Help:    "Number of order identifiers per batch trigger",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
	})

	// HealthStatus provides a binary 0/1 signal for the worker's health
	// 1 = Healthy, 0 = Unhealthy (broker link is down)
	HealthStatus = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "netsuite_worker_healthy",
		Help: "Current health status of the sync worker (1 for healthy, 0 for unhealthy)",
	})
)
