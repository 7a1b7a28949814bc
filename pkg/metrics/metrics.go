// Package metrics provides Prometheus metrics for dataglide's reference
// runner. Metrics are registered once at package load through promauto and
// labeled by driver so pipelines against several databases stay separable.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsRead counts records produced by read transforms
	RecordsRead = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataglide_records_read_total",
		Help: "Total number of records read from a database source",
	}, []string{"driver"})

	// RecordsWritten counts records consumed by write transforms
	RecordsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataglide_records_written_total",
		Help: "Total number of records written to a database sink",
	}, []string{"driver"})

	// BatchesCommitted counts committed write batches
	BatchesCommitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataglide_batches_committed_total",
		Help: "Total number of write batches committed",
	}, []string{"driver"})

	// TransformDuration tracks end-to-end transform execution latency
	TransformDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dataglide_transform_duration_seconds",
		Help:    "Duration of read/write transform execution",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
	}, []string{"driver", "operation"})

	// TransformErrors counts failed transform executions
	TransformErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataglide_transform_errors_total",
		Help: "Total number of failed transform executions",
	}, []string{"driver", "operation"})
)

// Timer measures the duration of a single transform execution.
type Timer struct {
	start     time.Time
	driver    string
	operation string
}

// NewTimer starts a timer for the given driver and operation label pair.
func NewTimer(driver, operation string) *Timer {
	return &Timer{
		start:     time.Now(),
		driver:    driver,
		operation: operation,
	}
}

// Stop records the elapsed duration and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	TransformDuration.WithLabelValues(t.driver, t.operation).Observe(elapsed.Seconds())
	return elapsed
}
