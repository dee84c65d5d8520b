package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OperationSchema = "schema"
	OperationData   = "data"
	OperationStage  = "stage"
)

var (
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filequery_operations_total",
			Help: "Total number of reader operations by operation and status.",
		},
		[]string{"operation", "status"},
	)
	operationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filequery_operation_duration_seconds",
			Help:    "Reader operation latency by operation.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	rowsReturnedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "filequery_rows_returned_total",
			Help: "Total number of rows materialized by data reads.",
		},
	)
	stagedBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "filequery_staged_bytes_total",
			Help: "Total bytes downloaded from object storage into local staging.",
		},
	)
	openSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "filequery_open_sessions",
			Help: "Current number of open engine sessions.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		operationsTotal,
		operationDurationSeconds,
		rowsReturnedTotal,
		stagedBytesTotal,
		openSessions,
	)
}

// ObserveOperation records one reader operation. status is an error class
// such as "ok" or "file_not_found".
func ObserveOperation(operation, status string, elapsed time.Duration) {
	operationsTotal.WithLabelValues(operation, status).Inc()
	operationDurationSeconds.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func ObserveRows(rows int) {
	if rows > 0 {
		rowsReturnedTotal.Add(float64(rows))
	}
}

func ObserveStagedBytes(bytes int64) {
	if bytes > 0 {
		stagedBytesTotal.Add(float64(bytes))
	}
}

func SessionOpened() {
	openSessions.Inc()
}

func SessionClosed() {
	openSessions.Dec()
}
