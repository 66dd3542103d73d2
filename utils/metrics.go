package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	ResourceOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_operations_total",
			Help: "Total number of note and bookmark operations",
		},
		[]string{"resource", "operation"}, // note|bookmark, create|update|delete
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, register/login/token
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by kind",
		},
		[]string{"kind"},
	)
)

// TrackDBOperation starts a timer; call ObserveDuration when the operation ends.
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

func TrackResourceOperation(resource, operation string) {
	ResourceOperationsTotal.WithLabelValues(resource, operation).Inc()
}

func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

func TrackError(kind string) {
	ErrorsTotal.WithLabelValues(kind).Inc()
}
