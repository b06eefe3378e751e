package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ffv_validation_duration_seconds",
			Help:    "Duration of a validation run in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffv_validation_total",
			Help: "Total number of validation runs",
		},
		[]string{"status"}, // pass, fail or error
	)

	findingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffv_findings_total",
			Help: "Total number of findings reported",
		},
		[]string{"kind"},
	)

	rowsValidated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ffv_rows_validated_total",
			Help: "Total number of dataset rows validated",
		},
	)
)
