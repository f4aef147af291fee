// Package metrics exposes prometheus instrumentation for the grading API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Grade outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeQuota        = "quota_exceeded"
	OutcomeEmptyBoard   = "empty_board"
	OutcomeOracleFailed = "oracle_failed"
)

var (
	// GradeRequests counts grading requests by outcome.
	GradeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grade_requests_total",
		Help: "Grading requests by outcome.",
	}, []string{"outcome"})

	// GradeDuration observes end-to-end grading latency, dominated by the
	// reasoning-model call.
	GradeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grade_duration_seconds",
		Help:    "End-to-end grading request duration.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)
