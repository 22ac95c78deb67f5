// Package metrics provides Prometheus metrics for sumdoc.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sumdoc"

// Outcome labels.
const (
	StatusOK       = "ok"
	StatusInvalid  = "invalid"
	StatusUpstream = "upstream_error"
	StatusError    = "error"
)

var (
	// RequestsTotal counts summarize and download requests by outcome.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of summarization requests",
		},
		[]string{"operation", "status"},
	)

	// SummarizeDuration measures calls to the hosted model.
	SummarizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summarize_duration_seconds",
			Help:      "Duration of hosted model calls in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "status"},
	)

	// InputLength observes the size of submitted text.
	InputLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "input_length_bytes",
			Help:      "Distribution of submitted text sizes",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		},
	)

	// DocumentsTotal counts rendered documents by format.
	DocumentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Total number of rendered documents",
		},
		[]string{"format", "status"},
	)
)

// RecordRequest records a finished summarize or download request.
func RecordRequest(operation, status string) {
	RequestsTotal.WithLabelValues(operation, status).Inc()
}

// RecordSummarize records a hosted model call.
func RecordSummarize(provider, status string, seconds float64) {
	SummarizeDuration.WithLabelValues(provider, status).Observe(seconds)
}

func RecordInput(size int) {
	InputLength.Observe(float64(size))
}

// RecordRender records a rendered document.
func RecordRender(format, status string) {
	DocumentsTotal.WithLabelValues(format, status).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
