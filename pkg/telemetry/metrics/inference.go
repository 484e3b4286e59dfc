package metrics

import (
	"time"

	"deltaml/delta/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// InferenceMetrics tracks metrics for inference serving.
//
// Metrics:
//   - delta_inferences_total: Request count by target, reason, status
//   - delta_inference_duration_seconds: End-to-end serving latency
//   - delta_inference_fallbacks_total: Text-to-tabular fallbacks
type InferenceMetrics struct {
	// Total inference count
	inferencesTotal *prometheus.CounterVec

	// Serving latency histogram
	duration *prometheus.HistogramVec

	// Fallback count
	fallbacksTotal prometheus.Counter
}

// NewInferenceMetrics creates and registers inference metrics with the
// provided registry.
func NewInferenceMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *InferenceMetrics {
	im := &InferenceMetrics{
		inferencesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "inferences_total",
				Help:      "Total number of inference requests processed",
			},
			[]string{"target", "reason", "status"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "inference_duration_seconds",
				Help:      "End-to-end inference serving latency in seconds",
				Buckets:   cfg.LatencyBuckets,
			},
			[]string{"target"},
		),

		fallbacksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "inference_fallbacks_total",
				Help:      "Total number of text-to-tabular fallbacks",
			},
		),
	}

	registry.MustRegister(
		im.inferencesTotal,
		im.duration,
		im.fallbacksTotal,
	)

	return im
}

// RecordInference records metrics for one completed inference request.
func (im *InferenceMetrics) RecordInference(target, reason, status string, duration time.Duration) {
	im.inferencesTotal.WithLabelValues(target, reason, status).Inc()
	im.duration.WithLabelValues(target).Observe(duration.Seconds())
}

// RecordFallback records one fallback.
func (im *InferenceMetrics) RecordFallback() {
	im.fallbacksTotal.Inc()
}
