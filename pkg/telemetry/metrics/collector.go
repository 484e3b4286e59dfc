package metrics

import (
	"time"

	"deltaml/delta/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the orchestrator for all Prometheus metrics in the serving
// runtime. It manages metric registration and provides a unified interface
// for recording metrics across components.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Inference metrics
	inference *InferenceMetrics

	// Governance metrics
	governance *GovernanceMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "delta",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = "delta"
	}
	if len(cfg.LatencyBuckets) == 0 {
		// Inference latencies: sub-millisecond scoring up to slow storage paths
		cfg.LatencyBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.inference = NewInferenceMetrics(cfg, registry)
	c.governance = NewGovernanceMetrics(cfg, registry)

	return c
}

// RecordInference records metrics for a completed inference request.
//
// Parameters:
//   - target: serving target ("tabular", "text")
//   - reason: routing reason ("feature_override", "long_text", "default_tabular")
//   - status: outcome code name ("ok", "no_consent", "invalid_input", ...)
//   - duration: end-to-end serving duration
func (c *Collector) RecordInference(target, reason, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.inference.RecordInference(target, reason, status, duration)
}

// RecordFallback records one text-to-tabular fallback.
func (c *Collector) RecordFallback() {
	if !c.config.Enabled {
		return
	}
	c.inference.RecordFallback()
}

// RecordTraining records the outcome of a training request.
//
// Parameters:
//   - kind: model kind label ("tabular-logreg", "tabular-gbdt", "text-minilm")
//   - status: outcome code name ("ok", "policy_denied", ...)
func (c *Collector) RecordTraining(kind, status string) {
	if !c.config.Enabled {
		return
	}
	c.governance.RecordTraining(kind, status)
}

// RecordPolicyDenial records a training-governance gate denial.
//
// Parameters:
//   - reason: gate reason code (for example "dp_epsilon_exceeded")
func (c *Collector) RecordPolicyDenial(reason string) {
	if !c.config.Enabled {
		return
	}
	c.governance.RecordPolicyDenial(reason)
}

// RecordConsentDenial records a consent-gate denial.
func (c *Collector) RecordConsentDenial() {
	if !c.config.Enabled {
		return
	}
	c.governance.RecordConsentDenial()
}

// SetActiveModel updates the active-model info gauge. Passing empty values
// clears the previous selection.
func (c *Collector) SetActiveModel(modelID, version string) {
	if !c.config.Enabled {
		return
	}
	c.governance.SetActiveModel(modelID, version)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
