// Package metrics provides Prometheus metrics collection for the serving
// runtime.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring
// inference serving, routing decisions, training governance, and consent
// outcomes. Metric collection is cheap enough to sit on the request path.
//
// # Metrics Categories
//
//   - Inference Metrics: Request count by target/reason/status, latency,
//     and text-to-tabular fallbacks
//   - Governance Metrics: Training outcomes by kind, policy-gate denials
//     by reason code, and consent denials
//
// # Usage
//
//	// Create collector
//	collector := metrics.NewCollector(cfg, nil)
//
//	// Record a served inference
//	collector.RecordInference("tabular", "default_tabular", "ok", latency)
//
//	// Record governance outcomes
//	collector.RecordTraining("tabular-gbdt", "ok")
//	collector.RecordPolicyDenial("dp_epsilon_exceeded")
//
//	// Expose the scrape endpoint
//	http.Handle("/metrics", collector.Handler())
package metrics
