// Package telemetry provides observability for the Delta runtime.
//
// # Components
//
//   - logging: structured logging with data-subject redaction
//   - metrics: Prometheus metrics collection and the scrape handler
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	logger.Component("serving").Info("prediction served", "latency_ms", 3)
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordInference("tabular", "default_tabular", "ok", elapsed)
//
// # Subject protection
//
// Data-subject identifiers logged under the subject_id or subject keys are
// rewritten to stable digest tokens (subj-<hex8>) before reaching any log
// sink, so log lines stay correlatable per subject without carrying the
// raw id.
package telemetry
