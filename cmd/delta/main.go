// Delta is a governed model-serving runtime for consent-gated inference.
//
// It manages the full lifecycle of small supervised models under
// governance constraints:
//   - Dataset ingestion with deterministic identifiers and datasheets
//   - Training gated by differential-privacy and fairness policy checks
//   - Versioned model registry with a single active serving slot
//   - Consent-gated inference with deterministic routing and fallback
//   - Tamper-evident WhyLog audit records for every prediction
//
// Usage:
//
//	# Register a dataset
//	delta ingest rows.csv --schema '{"columns":["age","bmi"]}'
//
//	# Train a model version against it
//	delta train ds-1a2b3c4d train.json
//
//	# Select the version that serves inference
//	delta activate tabular-logreg-0f9e8d7c
//
//	# Score a request
//	delta infer --purpose care --subject s-17 '{"age":41,"bmi":22.5}'
//
//	# Export governance documents
//	delta export card tabular-logreg-0f9e8d7c
//	delta export datasheet ds-1a2b3c4d
//
//	# Run the long-lived process (metrics endpoint, retention pruning)
//	delta serve
package main

func main() {
	Execute()
}
