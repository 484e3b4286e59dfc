// Package serving orchestrates the governed model lifecycle: dataset
// ingestion, policy-gated training, activation, consent-gated inference
// with deterministic routing and engine fallback, and the governance
// export surface (model cards and datasheets).
//
// The Service holds no global state; every collaborator (registry, active
// slot, consent store, router, engines, worker pool, metadata store, audit
// backend, metrics) is injected at construction so tests run in isolation.
//
// The inference control flow is fixed:
//
//	consent gate → active-model snapshot → payload decode → route →
//	reconcile against the active family → engine dispatch (with the one
//	text-to-tabular fallback) → merged body → audit hash → prediction
//
// The router and engines never execute after a consent failure, and the
// audit-trail append is best effort: a storage failure is logged and never
// fails the prediction.
package serving
