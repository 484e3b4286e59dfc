// Package storage persists audit records. Two backends cover the closed
// set of deployments: an in-memory backend for tests and ephemeral runs,
// and a SQLite backend for durable audit trails.
//
// Audit persistence is strictly best-effort from the serving layer's point
// of view: a write failure is logged and the prediction still returns.
package storage
