// Package metadata persists governance metadata across process restarts:
// ingested dataset records, trained model versions, and the active-model
// selection. The in-memory registry and serving slot are rehydrated from
// this store at startup.
//
// Two backends are provided: an in-memory store for tests and ephemeral
// deployments, and a SQLite store for single-instance durability.
package metadata
