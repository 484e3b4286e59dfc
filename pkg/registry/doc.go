// Package registry holds the runtime's shared model state: the versioned
// model store with its latest-version index, and the single active-model
// slot read by every concurrent inference call.
//
// Both structures follow the same locking discipline: one exclusive lock
// each, held only for the map or slot operation itself and never across a
// call into another component. Callers always receive copies, so nothing
// downstream can mutate stored records and no lock is held while an engine
// runs. The two locks are never nested within one another.
package registry
