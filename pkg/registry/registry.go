package registry

import (
	"sync"

	"deltaml/delta/pkg/model"
	"deltaml/delta/pkg/status"
)

// versionKey uniquely identifies a stored version.
type versionKey struct {
	id      model.ModelID
	version model.VersionName
}

// Registry is the concurrency-safe versioned model store. It owns every
// inserted Version exclusively; lookups return copies.
//
// A single mutex guards both maps. The critical sections are map
// operations only, so one lock for the whole registry stays cheap at this
// scale; inserts for different ids contend only for that short window.
type Registry struct {
	mu      sync.Mutex
	entries map[versionKey]model.Version
	latest  map[model.ModelID]model.VersionName
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[versionKey]model.Version),
		latest:  make(map[model.ModelID]model.VersionName),
	}
}

// Insert stores a version keyed by (id, version) and unconditionally moves
// the latest pointer for that id to it. Last write wins: when two inserts
// race, lock acquisition order decides which version ends up latest.
func (r *Registry) Insert(v model.Version) {
	stored := v.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[versionKey{id: stored.ID, version: stored.Version}] = stored
	r.latest[stored.ID] = stored.Version
}

// Get returns the exact version, or a ModelMissing error when the pair has
// never been inserted.
func (r *Registry) Get(id model.ModelID, version model.VersionName) (model.Version, error) {
	r.mu.Lock()
	v, ok := r.entries[versionKey{id: id, version: version}]
	r.mu.Unlock()
	if !ok {
		return model.Version{}, status.ModelMissing("model_version")
	}
	return v.Clone(), nil
}

// Latest returns the version the latest pointer references, or a
// ModelMissing error when the id has never been inserted.
func (r *Registry) Latest(id model.ModelID) (model.Version, error) {
	r.mu.Lock()
	version, ok := r.latest[id]
	var v model.Version
	if ok {
		v, ok = r.entries[versionKey{id: id, version: version}]
	}
	r.mu.Unlock()
	if !ok {
		return model.Version{}, status.ModelMissing("model_version")
	}
	return v.Clone(), nil
}

// Versions returns every stored version for the id, unordered. Used by
// startup rehydration and the export surface.
func (r *Registry) Versions(id model.ModelID) []model.Version {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Version
	for key, v := range r.entries {
		if key.id == id {
			out = append(out, v.Clone())
		}
	}
	return out
}

// Len returns the number of stored versions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
