package metadata

import (
	"context"
	"sync"
	"time"

	"deltaml/delta/pkg/dataset"
	"deltaml/delta/pkg/model"
)

// MemoryStore is an in-memory Store for tests and ephemeral deployments.
// Contents are lost on process exit.
type MemoryStore struct {
	mu         sync.RWMutex
	datasets   []dataset.Dataset
	versions   []model.Version
	activation *Activation
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveDataset upserts a dataset record keyed by its id.
func (m *MemoryStore) SaveDataset(_ context.Context, ds dataset.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.datasets {
		if m.datasets[i].ID == ds.ID {
			m.datasets[i] = ds
			return nil
		}
	}
	m.datasets = append(m.datasets, ds)
	return nil
}

// GetDataset returns the dataset record for the id, or nil when absent.
func (m *MemoryStore) GetDataset(_ context.Context, id model.DatasetID) (*dataset.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ds := range m.datasets {
		if ds.ID == id {
			out := ds
			return &out, nil
		}
	}
	return nil, nil
}

// ListDatasets returns all dataset records, oldest first.
func (m *MemoryStore) ListDatasets(_ context.Context) ([]dataset.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]dataset.Dataset, len(m.datasets))
	copy(out, m.datasets)
	return out, nil
}

// PruneDatasetsBefore removes dataset records created before the cutoff.
func (m *MemoryStore) PruneDatasetsBefore(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.datasets[:0]
	removed := 0
	for _, ds := range m.datasets {
		if ds.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, ds)
	}
	m.datasets = kept
	return removed, nil
}

// SaveVersion persists a trained model version.
func (m *MemoryStore) SaveVersion(_ context.Context, v model.Version) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.versions {
		if m.versions[i].ID == v.ID && m.versions[i].Version == v.Version {
			m.versions[i] = v.Clone()
			return nil
		}
	}
	m.versions = append(m.versions, v.Clone())
	return nil
}

// ListVersions returns all persisted versions in insertion order.
func (m *MemoryStore) ListVersions(_ context.Context) ([]model.Version, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Version, 0, len(m.versions))
	for _, v := range m.versions {
		out = append(out, v.Clone())
	}
	return out, nil
}

// SaveActivation records the serving selection, replacing any prior one.
func (m *MemoryStore) SaveActivation(_ context.Context, act Activation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.activation = &act
	return nil
}

// Activation returns the recorded serving selection, or nil when unset.
func (m *MemoryStore) Activation(_ context.Context) (*Activation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.activation == nil {
		return nil, nil
	}
	act := *m.activation
	return &act, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
