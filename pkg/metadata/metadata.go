package metadata

import (
	"context"
	"time"

	"deltaml/delta/pkg/dataset"
	"deltaml/delta/pkg/model"
)

// Activation records which model version is currently serving. At most one
// activation exists at a time; saving a new one replaces it.
type Activation struct {
	ModelID     model.ModelID
	Version     model.VersionName
	ActivatedAt time.Time
}

// Store is the durable metadata backend. Implementations must be safe for
// concurrent use.
type Store interface {
	// SaveDataset upserts a dataset record keyed by its id.
	SaveDataset(ctx context.Context, ds dataset.Dataset) error

	// GetDataset returns the dataset record for the id, or nil when the
	// id has never been ingested.
	GetDataset(ctx context.Context, id model.DatasetID) (*dataset.Dataset, error)

	// ListDatasets returns all dataset records, oldest first.
	ListDatasets(ctx context.Context) ([]dataset.Dataset, error)

	// PruneDatasetsBefore removes dataset records created strictly before
	// the cutoff and returns the number removed.
	PruneDatasetsBefore(ctx context.Context, cutoff time.Time) (int, error)

	// SaveVersion persists a trained model version. Versions are immutable;
	// re-saving the same (id, version) pair overwrites with identical data.
	SaveVersion(ctx context.Context, v model.Version) error

	// ListVersions returns all persisted versions in insertion order.
	ListVersions(ctx context.Context) ([]model.Version, error)

	// SaveActivation records the serving selection, replacing any prior one.
	SaveActivation(ctx context.Context, act Activation) error

	// Activation returns the recorded serving selection, or nil when no
	// model has been activated.
	Activation(ctx context.Context) (*Activation, error)

	// Close releases backend resources.
	Close() error
}
