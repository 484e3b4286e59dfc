package storage

import (
	"context"
	"time"

	"deltaml/delta/pkg/audit"
)

// Backend persists audit records. Implementations must be safe for
// concurrent use.
type Backend interface {
	// Append stores one record.
	Append(ctx context.Context, rec audit.Record) error

	// List returns up to limit records, newest first. limit <= 0 means
	// no limit.
	List(ctx context.Context, limit int) ([]audit.Record, error)

	// PruneBefore deletes records created before the cutoff and returns
	// the number removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases backend resources.
	Close() error
}
