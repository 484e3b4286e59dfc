package storage

import (
	"context"
	"sync"
	"time"

	"deltaml/delta/pkg/audit"
)

// Memory is the in-memory audit backend. Records live only as long as the
// process; a maximum size bounds memory under load by dropping the oldest
// records first.
type Memory struct {
	mu         sync.Mutex
	records    []audit.Record
	maxRecords int
}

// DefaultMemoryMaxRecords bounds the in-memory audit trail.
const DefaultMemoryMaxRecords = 10000

// NewMemory returns an in-memory backend holding at most maxRecords
// entries; zero or negative selects the default bound.
func NewMemory(maxRecords int) *Memory {
	if maxRecords <= 0 {
		maxRecords = DefaultMemoryMaxRecords
	}
	return &Memory{maxRecords: maxRecords}
}

// Append implements Backend.
func (m *Memory) Append(ctx context.Context, rec audit.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	if len(m.records) > m.maxRecords {
		m.records = m.records[len(m.records)-m.maxRecords:]
	}
	return nil
}

// List implements Backend.
func (m *Memory) List(ctx context.Context, limit int) ([]audit.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.records)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]audit.Record, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

// PruneBefore implements Backend.
func (m *Memory) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	removed := 0
	for _, rec := range m.records {
		if rec.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	m.records = kept
	return removed, nil
}

// Close implements Backend.
func (m *Memory) Close() error { return nil }
