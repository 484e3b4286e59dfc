package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"deltaml/delta/pkg/audit"
)

func record(id string, age time.Duration) audit.Record {
	return audit.Record{
		ID:         id,
		CreatedAt:  time.Now().Add(-age),
		PurposeID:  "analytics",
		SubjectID:  "s1",
		ModelID:    "tabular-logreg-abcd1234",
		Version:    "v1700000000000",
		Target:     "tabular",
		Reason:     "default_tabular",
		Hash:       "deadbeef",
		Confidence: 0.7,
		LatencyMS:  3,
	}
}

// backends under test share one behavioral contract.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sqlite, err := NewSQLite(SQLiteConfig{Path: filepath.Join(t.TempDir(), "audit.db")})
	if err != nil {
		t.Fatalf("NewSQLite() error: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Backend{
		"memory": NewMemory(0),
		"sqlite": sqlite,
	}
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				rec := record(fmt.Sprintf("r%d", i), time.Duration(3-i)*time.Hour)
				if err := backend.Append(ctx, rec); err != nil {
					t.Fatalf("Append() error: %v", err)
				}
			}

			all, err := backend.List(ctx, 0)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("List() returned %d records, want 3", len(all))
			}
			// Newest first.
			if all[0].ID != "r2" {
				t.Errorf("List()[0] = %s, want r2", all[0].ID)
			}

			limited, err := backend.List(ctx, 2)
			if err != nil {
				t.Fatalf("List(2) error: %v", err)
			}
			if len(limited) != 2 {
				t.Errorf("List(2) returned %d records, want 2", len(limited))
			}
		})
	}
}

func TestPruneBefore(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := backend.Append(ctx, record("old", 48*time.Hour)); err != nil {
				t.Fatalf("Append() error: %v", err)
			}
			if err := backend.Append(ctx, record("fresh", time.Minute)); err != nil {
				t.Fatalf("Append() error: %v", err)
			}

			removed, err := backend.PruneBefore(ctx, time.Now().Add(-24*time.Hour))
			if err != nil {
				t.Fatalf("PruneBefore() error: %v", err)
			}
			if removed != 1 {
				t.Errorf("PruneBefore() removed %d, want 1", removed)
			}

			remaining, err := backend.List(ctx, 0)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if len(remaining) != 1 || remaining[0].ID != "fresh" {
				t.Errorf("after prune, remaining = %+v, want only fresh", remaining)
			}
		})
	}
}

func TestSQLiteRoundTripFields(t *testing.T) {
	ctx := context.Background()
	backend, err := NewSQLite(SQLiteConfig{Path: filepath.Join(t.TempDir(), "audit.db")})
	if err != nil {
		t.Fatalf("NewSQLite() error: %v", err)
	}
	defer backend.Close()

	in := record("r1", time.Hour)
	in.FellBack = true
	if err := backend.Append(ctx, in); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	out, err := backend.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(out))
	}
	got := out[0]
	if got.ID != in.ID || got.ModelID != in.ModelID || got.Target != in.Target ||
		got.Reason != in.Reason || !got.FellBack || got.Hash != in.Hash ||
		got.Confidence != in.Confidence || got.LatencyMS != in.LatencyMS {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, in)
	}
}

func TestMemoryBound(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory(5)
	for i := 0; i < 10; i++ {
		if err := backend.Append(ctx, record(fmt.Sprintf("r%d", i), 0)); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}
	all, err := backend.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("bounded memory backend holds %d records, want 5", len(all))
	}
	// Oldest entries were dropped.
	for _, rec := range all {
		if rec.ID == "r0" {
			t.Error("oldest record survived past the bound")
		}
	}
}

func TestMemoryConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory(0)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = backend.Append(ctx, record(fmt.Sprintf("r%d-%d", i, j), 0))
			}
		}(i)
	}
	wg.Wait()

	all, err := backend.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 400 {
		t.Errorf("concurrent appends stored %d records, want 400", len(all))
	}
}
