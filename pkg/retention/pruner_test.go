package retention

import (
	"context"
	"testing"
	"time"

	"deltaml/delta/pkg/audit"
	"deltaml/delta/pkg/audit/storage"
	"deltaml/delta/pkg/dataset"
	"deltaml/delta/pkg/metadata"
)

func TestPrune(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	auditStore := storage.NewMemory(0)
	metaStore := metadata.NewMemoryStore()

	records := []audit.Record{
		{ID: "old-1", CreatedAt: now.AddDate(0, 0, -40)},
		{ID: "old-2", CreatedAt: now.AddDate(0, 0, -31)},
		{ID: "fresh", CreatedAt: now},
	}
	for _, rec := range records {
		if err := auditStore.Append(ctx, rec); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	datasets := []dataset.Dataset{
		{ID: "ds-old", CreatedAt: now.AddDate(0, 0, -35)},
		{ID: "ds-new", CreatedAt: now},
	}
	for _, ds := range datasets {
		if err := metaStore.SaveDataset(ctx, ds); err != nil {
			t.Fatalf("SaveDataset() error: %v", err)
		}
	}

	pruner := NewPruner(auditStore, metaStore, Config{RetentionDays: 30}, nil)
	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("Prune() deleted %d records, want 3", deleted)
	}

	remaining, err := auditStore.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "fresh" {
		t.Errorf("remaining audit records = %+v, want only fresh", remaining)
	}

	kept, err := metaStore.ListDatasets(ctx)
	if err != nil {
		t.Fatalf("ListDatasets() error: %v", err)
	}
	if len(kept) != 1 || kept[0].ID != "ds-new" {
		t.Errorf("remaining datasets = %+v, want only ds-new", kept)
	}
}

func TestPruneDisabled(t *testing.T) {
	ctx := context.Background()
	auditStore := storage.NewMemory(0)
	if err := auditStore.Append(ctx, audit.Record{ID: "ancient", CreatedAt: time.Now().AddDate(-1, 0, 0)}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	pruner := NewPruner(auditStore, nil, Config{RetentionDays: 0}, nil)
	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() deleted %d records with retention disabled, want 0", deleted)
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	pruner := NewPruner(storage.NewMemory(0), nil, Config{RetentionDays: 30, PruneSchedule: "0 3 * * *"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !pruner.scheduler.IsRunning() {
		t.Error("scheduler should be running after Start")
	}
	if next := pruner.NextPruning(); next == nil || !next.After(time.Now()) {
		t.Errorf("NextPruning() = %v, want a future time", next)
	}

	pruner.Stop()
	if pruner.scheduler.IsRunning() {
		t.Error("scheduler should be stopped after Stop")
	}
}

func TestSchedulerInvalidExpression(t *testing.T) {
	pruner := NewPruner(storage.NewMemory(0), nil, Config{RetentionDays: 30, PruneSchedule: "not a cron"}, nil)
	if err := pruner.Start(context.Background()); err == nil {
		t.Fatal("Start() expected error for an invalid cron expression")
	}
}

func TestSchedulerEmptySchedule(t *testing.T) {
	pruner := NewPruner(storage.NewMemory(0), nil, Config{RetentionDays: 30}, nil)
	if err := pruner.Start(context.Background()); err != nil {
		t.Fatalf("Start() error with empty schedule: %v", err)
	}
	if pruner.scheduler.IsRunning() {
		t.Error("scheduler should stay idle with an empty schedule")
	}
}
