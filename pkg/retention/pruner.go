package retention

import (
	"context"
	"log/slog"
	"time"

	"deltaml/delta/pkg/audit/storage"
	"deltaml/delta/pkg/metadata"
	"deltaml/delta/pkg/status"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain audit and dataset
	// records. 0 means keep records forever (no pruning).
	RetentionDays int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() Config {
	return Config{
		RetentionDays: 30,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner removes audit and dataset records past the retention window.
// Either backend may be nil, in which case that phase is skipped.
type Pruner struct {
	auditStore storage.Backend
	metaStore  metadata.Store
	config     Config
	logger     *slog.Logger
	scheduler  *Scheduler
}

// NewPruner creates a retention pruner over the given backends.
func NewPruner(auditStore storage.Backend, metaStore metadata.Store, config Config, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}

	pruner := &Pruner{
		auditStore: auditStore,
		metaStore:  metaStore,
		config:     config,
		logger:     logger.With("component", "retention"),
	}
	pruner.scheduler = NewScheduler(pruner, logger)
	return pruner
}

// Prune deletes audit and dataset records created before the retention
// cutoff. Returns the total number of records deleted. A failure in one
// phase does not stop the other; the first error is returned.
func (p *Pruner) Prune(ctx context.Context) (int, error) {
	if p.config.RetentionDays <= 0 {
		p.logger.Debug("retention disabled, nothing to prune")
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)
	total := 0
	var firstErr error

	if p.auditStore != nil {
		deleted, err := p.auditStore.PruneBefore(ctx, cutoff)
		if err != nil {
			firstErr = status.IO("retention_audit_prune", err)
			p.logger.Error("audit pruning failed", "error", err)
		} else {
			total += deleted
			p.logger.Info("pruned audit records",
				"deleted_count", deleted,
				"retention_days", p.config.RetentionDays,
			)
		}
	}

	if p.metaStore != nil {
		deleted, err := p.metaStore.PruneDatasetsBefore(ctx, cutoff)
		if err != nil {
			if firstErr == nil {
				firstErr = status.IO("retention_dataset_prune", err)
			}
			p.logger.Error("dataset pruning failed", "error", err)
		} else {
			total += deleted
			p.logger.Info("pruned dataset records",
				"deleted_count", deleted,
				"retention_days", p.config.RetentionDays,
			)
		}
	}

	return total, firstErr
}

// Start starts the automatic pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
