package serving

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"deltaml/delta/pkg/audit/storage"
	"deltaml/delta/pkg/config"
	"deltaml/delta/pkg/consent"
	"deltaml/delta/pkg/engine"
	"deltaml/delta/pkg/metadata"
	"deltaml/delta/pkg/model"
	"deltaml/delta/pkg/registry"
	"deltaml/delta/pkg/routing"
	"deltaml/delta/pkg/telemetry/logging"
	"deltaml/delta/pkg/telemetry/metrics"
	"deltaml/delta/pkg/workers"
)

// Options carries the Service's collaborators. Nil fields get working
// in-memory defaults, so tests construct only what they exercise.
type Options struct {
	Registry *registry.Registry
	Slot     *registry.ActiveSlot
	Consent  consent.Store
	Router   routing.Router
	Engines  *engine.Registry
	Pool     *workers.Pool
	Metadata metadata.Store
	Audit    storage.Backend
	Metrics  *metrics.Collector
	Logger   *logging.Logger

	// AuditEnabled controls whether predictions append audit records.
	AuditEnabled bool

	// RetentionDays is reported on exported datasheets.
	RetentionDays int
}

// Service is the orchestrating facade over the governed lifecycle.
type Service struct {
	registry   *registry.Registry
	slot       *registry.ActiveSlot
	consent    consent.Store
	router     routing.Router
	engines    *engine.Registry
	pool       *workers.Pool
	meta       metadata.Store
	auditStore storage.Backend
	metrics    *metrics.Collector
	logger     *logging.Logger

	auditEnabled  bool
	retentionDays int

	// lastStamp makes version labels unique per process even when two
	// training calls land in the same millisecond.
	lastStamp atomic.Int64
}

// New constructs a Service, fills in defaults for absent collaborators,
// and rehydrates the registry and active slot from the metadata store.
func New(opts Options) (*Service, error) {
	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	if opts.Slot == nil {
		opts.Slot = registry.NewActiveSlot()
	}
	if opts.Consent == nil {
		opts.Consent = consent.AllowAll{}
	}
	if opts.Router == nil {
		opts.Router = routing.DefaultRouter{}
	}
	if opts.Logger == nil {
		logger, err := logging.New(logging.Config{})
		if err != nil {
			return nil, err
		}
		opts.Logger = logger
	}
	if opts.Engines == nil {
		opts.Engines = engine.NewRegistry(opts.Logger.Slog())
	}
	if opts.Pool == nil {
		opts.Pool = workers.New(workers.DefaultSize)
	}
	if opts.Metadata == nil {
		opts.Metadata = metadata.NewMemoryStore()
	}
	if opts.Audit == nil {
		opts.Audit = storage.NewMemory(0)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCollector(&config.MetricsConfig{Enabled: false}, nil)
	}
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = config.DefaultRetentionDays
	}

	s := &Service{
		registry:      opts.Registry,
		slot:          opts.Slot,
		consent:       opts.Consent,
		router:        opts.Router,
		engines:       opts.Engines,
		pool:          opts.Pool,
		meta:          opts.Metadata,
		auditStore:    opts.Audit,
		metrics:       opts.Metrics,
		logger:        opts.Logger.Component("serving"),
		auditEnabled:  opts.AuditEnabled,
		retentionDays: opts.RetentionDays,
	}

	if err := s.rehydrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// rehydrate loads persisted model versions and the activation into the
// in-memory registry and slot, so the CLI works across processes.
func (s *Service) rehydrate(ctx context.Context) error {
	versions, err := s.meta.ListVersions(ctx)
	if err != nil {
		return err
	}
	for _, v := range versions {
		s.registry.Insert(v)
	}
	if len(versions) > 0 {
		s.logger.Info("registry rehydrated", "versions", len(versions))
	}

	act, err := s.meta.Activation(ctx)
	if err != nil {
		return err
	}
	if act == nil {
		return nil
	}
	v, err := s.registry.Get(act.ModelID, act.Version)
	if err != nil {
		// The store points at a version it no longer holds. Serve
		// nothing rather than something unaccounted for.
		s.logger.Warn("persisted activation references unknown version",
			"model_id", act.ModelID.String(),
			"version", act.Version.String(),
		)
		return nil
	}
	s.slot.Activate(v)
	s.metrics.SetActiveModel(v.ID.String(), v.Version.String())
	s.logger.Info("active model restored",
		"model_id", v.ID.String(),
		"version", v.Version.String(),
	)
	return nil
}

// nextVersion returns a process-unique version label derived from the
// current millisecond, advancing past the previous label when two calls
// collide on the same tick.
func (s *Service) nextVersion() model.VersionName {
	for {
		now := time.Now().UnixMilli()
		last := s.lastStamp.Load()
		if now <= last {
			now = last + 1
		}
		if s.lastStamp.CompareAndSwap(last, now) {
			return model.VersionName(fmt.Sprintf("v%d", now))
		}
	}
}

// Close releases the worker pool. Storage backends are owned by the
// caller that constructed them.
func (s *Service) Close() {
	s.pool.Close()
}
