package main

import (
	"fmt"
	"os"

	"deltaml/delta/pkg/audit/storage"
	"deltaml/delta/pkg/config"
	"deltaml/delta/pkg/consent"
	"deltaml/delta/pkg/metadata"
	"deltaml/delta/pkg/serving"
	"deltaml/delta/pkg/telemetry/logging"
	"deltaml/delta/pkg/telemetry/metrics"
	"deltaml/delta/pkg/workers"
)

// appRuntime bundles the configured service with the backends it was
// built from, so commands can tear everything down in one place.
type appRuntime struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	service *serving.Service

	consentStore consent.Store
	metaStore    metadata.Store
	auditStore   storage.Backend
}

// newRuntime loads configuration and assembles the serving stack. A
// missing config file at the default location is not an error; defaults
// apply.
func newRuntime() (*appRuntime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	// Logs go to stderr so command results stay parseable on stdout.
	logger, err := logging.New(logging.Config{
		Level:          cfg.Telemetry.Logging.Level,
		Format:         cfg.Telemetry.Logging.Format,
		AddSource:      cfg.Telemetry.Logging.AddSource,
		RedactSubjects: cfg.Telemetry.Logging.RedactSubjects,
		Writer:         os.Stderr,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Core.Region != "" {
		logger = logger.With("region", cfg.Core.Region)
	}

	consentStore, err := buildConsentStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	metaStore, err := buildMetadataStore(cfg)
	if err != nil {
		return nil, err
	}

	auditStore, err := buildAuditStore(cfg)
	if err != nil {
		metaStore.Close()
		return nil, err
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	service, err := serving.New(serving.Options{
		Consent:       consentStore,
		Pool:          workers.New(cfg.Workers.PoolSize),
		Metadata:      metaStore,
		Audit:         auditStore,
		Metrics:       collector,
		Logger:        logger,
		AuditEnabled:  cfg.Audit.Enabled,
		RetentionDays: cfg.Audit.Retention.Days,
	})
	if err != nil {
		metaStore.Close()
		auditStore.Close()
		return nil, err
	}

	return &appRuntime{
		cfg:          cfg,
		logger:       logger,
		metrics:      collector,
		service:      service,
		consentStore: consentStore,
		metaStore:    metaStore,
		auditStore:   auditStore,
	}, nil
}

// Close tears down the service and its backends.
func (r *appRuntime) Close() {
	r.service.Close()
	if fs, ok := r.consentStore.(*consent.FileStore); ok {
		fs.Close()
	}
	r.auditStore.Close()
	r.metaStore.Close()
}

func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		// Only the implicit default location may be absent; a path the
		// user asked for must exist.
		if cfgFile == "config.yaml" {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

func buildConsentStore(cfg *config.Config, logger *logging.Logger) (consent.Store, error) {
	switch cfg.Consent.Mode {
	case "file":
		store, err := consent.NewFileStore(cfg.Consent.FilePath, logger.Slog())
		if err != nil {
			return nil, err
		}
		if cfg.Consent.Watch {
			if err := store.Watch(); err != nil {
				store.Close()
				return nil, err
			}
		}
		return store, nil
	default:
		return consent.AllowAll{}, nil
	}
}

func buildMetadataStore(cfg *config.Config) (metadata.Store, error) {
	switch cfg.Metadata.Backend {
	case "sqlite":
		return metadata.NewSQLiteStoreWithConfig(metadata.SQLiteStoreConfig{
			DBPath:      cfg.Metadata.SQLite.Path,
			BusyTimeout: cfg.Metadata.SQLite.BusyTimeout,
		})
	default:
		return metadata.NewMemoryStore(), nil
	}
}

func buildAuditStore(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Audit.Backend {
	case "sqlite":
		return storage.NewSQLite(storage.SQLiteConfig{
			Path:        cfg.Audit.SQLite.Path,
			BusyTimeout: cfg.Audit.SQLite.BusyTimeout,
		})
	default:
		return storage.NewMemory(cfg.Audit.Memory.MaxRecords), nil
	}
}
