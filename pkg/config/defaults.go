package config

import "time"

// Default values for configuration fields.
const (
	// Core defaults
	DefaultDataRoot = "data"

	// Consent defaults
	DefaultConsentMode  = "allow_all"
	DefaultConsentWatch = false

	// Metadata defaults
	DefaultMetadataBackend    = "memory"
	DefaultMetadataSQLitePath = "data/metadata.db"

	// Audit defaults
	DefaultAuditEnabled      = true
	DefaultAuditBackend      = "memory"
	DefaultAuditSQLitePath   = "data/audit.db"
	DefaultAuditMaxRecords   = 10000
	DefaultRetentionDays     = 30
	DefaultRetentionSchedule = "0 3 * * *"
	DefaultSQLiteBusyTimeout = 5 * time.Second

	// Workers defaults
	DefaultWorkerPoolSize = 4

	// Telemetry defaults
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
	DefaultRedactSubjects = true
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
	DefaultNamespace      = "delta"
)

// ApplyDefaults fills in default values for any unset configuration fields.
// It is called automatically by LoadConfig.
func ApplyDefaults(cfg *Config) {
	if cfg.Core.DataRoot == "" {
		cfg.Core.DataRoot = DefaultDataRoot
	}

	if cfg.Consent.Mode == "" {
		cfg.Consent.Mode = DefaultConsentMode
	}

	if cfg.Metadata.Backend == "" {
		cfg.Metadata.Backend = DefaultMetadataBackend
	}
	if cfg.Metadata.SQLite.Path == "" {
		cfg.Metadata.SQLite.Path = DefaultMetadataSQLitePath
	}
	if cfg.Metadata.SQLite.BusyTimeout == 0 {
		cfg.Metadata.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.Memory.MaxRecords == 0 {
		cfg.Audit.Memory.MaxRecords = DefaultAuditMaxRecords
	}
	if cfg.Audit.SQLite.Path == "" {
		cfg.Audit.SQLite.Path = DefaultAuditSQLitePath
	}
	if cfg.Audit.SQLite.BusyTimeout == 0 {
		cfg.Audit.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.Audit.Retention.Days == 0 {
		cfg.Audit.Retention.Days = DefaultRetentionDays
	}
	if cfg.Audit.Retention.PruneSchedule == "" {
		cfg.Audit.Retention.PruneSchedule = DefaultRetentionSchedule
	}

	if cfg.Workers.PoolSize == 0 {
		cfg.Workers.PoolSize = DefaultWorkerPoolSize
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultNamespace
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}

// Default returns a fully defaulted configuration, used when no
// configuration file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.Audit.Enabled = DefaultAuditEnabled
	cfg.Telemetry.Logging.RedactSubjects = DefaultRedactSubjects
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}
