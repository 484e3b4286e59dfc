package config

import "time"

// Config is the root configuration structure for the governed serving
// runtime. It contains all configuration sections for storage roots, the
// consent gate, metadata and audit persistence, the worker pool, and
// telemetry settings.
type Config struct {
	// Core contains process-wide settings such as the data root directory.
	Core CoreConfig `yaml:"core"`

	// Consent contains configuration for the consent gate including the
	// rules file location and hot-reload behavior.
	Consent ConsentConfig `yaml:"consent"`

	// Metadata contains configuration for the durable metadata store
	// holding dataset records, model versions, and the active selection.
	Metadata MetadataConfig `yaml:"metadata"`

	// Audit contains configuration for audit-record persistence and
	// retention pruning.
	Audit AuditConfig `yaml:"audit"`

	// Workers contains configuration for the asynchronous worker pool.
	Workers WorkersConfig `yaml:"workers"`

	// Telemetry contains configuration for observability including
	// logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CoreConfig contains process-wide settings.
type CoreConfig struct {
	// DataRoot is the directory under which model artifacts are laid out.
	// Artifact paths are relative to this root.
	// Default: "data"
	DataRoot string `yaml:"data_root"`

	// Region is an informational deployment region tag carried into logs.
	Region string `yaml:"region"`
}

// ConsentConfig contains configuration for the consent gate.
type ConsentConfig struct {
	// Mode selects the consent backend: "allow_all" grants every
	// (purpose, subject) pair; "file" loads grant rules from FilePath.
	// Default: "allow_all"
	Mode string `yaml:"mode"`

	// FilePath is the YAML rules file used when Mode is "file".
	FilePath string `yaml:"file_path"`

	// Watch enables hot reload of the rules file on change.
	// Default: false
	Watch bool `yaml:"watch"`
}

// MetadataConfig contains configuration for the metadata store.
type MetadataConfig struct {
	// Backend selects the store implementation: "memory" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLite contains settings for the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// AuditConfig contains configuration for audit-record persistence.
type AuditConfig struct {
	// Enabled controls whether served inferences are recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage implementation: "memory" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// Memory contains settings for the in-memory backend.
	Memory MemoryBackendConfig `yaml:"memory"`

	// SQLite contains settings for the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains retention pruning settings.
	Retention RetentionConfig `yaml:"retention"`
}

// MemoryBackendConfig contains settings for in-memory bounded storage.
type MemoryBackendConfig struct {
	// MaxRecords caps the number of retained records; the oldest are
	// evicted first. 0 uses the backend default.
	MaxRecords int `yaml:"max_records"`
}

// SQLiteConfig contains settings for a SQLite-backed store.
type SQLiteConfig struct {
	// Path is the database file location.
	Path string `yaml:"path"`

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains retention pruning settings.
type RetentionConfig struct {
	// Days is the retention window for audit and dataset records.
	// 0 disables pruning.
	// Default: 30
	Days int `yaml:"days"`

	// PruneSchedule is a cron expression for background pruning.
	// Empty disables the scheduler.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// WorkersConfig contains configuration for the asynchronous worker pool.
type WorkersConfig struct {
	// PoolSize is the number of worker goroutines serving asynchronous
	// inference submissions.
	// Default: 4
	PoolSize int `yaml:"pool_size"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line information in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSubjects rewrites data-subject identifiers in log fields to
	// stable digest tokens.
	// Default: true
	RedactSubjects bool `yaml:"redact_subjects"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "delta"
	Namespace string `yaml:"namespace"`

	// Path is the HTTP path for the scrape endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// ListenAddress is the address for the scrape endpoint server.
	// Empty disables the endpoint.
	ListenAddress string `yaml:"listen_address"`

	// LatencyBuckets overrides the inference latency histogram buckets.
	LatencyBuckets []float64 `yaml:"latency_buckets"`
}
