package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Unset fields take their defaults, so a partial file is valid. The
// configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Unmarshal over a fully defaulted config so absent boolean fields
	// keep their defaults.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow the
// naming convention DELTA_SECTION_FIELD (e.g., DELTA_CONSENT_MODE) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format DELTA_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Core overrides
	if val := os.Getenv("DELTA_CORE_DATA_ROOT"); val != "" {
		cfg.Core.DataRoot = val
	}
	if val := os.Getenv("DELTA_CORE_REGION"); val != "" {
		cfg.Core.Region = val
	}

	// Consent overrides
	if val := os.Getenv("DELTA_CONSENT_MODE"); val != "" {
		cfg.Consent.Mode = val
	}
	if val := os.Getenv("DELTA_CONSENT_FILE_PATH"); val != "" {
		cfg.Consent.FilePath = val
	}
	if val := os.Getenv("DELTA_CONSENT_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Consent.Watch = b
		}
	}

	// Metadata overrides
	if val := os.Getenv("DELTA_METADATA_BACKEND"); val != "" {
		cfg.Metadata.Backend = val
	}
	if val := os.Getenv("DELTA_METADATA_SQLITE_PATH"); val != "" {
		cfg.Metadata.SQLite.Path = val
	}
	if val := os.Getenv("DELTA_METADATA_SQLITE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Metadata.SQLite.BusyTimeout = d
		}
	}

	// Audit overrides
	if val := os.Getenv("DELTA_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("DELTA_AUDIT_BACKEND"); val != "" {
		cfg.Audit.Backend = val
	}
	if val := os.Getenv("DELTA_AUDIT_MEMORY_MAX_RECORDS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.Memory.MaxRecords = i
		}
	}
	if val := os.Getenv("DELTA_AUDIT_SQLITE_PATH"); val != "" {
		cfg.Audit.SQLite.Path = val
	}
	if val := os.Getenv("DELTA_AUDIT_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.Retention.Days = i
		}
	}
	if val := os.Getenv("DELTA_AUDIT_RETENTION_PRUNE_SCHEDULE"); val != "" {
		cfg.Audit.Retention.PruneSchedule = val
	}

	// Workers overrides
	if val := os.Getenv("DELTA_WORKERS_POOL_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Workers.PoolSize = i
		}
	}

	// Telemetry overrides
	if val := os.Getenv("DELTA_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("DELTA_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("DELTA_TELEMETRY_LOGGING_REDACT_SUBJECTS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.RedactSubjects = b
		}
	}
	if val := os.Getenv("DELTA_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("DELTA_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
	if val := os.Getenv("DELTA_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
