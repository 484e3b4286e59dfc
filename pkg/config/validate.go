package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "consent.mode").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateCore(&cfg.Core)...)
	errs = append(errs, validateConsent(&cfg.Consent)...)
	errs = append(errs, validateMetadata(&cfg.Metadata)...)
	errs = append(errs, validateAudit(&cfg.Audit)...)
	errs = append(errs, validateWorkers(&cfg.Workers)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateCore(cfg *CoreConfig) []FieldError {
	var errs []FieldError
	if cfg.DataRoot == "" {
		errs = append(errs, FieldError{"core.data_root", "must not be empty"})
	}
	return errs
}

func validateConsent(cfg *ConsentConfig) []FieldError {
	var errs []FieldError

	switch cfg.Mode {
	case "allow_all":
		// no further requirements
	case "file":
		if cfg.FilePath == "" {
			errs = append(errs, FieldError{"consent.file_path", "required when mode is \"file\""})
		}
	default:
		errs = append(errs, FieldError{"consent.mode",
			fmt.Sprintf("must be \"allow_all\" or \"file\", got %q", cfg.Mode)})
	}

	if cfg.Watch && cfg.Mode != "file" {
		errs = append(errs, FieldError{"consent.watch", "only valid when mode is \"file\""})
	}

	return errs
}

func validateMetadata(cfg *MetadataConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory":
	case "sqlite":
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{"metadata.sqlite.path", "required when backend is \"sqlite\""})
		}
	default:
		errs = append(errs, FieldError{"metadata.backend",
			fmt.Sprintf("must be \"memory\" or \"sqlite\", got %q", cfg.Backend)})
	}

	return errs
}

func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory":
		if cfg.Memory.MaxRecords < 0 {
			errs = append(errs, FieldError{"audit.memory.max_records", "must not be negative"})
		}
	case "sqlite":
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{"audit.sqlite.path", "required when backend is \"sqlite\""})
		}
	default:
		errs = append(errs, FieldError{"audit.backend",
			fmt.Sprintf("must be \"memory\" or \"sqlite\", got %q", cfg.Backend)})
	}

	if cfg.Retention.Days < 0 {
		errs = append(errs, FieldError{"audit.retention.days", "must not be negative"})
	}
	if cfg.Retention.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Retention.PruneSchedule); err != nil {
			errs = append(errs, FieldError{"audit.retention.prune_schedule",
				fmt.Sprintf("invalid cron expression: %v", err)})
		}
	}

	return errs
}

func validateWorkers(cfg *WorkersConfig) []FieldError {
	var errs []FieldError
	if cfg.PoolSize < 1 {
		errs = append(errs, FieldError{"workers.pool_size", "must be at least 1"})
	}
	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{"telemetry.logging.level",
			fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Logging.Level)})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{"telemetry.logging.format",
			fmt.Sprintf("must be \"json\" or \"text\", got %q", cfg.Logging.Format)})
	}

	if cfg.Metrics.Path != "" && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{"telemetry.metrics.path", "must start with \"/\""})
	}
	for i, b := range cfg.Metrics.LatencyBuckets {
		if b <= 0 {
			errs = append(errs, FieldError{"telemetry.metrics.latency_buckets",
				fmt.Sprintf("bucket %d must be positive", i)})
		}
		if i > 0 && b <= cfg.Metrics.LatencyBuckets[i-1] {
			errs = append(errs, FieldError{"telemetry.metrics.latency_buckets",
				"buckets must be strictly increasing"})
		}
	}

	return errs
}
