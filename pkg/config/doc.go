// Package config provides configuration management for the serving runtime.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// When no file is supplied, config.Default() yields a fully defaulted
// configuration.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention DELTA_SECTION_FIELD.
// For example:
//
//   - DELTA_CONSENT_MODE overrides consent.mode
//   - DELTA_AUDIT_BACKEND overrides audit.backend
//   - DELTA_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides
// earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Validation
//
// All configuration is validated automatically during loading. Validation
// errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - consent.file_path: required when mode is "file"
//	  - workers.pool_size: must be at least 1
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	core:
//	  data_root: "data"
//
//	consent:
//	  mode: "file"
//	  file_path: "./consent.yaml"
//	  watch: true
//
//	metadata:
//	  backend: "sqlite"
//
//	audit:
//	  enabled: true
//	  backend: "sqlite"
//	  retention:
//	    days: 30
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
