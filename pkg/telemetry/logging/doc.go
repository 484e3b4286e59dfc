// Package logging provides structured logging with subject redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Automatic redaction of data-subject identifiers in log fields
//   - Context-aware logging with request IDs and purpose metadata
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:          "info",
//	    Format:         "json",
//	    RedactSubjects: true,
//	})
//
//	logger.Info("inference served",
//	    "request_id", "req-123",
//	    "subject_id", "user-9",  // logged as a stable hash, never raw
//	    "latency_ms", 12,
//	)
//
//	ctx := logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "processing")  // includes request_id
//
// # Subject Redaction
//
// Data-subject identifiers must never reach log sinks in the clear. When
// RedactSubjects is enabled (the default in serving), values keyed
// subject_id are replaced with a stable token derived from the identifier
// hash, so log lines stay correlatable without exposing the raw id.
package logging
