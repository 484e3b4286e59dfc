package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// PurposeKey is the context key for processing-purpose identifiers.
	PurposeKey contextKey = "purpose_id"

	// ModelKey is the context key for the serving model identifier.
	ModelKey contextKey = "model_id"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithPurpose adds a processing-purpose identifier to the context.
func WithPurpose(ctx context.Context, purposeID string) context.Context {
	return context.WithValue(ctx, PurposeKey, purposeID)
}

// GetPurpose retrieves the purpose identifier from the context.
func GetPurpose(ctx context.Context) string {
	if purposeID, ok := ctx.Value(PurposeKey).(string); ok {
		return purposeID
	}
	return ""
}

// WithModel adds the serving model identifier to the context.
func WithModel(ctx context.Context, modelID string) context.Context {
	return context.WithValue(ctx, ModelKey, modelID)
}

// GetModel retrieves the serving model identifier from the context.
func GetModel(ctx context.Context) string {
	if modelID, ok := ctx.Value(ModelKey).(string); ok {
		return modelID
	}
	return ""
}

// extractContextFields collects the known context fields as alternating
// key/value log args.
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if purposeID := GetPurpose(ctx); purposeID != "" {
		fields = append(fields, "purpose_id", purposeID)
	}
	if modelID := GetModel(ctx); modelID != "" {
		fields = append(fields, "model_id", modelID)
	}

	return fields
}
