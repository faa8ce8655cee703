package common

import "context"

// Context keys for storing values in context
type contextKey string

const ContextKeyTraceID contextKey = "trace_id"

// WithTraceID adds a trace ID to the context so batch and queue logs can be
// correlated with the upstream extraction call.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ContextKeyTraceID, traceID)
}

// TraceIDFromContext extracts the trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(ContextKeyTraceID).(string); ok {
		return traceID
	}
	return ""
}
