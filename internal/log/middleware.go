package log

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// StructuredLogger emits HTTP request lifecycle logs under the canonical
// field names, so every handler's traffic shows up with the same keys.
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a request logger tagged with the http component.
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	if logger == nil {
		logger = Default()
	}
	return &StructuredLogger{logger: logger.WithComponent(ComponentHTTP)}
}

// LogHTTPStart logs the start of request processing.
func (sl *StructuredLogger) LogHTTPStart(ctx context.Context, r *http.Request, clientIP, requestID string) {
	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent")).
		WithClientIP(clientIP).
		WithRequestID(requestID).
		WithComponent(ComponentHTTP)

	sl.logger.Logger.InfoContext(ctx, "Request started", fields.ToSlice()...)
}

// LogHTTPEnd logs request completion. Client errors log at Warn and server
// errors at Error, so failures stand out without filtering on status_code.
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, method, path string, statusCode int, duration time.Duration, clientIP, requestID string) {
	fields := NewFields().
		WithHTTPResponse(statusCode, duration.Milliseconds(), statusCode < http.StatusBadRequest).
		WithClientIP(clientIP).
		WithRequestID(requestID).
		WithComponent(ComponentHTTP)
	fields[FieldMethod] = method
	fields[FieldPath] = path

	level := slog.LevelInfo
	switch {
	case statusCode >= http.StatusInternalServerError:
		level = slog.LevelError
	case statusCode >= http.StatusBadRequest:
		level = slog.LevelWarn
	}
	sl.logger.Logger.Log(ctx, level, "Request completed", fields.ToSlice()...)
}

// LogError logs a handler-side failure. The component defaults to http
// unless the fields already carry one.
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	if _, ok := fields[FieldComponent]; !ok {
		fields = fields.WithComponent(ComponentHTTP)
	}
	fields = fields.WithError(err)
	sl.logger.Logger.ErrorContext(ctx, msg, fields.ToSlice()...)
}
