package log

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// StructuredLogger emits the recurring records of the application with a
// consistent field layout.
type StructuredLogger struct {
	logger *Logger
}

func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{logger: logger}
}

// LogHTTPEnd logs a finished request at a level derived from its status.
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, statusCode int, d time.Duration, clientIP, requestID string) {
	level := slog.LevelInfo
	if statusCode >= 500 {
		level = slog.LevelError
	} else if statusCode >= 400 {
		level = slog.LevelWarn
	}

	fields := NewFields().
		WithRequestID(requestID).
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery).
		WithHTTPResponse(statusCode, d).
		With(FieldClientIP, clientIP)

	sl.logger.Log(ctx, level, "HTTP request completed", fields...)
}

func (sl *StructuredLogger) LogTransactionCreated(ctx context.Context, id, txType, category string, amount float64) {
	fields := NewFields().
		WithOperation(OpCreate).
		WithTransaction(id, txType, category, amount)
	sl.logger.InfoContext(ctx, "Transaction created", fields...)
}

func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, errorType, operation string) {
	fields := NewFields().
		WithError(err).
		With(FieldErrorType, errorType).
		WithOperation(operation)
	sl.logger.ErrorContext(ctx, msg, fields...)
}

// Middleware stores a request-scoped child of base in every request context.
// enrich may add per-request attributes such as the request id.
func Middleware(base *Logger, enrich func(*http.Request) []any) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base
			if enrich != nil {
				if attrs := enrich(r); len(attrs) > 0 {
					logger = base.With(attrs...)
				}
			}
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), logger)))
		})
	}
}
