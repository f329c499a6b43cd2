package log

import (
	"context"
	"log/slog"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// NewContext returns a copy of ctx carrying logger
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext extracts a logger from the context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	// Return default logger if not found
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogLedgerLoaded logs a successful ledger load
func (sl *StructuredLogger) LogLedgerLoaded(ctx context.Context, source string, records int) {
	fields := NewFields().
		WithSource(source, records).
		WithOperation(OpLoad).
		ToSlice()

	sl.logger.WithComponent(ComponentLedger).InfoContext(ctx, "Ledger loaded", fields...)
}

// LogReportGenerated logs a successfully generated report
func (sl *StructuredLogger) LogReportGenerated(ctx context.Context, runID, kind string, sections, rows int, durationMs int64) {
	fields := NewFields().
		WithReport(kind, sections, rows, durationMs).
		WithRunID(runID).
		WithOperation(OpGenerate).
		ToSlice()

	sl.logger.WithComponent(ComponentReport).InfoContext(ctx, "Report generated", fields...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.logger.WithComponent(component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}
