package services

import (
	"context"
	"log/slog"
	"time"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, service string) *ServiceLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceLogger{
		logger: logger.With("service", service),
	}
}

func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

// ===== OPERATION LOGGING =====

// LogOperation logs the outcome of one service call. Expected failures are
// logged below error level.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, duration time.Duration, err error, attrs ...slog.Attr) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		case IsUnavailable(err):
			status = "store_unavailable"
		}
	}

	all := []slog.Attr{
		slog.String("operation", operation),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	all = append(all, attrs...)

	if err != nil {
		all = append(all, slog.String("error", err.Error()))
		if ve, ok := err.(ValidationErrors); ok {
			all = append(all, slog.Int("validation_errors_count", len(ve)))
		}
	}

	l.logger.LogAttrs(ctx, level, "Service operation completed", all...)
}

// ===== MIDDLEWARE AND HELPERS =====

// ContextualLogger times a single operation
type ContextualLogger struct {
	*ServiceLogger
	ctx       context.Context
	operation string
	startTime time.Time
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string) *ContextualLogger {
	return &ContextualLogger{
		ServiceLogger: l,
		ctx:           ctx,
		operation:     operation,
		startTime:     time.Now(),
	}
}

func (cl *ContextualLogger) LogResult(err error, attrs ...slog.Attr) {
	cl.LogOperation(cl.ctx, cl.operation, time.Since(cl.startTime), err, attrs...)
}
