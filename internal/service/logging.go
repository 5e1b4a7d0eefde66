package service

import (
	"context"
	"log/slog"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// logResult пишет итог операции: бизнес-отказы на Warn, прочие ошибки на Error.
func logResult(ctx context.Context, logger *slog.Logger, err error, okMsg, failMsg string, attrs ...any) {
	if err == nil {
		logger.InfoContext(ctx, okMsg, attrs...)
		return
	}
	level := slog.LevelError
	if apperr.GetCode(err) != apperr.CodeUnknown {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, failMsg, append(attrs, "error", err, "error_kind", apperr.Kind(err))...)
}
