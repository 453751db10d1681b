package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Info logs an info message when a logger is configured.
// Fields are alternating key/value pairs.
func Info(logger *zerolog.Logger, msg string, fields ...any) {
	if logger != nil {
		logger.Info().Fields(fields).Msg(msg)
	}
}

// Warn logs a warning when a logger is configured.
func Warn(logger *zerolog.Logger, msg string, fields ...any) {
	if logger != nil {
		logger.Warn().Fields(fields).Msg(msg)
	}
}

// Error logs an error when a logger is configured.
func Error(logger *zerolog.Logger, msg string, err error, fields ...any) {
	if logger == nil {
		return
	}
	logger.Error().Err(err).Fields(fields).Msg(msg)
}

// WithLogger stores the logger in the context for downstream handlers.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return logger.WithContext(ctx)
}

// FromContext returns the request-scoped logger, or fallback when none is attached.
func FromContext(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if ctx == nil {
		return fallback
	}
	logger := zerolog.Ctx(ctx)
	if logger == nil || logger.GetLevel() == zerolog.Disabled {
		return fallback
	}
	return logger
}
