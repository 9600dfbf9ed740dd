// Package logadapter bridges third-party structured loggers to the
// propcache.Logger interface.
package logadapter

import (
	"go.uber.org/zap"

	"github.com/vnykmshr/propcache-go/pkg/propcache"
)

// ZapLogger adapts a zap.Logger to propcache.Logger.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps a zap logger. A nil logger falls back to zap.NewNop.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger}
}

// Debug logs a debug message
func (z *ZapLogger) Debug(msg string, fields ...propcache.Field) {
	z.logger.Debug(msg, zapFields(fields)...)
}

// Info logs an info message
func (z *ZapLogger) Info(msg string, fields ...propcache.Field) {
	z.logger.Info(msg, zapFields(fields)...)
}

// Warn logs a warning message
func (z *ZapLogger) Warn(msg string, fields ...propcache.Field) {
	z.logger.Warn(msg, zapFields(fields)...)
}

// Error logs an error message
func (z *ZapLogger) Error(msg string, fields ...propcache.Field) {
	z.logger.Error(msg, zapFields(fields)...)
}

// With returns a logger with the fields attached to every message
func (z *ZapLogger) With(fields ...propcache.Field) propcache.Logger {
	return &ZapLogger{logger: z.logger.With(zapFields(fields)...)}
}

func zapFields(fields []propcache.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

var _ propcache.Logger = (*ZapLogger)(nil)
