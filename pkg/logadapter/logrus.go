package logadapter

import (
	"github.com/sirupsen/logrus"

	"github.com/vnykmshr/propcache-go/pkg/propcache"
)

// LogrusLogger adapts a logrus logger to propcache.Logger.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps a logrus logger. A nil logger falls back to the
// logrus standard logger.
func NewLogrusLogger(logger *logrus.Logger) *LogrusLogger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusLogger{entry: logrus.NewEntry(logger)}
}

// Debug logs a debug message
func (l *LogrusLogger) Debug(msg string, fields ...propcache.Field) {
	l.entry.WithFields(logrusFields(fields)).Debug(msg)
}

// Info logs an info message
func (l *LogrusLogger) Info(msg string, fields ...propcache.Field) {
	l.entry.WithFields(logrusFields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *LogrusLogger) Warn(msg string, fields ...propcache.Field) {
	l.entry.WithFields(logrusFields(fields)).Warn(msg)
}

// Error logs an error message
func (l *LogrusLogger) Error(msg string, fields ...propcache.Field) {
	l.entry.WithFields(logrusFields(fields)).Error(msg)
}

// With returns a logger with the fields attached to every message
func (l *LogrusLogger) With(fields ...propcache.Field) propcache.Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrusFields(fields))}
}

func logrusFields(fields []propcache.Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

var _ propcache.Logger = (*LogrusLogger)(nil)
