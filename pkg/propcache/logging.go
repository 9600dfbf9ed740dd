package propcache

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// LogLevel defines the severity level for logging
type LogLevel int

const (
	// LogLevelDebug enables all log messages including detailed debugging
	LogLevelDebug LogLevel = iota

	// LogLevelInfo enables informational messages and above
	LogLevelInfo

	// LogLevelWarn enables warning messages and above
	LogLevelWarn

	// LogLevelError enables only error messages
	LogLevelError

	// LogLevelNone disables all logging
	LogLevelNone
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the interface for attribute cache logging. Adapters for zap
// and logrus live in pkg/logadapter.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F is a convenience function to create a logging field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// DefaultLogger implements Logger interface using Go's standard log package
type DefaultLogger struct {
	level  LogLevel
	logger *log.Logger
	fields []Field
}

// NewDefaultLogger creates a new logger with the specified level
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		logger: log.New(os.Stdout, "[PROPCACHE] ", log.LstdFlags|log.Lmicroseconds),
		fields: make([]Field, 0),
	}
}

// Debug logs a debug message
func (dl *DefaultLogger) Debug(msg string, fields ...Field) {
	if dl.level <= LogLevelDebug {
		dl.log("DEBUG", msg, fields...)
	}
}

// Info logs an info message
func (dl *DefaultLogger) Info(msg string, fields ...Field) {
	if dl.level <= LogLevelInfo {
		dl.log("INFO", msg, fields...)
	}
}

// Warn logs a warning message
func (dl *DefaultLogger) Warn(msg string, fields ...Field) {
	if dl.level <= LogLevelWarn {
		dl.log("WARN", msg, fields...)
	}
}

// Error logs an error message
func (dl *DefaultLogger) Error(msg string, fields ...Field) {
	if dl.level <= LogLevelError {
		dl.log("ERROR", msg, fields...)
	}
}

// With creates a new logger with additional fields
func (dl *DefaultLogger) With(fields ...Field) Logger {
	newFields := make([]Field, len(dl.fields)+len(fields))
	copy(newFields, dl.fields)
	copy(newFields[len(dl.fields):], fields)

	return &DefaultLogger{
		level:  dl.level,
		logger: dl.logger,
		fields: newFields,
	}
}

func (dl *DefaultLogger) log(level, msg string, fields ...Field) {
	allFields := make([]Field, len(dl.fields)+len(fields))
	copy(allFields, dl.fields)
	copy(allFields[len(dl.fields):], fields)

	var fieldStrings []string
	for _, field := range allFields {
		fieldStrings = append(fieldStrings, fmt.Sprintf("%s=%v", field.Key, field.Value))
	}

	var logMsg string
	if len(fieldStrings) > 0 {
		logMsg = fmt.Sprintf("[%s] %s | %s", level, msg, strings.Join(fieldStrings, " "))
	} else {
		logMsg = fmt.Sprintf("[%s] %s", level, msg)
	}

	dl.logger.Println(logMsg)
}

// NoOpLogger is a logger that does nothing - useful for disabling logging
type NoOpLogger struct{}

// NewNoOpLogger creates a logger that discards all messages
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (nol *NoOpLogger) Debug(string, ...Field) {}
func (nol *NoOpLogger) Info(string, ...Field)  {}
func (nol *NoOpLogger) Warn(string, ...Field)  {}
func (nol *NoOpLogger) Error(string, ...Field) {}
func (nol *NoOpLogger) With(...Field) Logger   { return nol }

// LoggingConfig defines configuration for attribute cache logging
type LoggingConfig struct {
	Logger Logger

	// LogHits enables logging of cache hit events
	LogHits bool

	// LogMisses enables logging of cache miss events
	LogMisses bool

	// LogComputes enables logging of getter executions with timing
	LogComputes bool

	// LogEvictions enables logging of eviction events
	LogEvictions bool

	// LogInvalidations enables logging of invalidation events
	LogInvalidations bool

	// SlowComputeThreshold upgrades compute logs to warnings when the getter
	// takes longer than this. Zero disables the check.
	SlowComputeThreshold time.Duration

	// IncludeValues determines whether to include cached values in logs
	IncludeValues bool

	// MaxValueLength limits the length of values included in logs
	MaxValueLength int
}

// NewDefaultLoggingConfig creates a logging configuration with sensible defaults
func NewDefaultLoggingConfig(level LogLevel) *LoggingConfig {
	return &LoggingConfig{
		Logger:               NewDefaultLogger(level),
		LogHits:              true,
		LogMisses:            true,
		LogComputes:          true,
		LogEvictions:         true,
		LogInvalidations:     true,
		SlowComputeThreshold: 100 * time.Millisecond,
		IncludeValues:        false,
		MaxValueLength:       100,
	}
}

// CreateLoggingHooks creates a set of hooks that log attribute cache events
func CreateLoggingHooks(config *LoggingConfig) *Hooks {
	if config == nil || config.Logger == nil {
		return &Hooks{}
	}

	hooks := &Hooks{}
	logger := config.Logger

	if config.LogHits {
		hooks.AddOnHit(func(name string, value any) {
			fields := []Field{F("attribute", name), F("event", "property_hit")}

			if config.IncludeValues {
				valueStr := truncateValue(fmt.Sprintf("%v", value), config.MaxValueLength)
				fields = append(fields, F("value", valueStr))
			}

			logger.Debug("Property hit", fields...)
		})
	}

	if config.LogMisses {
		hooks.AddOnMiss(func(name string) {
			logger.Debug("Property miss",
				F("attribute", name), F("event", "property_miss"))
		})
	}

	if config.LogComputes {
		hooks.AddOnCompute(func(name string, duration time.Duration) {
			fields := []Field{
				F("attribute", name),
				F("event", "property_compute"),
				F("duration", duration),
			}

			if config.SlowComputeThreshold > 0 && duration > config.SlowComputeThreshold {
				logger.Warn("Slow property compute", fields...)
				return
			}
			logger.Info("Property computed", fields...)
		})
	}

	if config.LogEvictions {
		hooks.AddOnEvict(func(name string, value any) {
			fields := []Field{F("attribute", name), F("event", "property_evict")}

			if config.IncludeValues {
				valueStr := truncateValue(fmt.Sprintf("%v", value), config.MaxValueLength)
				fields = append(fields, F("value", valueStr))
			}

			logger.Info("Property eviction", fields...)
		})
	}

	if config.LogInvalidations {
		hooks.AddOnInvalidate(func(name string) {
			logger.Info("Property invalidation",
				F("attribute", name), F("event", "property_invalidate"))
		})
	}

	return hooks
}

// LoggingHookBuilder provides a fluent interface for creating logging hooks
type LoggingHookBuilder struct {
	config *LoggingConfig
}

// NewLoggingHookBuilder creates a new logging hook builder
func NewLoggingHookBuilder() *LoggingHookBuilder {
	return &LoggingHookBuilder{
		config: &LoggingConfig{
			Logger:               NewNoOpLogger(),
			SlowComputeThreshold: 100 * time.Millisecond,
			MaxValueLength:       100,
		},
	}
}

// WithLogger sets the logger to use
func (lhb *LoggingHookBuilder) WithLogger(logger Logger) *LoggingHookBuilder {
	lhb.config.Logger = logger
	return lhb
}

// WithLevel sets the logging level (creates a default logger)
func (lhb *LoggingHookBuilder) WithLevel(level LogLevel) *LoggingHookBuilder {
	lhb.config.Logger = NewDefaultLogger(level)
	return lhb
}

// EnableHitLogging enables property hit logging
func (lhb *LoggingHookBuilder) EnableHitLogging() *LoggingHookBuilder {
	lhb.config.LogHits = true
	return lhb
}

// EnableMissLogging enables property miss logging
func (lhb *LoggingHookBuilder) EnableMissLogging() *LoggingHookBuilder {
	lhb.config.LogMisses = true
	return lhb
}

// EnableComputeLogging enables getter timing logs with the given slow threshold
func (lhb *LoggingHookBuilder) EnableComputeLogging(slowThreshold time.Duration) *LoggingHookBuilder {
	lhb.config.LogComputes = true
	lhb.config.SlowComputeThreshold = slowThreshold
	return lhb
}

// EnableEvictionLogging enables eviction logging
func (lhb *LoggingHookBuilder) EnableEvictionLogging() *LoggingHookBuilder {
	lhb.config.LogEvictions = true
	return lhb
}

// EnableInvalidationLogging enables invalidation logging
func (lhb *LoggingHookBuilder) EnableInvalidationLogging() *LoggingHookBuilder {
	lhb.config.LogInvalidations = true
	return lhb
}

// EnableAllLogging enables all types of cache event logging
func (lhb *LoggingHookBuilder) EnableAllLogging() *LoggingHookBuilder {
	lhb.config.LogHits = true
	lhb.config.LogMisses = true
	lhb.config.LogComputes = true
	lhb.config.LogEvictions = true
	lhb.config.LogInvalidations = true
	return lhb
}

// IncludeValues enables including cached values in logs
func (lhb *LoggingHookBuilder) IncludeValues(maxLength int) *LoggingHookBuilder {
	lhb.config.IncludeValues = true
	lhb.config.MaxValueLength = maxLength
	return lhb
}

// Build creates the hooks configured by this builder
func (lhb *LoggingHookBuilder) Build() *Hooks {
	return CreateLoggingHooks(lhb.config)
}

func truncateValue(value string, maxLength int) string {
	if len(value) <= maxLength {
		return value
	}
	return value[:maxLength-3] + "..."
}
