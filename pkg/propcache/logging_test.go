package propcache

import (
	"sync"
	"testing"
	"time"
)

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []recordedEntry
	fields  []Field
}

type recordedEntry struct {
	level  string
	msg    string
	fields []Field
}

func (l *recordingLogger) record(level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all := append(append([]Field{}, l.fields...), fields...)
	l.entries = append(l.entries, recordedEntry{level: level, msg: msg, fields: all})
}

func (l *recordingLogger) Debug(msg string, fields ...Field) { l.record("DEBUG", msg, fields) }
func (l *recordingLogger) Info(msg string, fields ...Field)  { l.record("INFO", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields ...Field)  { l.record("WARN", msg, fields) }
func (l *recordingLogger) Error(msg string, fields ...Field) { l.record("ERROR", msg, fields) }

func (l *recordingLogger) With(fields ...Field) Logger {
	return &recordingLogger{entries: l.entries, fields: append(l.fields, fields...)}
}

func (l *recordingLogger) byLevel(level string) []recordedEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []recordedEntry
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

func TestLogLevelString(t *testing.T) {
	cases := map[LogLevel]string{
		LogLevelDebug: "DEBUG",
		LogLevelInfo:  "INFO",
		LogLevelWarn:  "WARN",
		LogLevelError: "ERROR",
		LogLevelNone:  "NONE",
		LogLevel(99):  "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", level, got, want)
		}
	}
}

func TestCreateLoggingHooksEvents(t *testing.T) {
	logger := &recordingLogger{}
	hooks := CreateLoggingHooks(&LoggingConfig{
		Logger:           logger,
		LogHits:          true,
		LogMisses:        true,
		LogComputes:      true,
		LogInvalidations: true,
		IncludeValues:    true,
		MaxValueLength:   10,
	})

	c, err := NewClass("Logged", NewDefaultConfig().WithHooks(hooks))
	if err != nil {
		t.Fatalf("NewClass failed: %v", err)
	}

	p := defineProp(t, c, "v", NewPropertyFunc(
		func(Instance, []any, map[string]any) (any, error) { return "value", nil },
		nil,
		func(Instance, []any, map[string]any) error { return nil }))

	inst := &host{}
	p.Get(inst) // miss, compute
	p.Get(inst) // hit
	p.Delete(inst)

	if n := len(logger.byLevel("DEBUG")); n != 2 { // miss + hit
		t.Errorf("debug entries = %d, want 2", n)
	}
	if n := len(logger.byLevel("INFO")); n != 2 { // compute + invalidate
		t.Errorf("info entries = %d, want 2", n)
	}
}

func TestCreateLoggingHooksSlowCompute(t *testing.T) {
	logger := &recordingLogger{}
	hooks := CreateLoggingHooks(&LoggingConfig{
		Logger:               logger,
		LogComputes:          true,
		SlowComputeThreshold: time.Nanosecond,
	})

	hooks.invokeOnCompute("attr", time.Second)

	warns := logger.byLevel("WARN")
	if len(warns) != 1 {
		t.Fatalf("warn entries = %d, want 1", len(warns))
	}
}

func TestCreateLoggingHooksNilConfig(t *testing.T) {
	if hooks := CreateLoggingHooks(nil); hooks == nil || len(hooks.OnHit) != 0 {
		t.Error("nil config should produce empty hooks")
	}
	if hooks := CreateLoggingHooks(&LoggingConfig{}); len(hooks.OnHit) != 0 {
		t.Error("nil logger should produce empty hooks")
	}
}

func TestLoggingHookBuilder(t *testing.T) {
	logger := &recordingLogger{}
	hooks := NewLoggingHookBuilder().
		WithLogger(logger).
		EnableAllLogging().
		IncludeValues(5).
		Build()

	if len(hooks.OnHit) != 1 || len(hooks.OnMiss) != 1 ||
		len(hooks.OnCompute) != 1 || len(hooks.OnEvict) != 1 || len(hooks.OnInvalidate) != 1 {
		t.Error("builder did not enable all hooks")
	}

	hooks.invokeOnHit("attr", "a long value that gets truncated")
	entries := logger.byLevel("DEBUG")
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	for _, f := range entries[0].fields {
		if f.Key == "value" {
			if s, ok := f.Value.(string); !ok || len(s) > 5 {
				t.Errorf("value not truncated: %v", f.Value)
			}
		}
	}
}

func TestTruncateValue(t *testing.T) {
	if got := truncateValue("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncateValue("long enough to cut", 10); got != "long en..." {
		t.Errorf("got %q", got)
	}
}

func TestNoOpLogger(t *testing.T) {
	l := NewNoOpLogger()
	// Must not panic and With returns a usable logger.
	l.Debug("x")
	l.With(F("k", "v")).Info("y")
}
