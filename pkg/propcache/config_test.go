package propcache

import (
	"testing"

	"github.com/vnykmshr/propcache-go/pkg/metrics"
)

func TestConfigDefaults(t *testing.T) {
	c := NewDefaultConfig()
	if c.StoreType != StoreMemory {
		t.Errorf("StoreType = %q", c.StoreType)
	}
	if c.Hooks == nil {
		t.Error("Hooks should be initialized")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigChaining(t *testing.T) {
	hooks := &Hooks{}
	hooks.AddOnHit(func(string, any) {})

	c := NewDefaultConfig().
		WithStore(StoreLRU, 16).
		WithLogger(NewNoOpLogger()).
		WithHooks(hooks).
		WithMetrics(metrics.NewNoOpExporter(), metrics.NewDefaultConfig())

	if c.StoreType != StoreLRU || c.Capacity != 16 {
		t.Errorf("store config wrong: %q/%d", c.StoreType, c.Capacity)
	}
	if c.Logger == nil || c.Metrics == nil || c.Metrics.Exporter == nil {
		t.Error("chained options missing")
	}
	if len(c.Hooks.OnHit) != 1 {
		t.Errorf("hooks not merged: %d", len(c.Hooks.OnHit))
	}
	if err := c.Validate(); err != nil {
		t.Errorf("config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"memory", &Config{StoreType: StoreMemory}, false},
		{"empty store type", &Config{}, false},
		{"lru ok", &Config{StoreType: StoreLRU, Capacity: 1}, false},
		{"lru zero capacity", &Config{StoreType: StoreLRU}, true},
		{"lfu negative capacity", &Config{StoreType: StoreLFU, Capacity: -1}, true},
		{"fifo zero capacity", &Config{StoreType: StoreFIFO}, true},
		{"redis no client", &Config{StoreType: StoreRedis}, true},
		{"unknown", &Config{StoreType: "weird"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewLRUConfig(t *testing.T) {
	c := NewLRUConfig(8)
	if c.StoreType != StoreLRU || c.Capacity != 8 {
		t.Errorf("unexpected config: %q/%d", c.StoreType, c.Capacity)
	}
}
