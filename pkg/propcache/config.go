package propcache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/propcache-go/pkg/metrics"
)

// StoreType selects the per-instance attribute store backend.
type StoreType string

const (
	// StoreMemory is an unbounded in-memory store (default).
	StoreMemory StoreType = "memory"

	// StoreLRU is a bounded in-memory store evicting least recently used
	// attributes.
	StoreLRU StoreType = "lru"

	// StoreLFU is a bounded in-memory store evicting least frequently used
	// attributes.
	StoreLFU StoreType = "lfu"

	// StoreFIFO is a bounded in-memory store evicting the earliest cached
	// attributes.
	StoreFIFO StoreType = "fifo"

	// StoreRedis keeps cached attributes in Redis so they are shared across
	// processes. Each instance gets its own key prefix.
	StoreRedis StoreType = "redis"
)

// RedisOptions configures the Redis attribute store backend.
type RedisOptions struct {
	// Client is the Redis client to use.
	Client redis.Cmdable

	// KeyPrefix is the application-level prefix; the class name and instance
	// id are appended per instance. Default: "propcache:".
	KeyPrefix string

	// Encoding is "json" or "msgpack". Default: "json".
	Encoding string

	// Context for Redis operations.
	Context context.Context
}

// MetricsOptions wires a metrics exporter into a class.
type MetricsOptions struct {
	// Exporter receives stats snapshots and operation timings.
	Exporter metrics.Exporter

	// Config controls reporting interval and metric names. Nil uses
	// metrics.NewDefaultConfig.
	Config *metrics.Config
}

// Config holds class configuration.
type Config struct {
	// StoreType selects the attribute store backend for instances created
	// through Class.NewInstance.
	StoreType StoreType

	// Capacity bounds the store for LRU, LFU and FIFO backends.
	Capacity int

	// Redis configures the Redis backend. Required when StoreType is
	// StoreRedis.
	Redis *RedisOptions

	// Hooks receive attribute cache events.
	Hooks *Hooks

	// Logger receives internal diagnostics. Nil disables logging.
	Logger Logger

	// Metrics wires an exporter. Nil disables metrics.
	Metrics *MetricsOptions
}

// NewDefaultConfig creates a config with an unbounded in-memory store and no
// observability wired.
func NewDefaultConfig() *Config {
	return &Config{
		StoreType: StoreMemory,
		Hooks:     &Hooks{},
	}
}

// NewLRUConfig creates a config with a bounded LRU store per instance.
func NewLRUConfig(capacity int) *Config {
	return NewDefaultConfig().WithStore(StoreLRU, capacity)
}

// NewRedisConfig creates a config backed by Redis with the default prefix and
// JSON encoding.
func NewRedisConfig(client redis.Cmdable) *Config {
	c := NewDefaultConfig()
	c.StoreType = StoreRedis
	c.Redis = &RedisOptions{Client: client}
	return c
}

// WithStore sets the store backend and, for bounded backends, its capacity.
func (c *Config) WithStore(storeType StoreType, capacity int) *Config {
	c.StoreType = storeType
	c.Capacity = capacity
	return c
}

// WithRedis sets the Redis backend options and switches to the Redis store.
func (c *Config) WithRedis(opts *RedisOptions) *Config {
	c.StoreType = StoreRedis
	c.Redis = opts
	return c
}

// WithHooks merges event hooks into the config.
func (c *Config) WithHooks(hooks *Hooks) *Config {
	if c.Hooks == nil {
		c.Hooks = &Hooks{}
	}
	c.Hooks.Merge(hooks)
	return c
}

// WithLogger sets the logger.
func (c *Config) WithLogger(logger Logger) *Config {
	c.Logger = logger
	return c
}

// WithMetrics wires a metrics exporter.
func (c *Config) WithMetrics(exporter metrics.Exporter, metricsConfig *metrics.Config) *Config {
	c.Metrics = &MetricsOptions{Exporter: exporter, Config: metricsConfig}
	return c
}

// Validate checks the config for inconsistencies.
func (c *Config) Validate() error {
	switch c.StoreType {
	case StoreMemory, "":
	case StoreLRU, StoreLFU, StoreFIFO:
		if c.Capacity <= 0 {
			return fmt.Errorf("propcache: %s store requires a positive capacity", c.StoreType)
		}
	case StoreRedis:
		if c.Redis == nil || c.Redis.Client == nil {
			return fmt.Errorf("propcache: redis store requires a client")
		}
	default:
		return fmt.Errorf("propcache: unknown store type %q", c.StoreType)
	}
	return nil
}
