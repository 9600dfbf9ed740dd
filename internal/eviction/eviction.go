// Package eviction provides pluggable eviction strategies for bounded
// per-instance attribute stores.
package eviction

import "fmt"

// Strategy tracks cached attributes and picks a victim when capacity is
// exceeded. Strategies store the values themselves so the caller needs no
// second map.
type Strategy interface {
	// Add stores a value under a name. If capacity is exceeded it returns the
	// evicted name and value with evicted=true.
	Add(name string, value any) (evictedName string, evictedValue any, evicted bool)

	// Get retrieves a value and updates its position in the eviction order.
	Get(name string) (any, bool)

	// Peek retrieves a value without updating the eviction order.
	Peek(name string) (any, bool)

	// Remove removes a value by name, reporting whether it was present.
	Remove(name string) bool

	// Contains reports whether a name is tracked.
	Contains(name string) bool

	// Keys returns all tracked names.
	Keys() []string

	// Len returns the number of tracked names.
	Len() int

	// Clear removes all tracked names.
	Clear()

	// Capacity returns the maximum number of names the strategy can hold.
	Capacity() int
}

// Type identifies an eviction strategy.
type Type string

const (
	// TypeLRU evicts the least recently used attribute.
	TypeLRU Type = "lru"

	// TypeLFU evicts the least frequently used attribute.
	TypeLFU Type = "lfu"

	// TypeFIFO evicts the attribute cached earliest.
	TypeFIFO Type = "fifo"
)

// Config holds eviction strategy configuration.
type Config struct {
	Type     Type
	Capacity int
}

// NewStrategy creates an eviction strategy from the given config.
func NewStrategy(config Config) (Strategy, error) {
	if config.Capacity <= 0 {
		return nil, fmt.Errorf("eviction: capacity must be positive, got %d", config.Capacity)
	}

	switch config.Type {
	case TypeLRU, "":
		return NewLRUStrategy(config.Capacity)
	case TypeLFU:
		return NewLFUStrategy(config.Capacity), nil
	case TypeFIFO:
		return NewFIFOStrategy(config.Capacity), nil
	default:
		return nil, fmt.Errorf("eviction: unknown strategy type %q", config.Type)
	}
}
