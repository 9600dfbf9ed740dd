package eviction

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUStrategy evicts the least recently used attribute.
type LRUStrategy struct {
	mu       sync.RWMutex
	cache    *lru.Cache[string, any]
	capacity int
}

// NewLRUStrategy creates a new LRU eviction strategy.
func NewLRUStrategy(capacity int) (*LRUStrategy, error) {
	cache, err := lru.New[string, any](capacity)
	if err != nil {
		return nil, err
	}

	return &LRUStrategy{
		cache:    cache,
		capacity: capacity,
	}, nil
}

// Add stores a value, evicting and returning the least recently used entry if
// the strategy is at capacity.
func (l *LRUStrategy) Add(name string, value any) (string, any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cache.Contains(name) {
		l.cache.Add(name, value)
		return "", nil, false
	}

	if l.cache.Len() >= l.capacity {
		evictedName, evictedValue, ok := l.cache.RemoveOldest()
		l.cache.Add(name, value)
		if ok {
			return evictedName, evictedValue, true
		}
		return "", nil, false
	}

	l.cache.Add(name, value)
	return "", nil, false
}

// Get retrieves a value and marks it recently used.
func (l *LRUStrategy) Get(name string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Get(name)
}

// Peek retrieves a value without touching the recency order.
func (l *LRUStrategy) Peek(name string) (any, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache.Peek(name)
}

// Remove removes a value by name.
func (l *LRUStrategy) Remove(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Remove(name)
}

// Contains reports whether a name is tracked.
func (l *LRUStrategy) Contains(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache.Contains(name)
}

// Keys returns all tracked names.
func (l *LRUStrategy) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache.Keys()
}

// Len returns the number of tracked names.
func (l *LRUStrategy) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache.Len()
}

// Clear removes all tracked names.
func (l *LRUStrategy) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Purge()
}

// Capacity returns the maximum number of names the strategy can hold.
func (l *LRUStrategy) Capacity() int {
	return l.capacity
}

var _ Strategy = (*LRUStrategy)(nil)
