package memory

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vnykmshr/propcache-go/internal/store"
)

// Unbounded is a plain map-backed attribute store. It is the default backing
// for instances that cache a handful of descriptor values.
type Unbounded struct {
	mu    sync.RWMutex
	attrs map[string]any
}

// NewUnbounded creates an attribute store without a capacity limit.
func NewUnbounded() *Unbounded {
	return &Unbounded{attrs: make(map[string]any)}
}

// Get retrieves the cached value for an attribute name.
func (s *Unbounded) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.attrs[name]
	return v, ok
}

// Set caches a value under an attribute name.
func (s *Unbounded) Set(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attrs[name] = value
	return nil
}

// Delete removes the cached value for an attribute name.
func (s *Unbounded) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.attrs, name)
	return nil
}

// Keys returns the attribute names currently cached.
func (s *Unbounded) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.attrs))
	for name := range s.attrs {
		keys = append(keys, name)
	}
	return keys
}

// Len returns the number of cached attributes.
func (s *Unbounded) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.attrs)
}

// Clear removes every cached attribute.
func (s *Unbounded) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attrs = make(map[string]any)
	return nil
}

// Close releases the store. A map store has nothing to release beyond clearing.
func (s *Unbounded) Close() error {
	return s.Clear()
}

// LRU is a bounded attribute store evicting the least recently used attribute
// once capacity is exceeded. Intended for instances carrying large dynamic
// attribute sets.
type LRU struct {
	mu            sync.RWMutex
	cache         *lru.Cache[string, any]
	evictCallback store.EvictCallback
	capacity      int
}

// New creates a bounded LRU attribute store with the given capacity.
func New(capacity int) (*LRU, error) {
	s := &LRU{capacity: capacity}

	cache, err := lru.NewWithEvict[string, any](capacity, func(name string, value any) {
		if s.evictCallback != nil {
			s.evictCallback(name, value)
		}
	})
	if err != nil {
		return nil, err
	}

	s.cache = cache
	return s, nil
}

// Get retrieves the cached value for an attribute name, marking it recently used.
func (s *LRU) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Get(name)
}

// Set caches a value under an attribute name, evicting the oldest attribute if
// the store is full.
func (s *LRU) Set(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Add(name, value)
	return nil
}

// Delete removes the cached value for an attribute name.
func (s *LRU) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(name)
	return nil
}

// Keys returns the attribute names currently cached.
func (s *LRU) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Keys()
}

// Len returns the number of cached attributes.
func (s *LRU) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Len()
}

// Clear removes every cached attribute.
func (s *LRU) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge()
	return nil
}

// Close releases the store.
func (s *LRU) Close() error {
	return s.Clear()
}

// SetEvictCallback registers a callback fired on capacity evictions.
func (s *LRU) SetEvictCallback(callback store.EvictCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictCallback = callback
}

// Capacity returns the maximum number of attributes the store can hold.
func (s *LRU) Capacity() int {
	return s.capacity
}

var (
	_ store.Store        = (*Unbounded)(nil)
	_ store.Store        = (*LRU)(nil)
	_ store.BoundedStore = (*LRU)(nil)
)
