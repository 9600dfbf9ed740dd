package memory

import (
	"sync"

	"github.com/vnykmshr/propcache-go/internal/eviction"
	"github.com/vnykmshr/propcache-go/internal/store"
)

// StrategyStore is a bounded attribute store with a pluggable eviction
// strategy (LRU, LFU or FIFO). Used when a class configures a non-default
// eviction policy for its instances' attribute caches.
type StrategyStore struct {
	mu            sync.RWMutex
	strategy      eviction.Strategy
	evictCallback store.EvictCallback
}

// NewWithStrategy creates an attribute store using the given eviction config.
func NewWithStrategy(config eviction.Config) (*StrategyStore, error) {
	strategy, err := eviction.NewStrategy(config)
	if err != nil {
		return nil, err
	}
	return &StrategyStore{strategy: strategy}, nil
}

// Get retrieves the cached value for an attribute name.
func (s *StrategyStore) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy.Get(name)
}

// Set caches a value under an attribute name. If the store is at capacity the
// strategy picks a victim, which is reported through the evict callback.
func (s *StrategyStore) Set(name string, value any) error {
	s.mu.Lock()
	evictedName, evictedValue, evicted := s.strategy.Add(name, value)
	callback := s.evictCallback
	s.mu.Unlock()

	if evicted && callback != nil {
		callback(evictedName, evictedValue)
	}
	return nil
}

// Delete removes the cached value for an attribute name.
func (s *StrategyStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.strategy.Remove(name)
	return nil
}

// Keys returns the attribute names currently cached.
func (s *StrategyStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy.Keys()
}

// Len returns the number of cached attributes.
func (s *StrategyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy.Len()
}

// Clear removes every cached attribute.
func (s *StrategyStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.strategy.Clear()
	return nil
}

// Close releases the store.
func (s *StrategyStore) Close() error {
	return s.Clear()
}

// SetEvictCallback registers a callback fired on capacity evictions.
func (s *StrategyStore) SetEvictCallback(callback store.EvictCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictCallback = callback
}

// Capacity returns the maximum number of attributes the store can hold.
func (s *StrategyStore) Capacity() int {
	return s.strategy.Capacity()
}

var _ store.BoundedStore = (*StrategyStore)(nil)
