package eviction

import "sync"

// LFUStrategy evicts the least frequently used attribute.
type LFUStrategy struct {
	mu          sync.RWMutex
	data        map[string]any
	frequencies map[string]int
	capacity    int
}

// NewLFUStrategy creates a new LFU eviction strategy.
func NewLFUStrategy(capacity int) *LFUStrategy {
	return &LFUStrategy{
		data:        make(map[string]any),
		frequencies: make(map[string]int),
		capacity:    capacity,
	}
}

// Add stores a value, evicting and returning the least frequently used entry
// if the strategy is at capacity.
func (l *LFUStrategy) Add(name string, value any) (string, any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.data[name]; exists {
		l.data[name] = value
		l.frequencies[name]++
		return "", nil, false
	}

	if len(l.data) >= l.capacity {
		victim := l.findLFU()
		if victim != "" {
			evictedValue := l.data[victim]
			delete(l.data, victim)
			delete(l.frequencies, victim)

			l.data[name] = value
			l.frequencies[name] = 1
			return victim, evictedValue, true
		}
	}

	l.data[name] = value
	l.frequencies[name] = 1
	return "", nil, false
}

// Get retrieves a value and bumps its use count.
func (l *LFUStrategy) Get(name string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, found := l.data[name]
	if found {
		l.frequencies[name]++
	}
	return v, found
}

// Peek retrieves a value without bumping its use count.
func (l *LFUStrategy) Peek(name string) (any, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	v, found := l.data[name]
	return v, found
}

// Remove removes a value by name.
func (l *LFUStrategy) Remove(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.data[name]; !exists {
		return false
	}
	delete(l.data, name)
	delete(l.frequencies, name)
	return true
}

// Contains reports whether a name is tracked.
func (l *LFUStrategy) Contains(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, exists := l.data[name]
	return exists
}

// Keys returns all tracked names.
func (l *LFUStrategy) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.data))
	for name := range l.data {
		keys = append(keys, name)
	}
	return keys
}

// Len returns the number of tracked names.
func (l *LFUStrategy) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.data)
}

// Clear removes all tracked names.
func (l *LFUStrategy) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.data = make(map[string]any)
	l.frequencies = make(map[string]int)
}

// Capacity returns the maximum number of names the strategy can hold.
func (l *LFUStrategy) Capacity() int {
	return l.capacity
}

// findLFU returns the name with the lowest use count. Caller holds the lock.
func (l *LFUStrategy) findLFU() string {
	var victim string
	minFreq := -1

	for name, freq := range l.frequencies {
		if minFreq == -1 || freq < minFreq {
			minFreq = freq
			victim = name
		}
	}
	return victim
}

var _ Strategy = (*LFUStrategy)(nil)
