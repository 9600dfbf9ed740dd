package eviction

import "sync"

// FIFOStrategy evicts the attribute that was cached earliest.
type FIFOStrategy struct {
	mu       sync.RWMutex
	data     map[string]any
	order    []string
	capacity int
}

// NewFIFOStrategy creates a new FIFO eviction strategy.
func NewFIFOStrategy(capacity int) *FIFOStrategy {
	return &FIFOStrategy{
		data:     make(map[string]any),
		order:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Add stores a value, evicting and returning the oldest entry if the strategy
// is at capacity. Updating an existing name keeps its insertion position.
func (f *FIFOStrategy) Add(name string, value any) (string, any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.data[name]; exists {
		f.data[name] = value
		return "", nil, false
	}

	if len(f.data) >= f.capacity {
		victim := f.order[0]
		f.order = f.order[1:]
		evictedValue := f.data[victim]
		delete(f.data, victim)

		f.data[name] = value
		f.order = append(f.order, name)
		return victim, evictedValue, true
	}

	f.data[name] = value
	f.order = append(f.order, name)
	return "", nil, false
}

// Get retrieves a value. FIFO order is unaffected by access.
func (f *FIFOStrategy) Get(name string) (any, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, found := f.data[name]
	return v, found
}

// Peek retrieves a value. Identical to Get for FIFO.
func (f *FIFOStrategy) Peek(name string) (any, bool) {
	return f.Get(name)
}

// Remove removes a value by name.
func (f *FIFOStrategy) Remove(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.data[name]; !exists {
		return false
	}
	delete(f.data, name)

	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether a name is tracked.
func (f *FIFOStrategy) Contains(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, exists := f.data[name]
	return exists
}

// Keys returns all tracked names in insertion order.
func (f *FIFOStrategy) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	keys := make([]string, len(f.order))
	copy(keys, f.order)
	return keys
}

// Len returns the number of tracked names.
func (f *FIFOStrategy) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.data)
}

// Clear removes all tracked names.
func (f *FIFOStrategy) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data = make(map[string]any)
	f.order = f.order[:0]
}

// Capacity returns the maximum number of names the strategy can hold.
func (f *FIFOStrategy) Capacity() int {
	return f.capacity
}

var _ Strategy = (*FIFOStrategy)(nil)
