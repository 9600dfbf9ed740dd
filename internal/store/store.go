package store

// Store is the per-instance attribute mapping the descriptor engine reads and
// writes by attribute name. Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves the cached value for an attribute name.
	Get(name string) (any, bool)

	// Set caches a value under an attribute name, overwriting any prior value.
	Set(name string, value any) error

	// Delete removes the cached value for an attribute name.
	// Deleting an absent name is not an error.
	Delete(name string) error

	// Keys returns the attribute names currently cached.
	Keys() []string

	// Len returns the number of cached attributes.
	Len() int

	// Clear removes every cached attribute.
	Clear() error

	// Close releases any resources held by the store.
	Close() error
}

// EvictCallback is invoked when a cached attribute is evicted to make room.
// It lets the owning class account for the eviction and fire hooks.
type EvictCallback func(name string, value any)

// BoundedStore is implemented by stores with a capacity limit.
type BoundedStore interface {
	Store

	// SetEvictCallback registers a callback fired on capacity evictions.
	SetEvictCallback(callback EvictCallback)

	// Capacity returns the maximum number of attributes the store can hold.
	Capacity() int
}
