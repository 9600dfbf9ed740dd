package propcache

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vnykmshr/propcache-go/internal/store"
	"github.com/vnykmshr/propcache-go/internal/store/memory"
)

// AttributeStore is the per-instance storage a cached property reads and
// writes. Implementations must be safe for concurrent use.
type AttributeStore = store.Store

// Instance is anything that can host cached attributes. Embed CacheHolder to
// satisfy it with a private in-memory store, or implement AttributeStore
// yourself to back attributes with shared storage such as Redis.
type Instance interface {
	AttributeStore() AttributeStore
}

// CacheHolder is an embeddable default Instance implementation. The zero
// value is ready to use; the store is created lazily on first access.
type CacheHolder struct {
	mu    sync.Mutex
	store AttributeStore
}

// AttributeStore returns the instance's attribute store, creating an
// unbounded in-memory store on first call.
func (h *CacheHolder) AttributeStore() AttributeStore {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store == nil {
		h.store = memory.NewUnbounded()
	}
	return h.store
}

// UseStore replaces the instance's attribute store. Call it before any
// property access; later calls would orphan already-cached values.
func (h *CacheHolder) UseStore(s AttributeStore) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store = s
}

// NewInstanceID returns a unique identifier suitable for keying an instance
// in shared storage, e.g. a Redis key prefix.
func NewInstanceID() string {
	return uuid.NewString()
}
