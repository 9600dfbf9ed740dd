// Package propcache provides memoizing attribute descriptors for Go.
//
// A Property computes an attribute value on first read, caches it in the
// owning instance's attribute store, and serves later reads from the cache.
// Optional setter and deleter hooks intercept assignment and removal while
// keeping the cache consistent. Getter results that implement the Producer
// protocol are wrapped in a CachedGenerator, so one-shot sequences are
// recorded once and replayed on every subsequent read.
//
// Properties are registered on a Class, which hosts per-class statistics,
// event hooks, logging and metrics export. Instances are either created
// through Class.NewInstance or supplied by the caller as any type embedding
// CacheHolder (or implementing Instance directly). Attribute stores can be
// unbounded maps, bounded LRU/LFU/FIFO caches, or a Redis side-table shared
// across processes.
package propcache
