// Package singleflight deduplicates concurrent computations of the same
// cached attribute. When several goroutines race to compute the value of one
// instance's property, only the first runs the getter; the rest wait and
// receive the same result.
package singleflight

import "sync"

// Group forms a namespace in which computations can be executed with
// duplicate suppression.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*call[V]
}

// call is an in-flight or completed Do call.
type call[V any] struct {
	wg sync.WaitGroup

	// Written once before the WaitGroup is done,
	// only read after the WaitGroup is done.
	val V
	err error

	// Read and written with the Group's mutex held.
	dups int
}

// Do executes and returns the result of fn, making sure only one execution is
// in flight for a given key at a time. Duplicate callers wait for the original
// to complete and receive the same result. shared reports whether the result
// was given to more than one caller.
func (g *Group[K, V]) Do(key K, fn func() (V, error)) (v V, err error, shared bool) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*call[V])
	}
	if c, ok := g.m[key]; ok {
		c.dups++
		g.mu.Unlock()
		c.wg.Wait()

		return c.val, c.err, true
	}
	c := new(call[V])
	c.wg.Add(1)
	g.m[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.wg.Done()

	g.mu.Lock()
	delete(g.m, key)
	shared = c.dups > 0
	g.mu.Unlock()

	return c.val, c.err, shared
}

// Forget drops an in-flight key. Future Do calls for the key will run the
// function instead of waiting for the earlier call to complete.
func (g *Group[K, V]) Forget(key K) {
	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()
}

// InFlight returns the number of keys currently being computed.
func (g *Group[K, V]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.m)
}
