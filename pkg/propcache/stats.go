package propcache

import (
	"sync/atomic"
)

// Stats holds attribute cache statistics for a class. All counters are
// updated atomically and aggregate across the class's properties and
// instances.
type Stats struct {
	hits              int64
	misses            int64
	computes          int64
	sets              int64
	invalidations     int64
	evictions         int64
	generatorsWrapped int64
	propertyCount     int64
	inFlight          int64
}

// Hits returns the number of reads served from an instance cache.
func (s *Stats) Hits() int64 {
	return atomic.LoadInt64(&s.hits)
}

// Misses returns the number of reads that found no cached value.
func (s *Stats) Misses() int64 {
	return atomic.LoadInt64(&s.misses)
}

// Computes returns the number of getter executions.
func (s *Stats) Computes() int64 {
	return atomic.LoadInt64(&s.computes)
}

// Sets returns the number of assignments through setter hooks.
func (s *Stats) Sets() int64 {
	return atomic.LoadInt64(&s.sets)
}

// Invalidations returns the number of cached values dropped by Delete or
// Invalidate.
func (s *Stats) Invalidations() int64 {
	return atomic.LoadInt64(&s.invalidations)
}

// Evictions returns the number of cached values evicted by bounded stores.
func (s *Stats) Evictions() int64 {
	return atomic.LoadInt64(&s.evictions)
}

// GeneratorsWrapped returns the number of producers wrapped into cached
// generators.
func (s *Stats) GeneratorsWrapped() int64 {
	return atomic.LoadInt64(&s.generatorsWrapped)
}

// PropertyCount returns the number of properties defined on the class.
func (s *Stats) PropertyCount() int64 {
	return atomic.LoadInt64(&s.propertyCount)
}

// InFlight returns the number of getter computations currently running.
func (s *Stats) InFlight() int64 {
	return atomic.LoadInt64(&s.inFlight)
}

// HitRate returns the cache hit rate as a percentage (0-100).
func (s *Stats) HitRate() float64 {
	hits := s.Hits()
	misses := s.Misses()
	total := hits + misses

	if total == 0 {
		return 0
	}

	return float64(hits) / float64(total) * 100
}

// Total returns the total number of reads (hits + misses).
func (s *Stats) Total() int64 {
	return s.Hits() + s.Misses()
}

// Reset resets all counters except the property count, which tracks current
// state rather than accumulated events.
func (s *Stats) Reset() {
	atomic.StoreInt64(&s.hits, 0)
	atomic.StoreInt64(&s.misses, 0)
	atomic.StoreInt64(&s.computes, 0)
	atomic.StoreInt64(&s.sets, 0)
	atomic.StoreInt64(&s.invalidations, 0)
	atomic.StoreInt64(&s.evictions, 0)
	atomic.StoreInt64(&s.generatorsWrapped, 0)
	atomic.StoreInt64(&s.inFlight, 0)
}

// Internal methods for updating stats (not exported)

func (s *Stats) incHits() {
	atomic.AddInt64(&s.hits, 1)
}

func (s *Stats) incMisses() {
	atomic.AddInt64(&s.misses, 1)
}

func (s *Stats) incComputes() {
	atomic.AddInt64(&s.computes, 1)
}

func (s *Stats) incSets() {
	atomic.AddInt64(&s.sets, 1)
}

func (s *Stats) incInvalidations() {
	atomic.AddInt64(&s.invalidations, 1)
}

func (s *Stats) incEvictions() {
	atomic.AddInt64(&s.evictions, 1)
}

func (s *Stats) incGeneratorsWrapped() {
	atomic.AddInt64(&s.generatorsWrapped, 1)
}

func (s *Stats) setPropertyCount(count int64) {
	atomic.StoreInt64(&s.propertyCount, count)
}

func (s *Stats) incInFlight() {
	atomic.AddInt64(&s.inFlight, 1)
}

func (s *Stats) decInFlight() {
	atomic.AddInt64(&s.inFlight, -1)
}
