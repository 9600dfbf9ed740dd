package propcache

import (
	"sync"
	"testing"
)

func TestStatsHitRate(t *testing.T) {
	s := &Stats{}

	if s.HitRate() != 0 {
		t.Errorf("empty stats HitRate = %f", s.HitRate())
	}

	for i := 0; i < 3; i++ {
		s.incHits()
	}
	s.incMisses()

	if got := s.HitRate(); got != 75 {
		t.Errorf("HitRate = %f, want 75", got)
	}
	if s.Total() != 4 {
		t.Errorf("Total = %d, want 4", s.Total())
	}
}

func TestStatsReset(t *testing.T) {
	s := &Stats{}
	s.incHits()
	s.incMisses()
	s.incComputes()
	s.incSets()
	s.incInvalidations()
	s.incEvictions()
	s.incGeneratorsWrapped()
	s.setPropertyCount(7)
	s.incInFlight()

	s.Reset()

	if s.Hits() != 0 || s.Misses() != 0 || s.Computes() != 0 || s.Sets() != 0 ||
		s.Invalidations() != 0 || s.Evictions() != 0 || s.GeneratorsWrapped() != 0 || s.InFlight() != 0 {
		t.Error("Reset did not zero counters")
	}
	if s.PropertyCount() != 7 {
		t.Errorf("Reset must keep property count, got %d", s.PropertyCount())
	}
}

func TestStatsConcurrentUpdates(t *testing.T) {
	s := &Stats{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.incHits()
				s.incMisses()
			}
		}()
	}
	wg.Wait()

	if s.Hits() != 1000 || s.Misses() != 1000 {
		t.Errorf("hits=%d misses=%d, want 1000 each", s.Hits(), s.Misses())
	}
	if s.HitRate() != 50 {
		t.Errorf("HitRate = %f, want 50", s.HitRate())
	}
}
