package propcache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// strictProducer fails the test if pulled more often than its length, which
// would mean the recording is not being replayed.
type strictProducer struct {
	t     *testing.T
	items []any
	pulls int32
}

func (p *strictProducer) Next() (any, bool) {
	n := atomic.AddInt32(&p.pulls, 1)
	if int(n) > len(p.items)+1 {
		p.t.Errorf("producer pulled %d times for %d items", n, len(p.items))
	}
	if int(n) > len(p.items) {
		return nil, false
	}
	return p.items[n-1], true
}

func (p *strictProducer) Exhausted() bool {
	return int(atomic.LoadInt32(&p.pulls)) > len(p.items)
}

func TestCachedGeneratorReplay(t *testing.T) {
	producer := &strictProducer{t: t, items: []any{"a", "b", "c"}}
	gen, err := NewCachedGenerator(producer)
	if err != nil {
		t.Fatalf("NewCachedGenerator failed: %v", err)
	}

	first := gen.Slice()
	second := gen.Slice()

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 values, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("replay diverges at %d: %v != %v", i, first[i], second[i])
		}
	}
}

func TestCachedGeneratorPartialThenRestart(t *testing.T) {
	producer := &strictProducer{t: t, items: []any{1, 2, 3, 4}}
	gen, err := NewCachedGenerator(producer)
	if err != nil {
		t.Fatalf("NewCachedGenerator failed: %v", err)
	}

	c1 := gen.Iter()
	for i := 0; i < 2; i++ {
		if _, ok := c1.Next(); !ok {
			t.Fatalf("cursor 1 ended early at %d", i)
		}
	}

	if got := len(gen.Recorded()); got != 2 {
		t.Errorf("expected 2 recorded values, got %d", got)
	}

	// A fresh cursor replays the recorded prefix then continues the producer.
	c2 := gen.Iter()
	var all []any
	for {
		v, ok := c2.Next()
		if !ok {
			break
		}
		all = append(all, v)
	}
	if len(all) != 4 || all[0] != 1 || all[3] != 4 {
		t.Errorf("unexpected full sequence: %v", all)
	}

	// The first cursor picks up from its own position.
	v, ok := c1.Next()
	if !ok || v != 3 {
		t.Errorf("cursor 1 expected 3, got %v (ok=%v)", v, ok)
	}
}

func TestCachedGeneratorRejectsExhausted(t *testing.T) {
	producer := NewSliceProducer(1)
	for {
		if _, ok := producer.Next(); !ok {
			break
		}
	}

	if _, err := NewCachedGenerator(producer); !errors.Is(err, ErrProducerExhausted) {
		t.Errorf("expected ErrProducerExhausted, got %v", err)
	}
}

func TestCachedGeneratorRejectsNil(t *testing.T) {
	if _, err := NewCachedGenerator(nil); !errors.Is(err, ErrInvalidProducer) {
		t.Errorf("expected ErrInvalidProducer, got %v", err)
	}
}

func TestCachedGeneratorEmptyProducer(t *testing.T) {
	// A fresh producer with no values has not signaled completion yet, so it
	// is accepted and yields an empty sequence.
	gen, err := NewCachedGenerator(NewSliceProducer())
	if err != nil {
		t.Fatalf("empty producer rejected: %v", err)
	}

	if got := gen.Slice(); len(got) != 0 {
		t.Errorf("expected empty sequence, got %v", got)
	}
	if !gen.Exhausted() {
		t.Error("generator should be exhausted after draining")
	}
}

func TestCachedGeneratorConcurrentCursors(t *testing.T) {
	items := make([]any, 100)
	for i := range items {
		items[i] = i
	}
	producer := &strictProducer{t: t, items: items}

	gen, err := NewCachedGenerator(producer)
	if err != nil {
		t.Fatalf("NewCachedGenerator failed: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := gen.Iter()
			pos := 0
			for {
				v, ok := c.Next()
				if !ok {
					break
				}
				if v != pos {
					t.Errorf("expected %d, got %v", pos, v)
					return
				}
				pos++
			}
			if pos != len(items) {
				t.Errorf("cursor saw %d values, want %d", pos, len(items))
			}
		}()
	}
	wg.Wait()
}

func TestCursorReset(t *testing.T) {
	gen, err := NewCachedGenerator(NewSliceProducer("x", "y"))
	if err != nil {
		t.Fatalf("NewCachedGenerator failed: %v", err)
	}

	c := gen.Iter()
	c.Next()
	c.Next()
	c.Reset()

	v, ok := c.Next()
	if !ok || v != "x" {
		t.Errorf("expected restart at x, got %v (ok=%v)", v, ok)
	}
}

func TestGeneratorAsProducer(t *testing.T) {
	gen, err := NewCachedGenerator(NewSliceProducer(1, 2))
	if err != nil {
		t.Fatalf("NewCachedGenerator failed: %v", err)
	}

	rewrapped, err := NewCachedGenerator(gen.AsProducer())
	if err != nil {
		t.Fatalf("rewrap failed: %v", err)
	}

	got := rewrapped.Slice()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("rewrapped sequence wrong: %v", got)
	}
}
