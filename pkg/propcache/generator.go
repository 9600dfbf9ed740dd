package propcache

import "sync"

// CachedGenerator records the values pulled from a one-shot producer so the
// sequence can be replayed any number of times. The underlying producer is
// only advanced when a cursor reads past the recorded prefix; values already
// recorded are served from memory.
//
// A CachedGenerator is safe for concurrent use. Cursors obtained from the
// same generator share the recording, so two cursors iterating concurrently
// each observe the full sequence while the producer still runs once.
type CachedGenerator struct {
	mu        sync.Mutex
	producer  Producer
	recorded  []any
	exhausted bool
}

// NewCachedGenerator wraps a producer in a replayable recording. The producer
// must be non-nil and must not have signaled completion yet; a producer that
// simply holds no values is accepted and yields an empty sequence.
func NewCachedGenerator(producer Producer) (*CachedGenerator, error) {
	if producer == nil {
		return nil, ErrInvalidProducer
	}
	if producer.Exhausted() {
		return nil, ErrProducerExhausted
	}
	return &CachedGenerator{producer: producer}, nil
}

// Iter returns a fresh cursor positioned at the start of the sequence.
func (g *CachedGenerator) Iter() *Cursor {
	return &Cursor{gen: g}
}

// at returns the value at index i, pulling from the producer if the recording
// has not reached that far yet.
func (g *CachedGenerator) at(i int) (any, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i >= len(g.recorded) {
		if g.exhausted {
			return nil, false
		}
		v, ok := g.producer.Next()
		if !ok {
			g.exhausted = true
			g.producer = nil
			return nil, false
		}
		g.recorded = append(g.recorded, v)
	}
	return g.recorded[i], true
}

// Recorded returns a copy of the values pulled from the producer so far. It
// does not advance the producer.
func (g *CachedGenerator) Recorded() []any {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]any, len(g.recorded))
	copy(out, g.recorded)
	return out
}

// Exhausted reports whether the underlying producer has signaled completion.
func (g *CachedGenerator) Exhausted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exhausted
}

// Slice drains the remaining producer values and returns the full sequence.
func (g *CachedGenerator) Slice() []any {
	c := g.Iter()
	var out []any
	for {
		v, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Cursor is an independent iteration over a CachedGenerator. A cursor is not
// safe for concurrent use; obtain one cursor per goroutine instead.
type Cursor struct {
	gen *CachedGenerator
	pos int
}

// Next returns the next value in the sequence, replaying recorded values
// before advancing the shared producer.
func (c *Cursor) Next() (any, bool) {
	v, ok := c.gen.at(c.pos)
	if !ok {
		return nil, false
	}
	c.pos++
	return v, true
}

// Reset rewinds the cursor to the start of the sequence.
func (c *Cursor) Reset() {
	c.pos = 0
}

// A CachedGenerator is itself a Producer: iterating it drains a private
// cursor. Wrapping one in another CachedGenerator therefore replays cleanly.
var _ Producer = (*generatorProducer)(nil)

type generatorProducer struct {
	cursor *Cursor
}

// AsProducer exposes the generator's sequence through the Producer protocol,
// backed by a fresh cursor.
func (g *CachedGenerator) AsProducer() Producer {
	return &generatorProducer{cursor: g.Iter()}
}

func (p *generatorProducer) Next() (any, bool) { return p.cursor.Next() }

func (p *generatorProducer) Exhausted() bool {
	g := p.cursor.gen
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exhausted && p.cursor.pos >= len(g.recorded)
}
