package propcache

import "sync"

// Producer is the one-shot sequence protocol: pull the next value or learn
// that the sequence has completed. A getter result satisfying this capability
// is wrapped in a CachedGenerator before caching, so repeated reads replay the
// sequence instead of re-running it.
//
// Exhausted means "has signaled completion". A fresh producer that happens to
// hold no values is not exhausted until its first pull reports so.
type Producer interface {
	// Next returns the next value. ok is false once the sequence completed.
	Next() (value any, ok bool)

	// Exhausted reports whether the producer has signaled completion.
	Exhausted() bool
}

// FuncProducer adapts a pull function into a Producer.
type FuncProducer struct {
	mu        sync.Mutex
	fn        func() (any, bool)
	exhausted bool
}

// NewFuncProducer wraps a pull function. fn is called once per Next until it
// reports false, after which the producer is exhausted and fn is dropped.
func NewFuncProducer(fn func() (any, bool)) *FuncProducer {
	return &FuncProducer{fn: fn}
}

// Next pulls the next value from the function.
func (p *FuncProducer) Next() (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exhausted || p.fn == nil {
		return nil, false
	}

	v, ok := p.fn()
	if !ok {
		p.exhausted = true
		p.fn = nil
		return nil, false
	}
	return v, true
}

// Exhausted reports whether the function has signaled completion.
func (p *FuncProducer) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exhausted || p.fn == nil
}

// SliceProducer yields the elements of a slice once, in order.
type SliceProducer struct {
	mu        sync.Mutex
	items     []any
	pos       int
	exhausted bool
}

// NewSliceProducer creates a producer over the given values.
func NewSliceProducer(items ...any) *SliceProducer {
	return &SliceProducer{items: items}
}

// Next yields the next element.
func (p *SliceProducer) Next() (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pos >= len(p.items) {
		p.exhausted = true
		return nil, false
	}

	v := p.items[p.pos]
	p.pos++
	return v, true
}

// Exhausted reports whether the producer has signaled completion.
func (p *SliceProducer) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exhausted
}

// ChanProducer yields values received from a channel until it is closed.
type ChanProducer struct {
	mu        sync.Mutex
	ch        <-chan any
	exhausted bool
}

// NewChanProducer creates a producer draining the given channel.
func NewChanProducer(ch <-chan any) *ChanProducer {
	return &ChanProducer{ch: ch}
}

// Next receives the next value from the channel.
func (p *ChanProducer) Next() (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exhausted || p.ch == nil {
		return nil, false
	}

	v, ok := <-p.ch
	if !ok {
		p.exhausted = true
		p.ch = nil
		return nil, false
	}
	return v, true
}

// Exhausted reports whether the channel has been closed and drained.
func (p *ChanProducer) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exhausted || p.ch == nil
}
