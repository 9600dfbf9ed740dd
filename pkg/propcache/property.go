package propcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/vnykmshr/propcache-go/internal/singleflight"
)

// Property is a memoizing attribute descriptor. The first read on an
// instance runs the getter and caches the result in the instance's attribute
// store; later reads return the cached value without calling the getter.
// Assignment and deletion go through optional setter and deleter hooks and
// keep the cache consistent.
//
// A Property is shared by all instances of its class and is safe for
// concurrent use.
type Property struct {
	mu     sync.RWMutex
	fget   Getter
	fset   Setter
	fdel   Deleter
	doc    string
	args   []any
	kwargs map[string]any

	owner *Class
	name  string

	// Concurrent first reads of the same attribute on the same instance
	// collapse into one getter call.
	sf singleflight.Group[computeKey, any]

	buildErr error
}

type computeKey struct {
	store AttributeStore
	name  string
}

// NewProperty creates an empty property. Attach hooks with Getter, Setter and
// Deleter, then register it with Class.Define.
func NewProperty() *Property {
	return &Property{kwargs: map[string]any{}}
}

// NewPropertyFunc creates a property from already-typed hooks. Any of them
// may be nil.
func NewPropertyFunc(get Getter, set Setter, del Deleter) *Property {
	return &Property{fget: get, fset: set, fdel: del, kwargs: map[string]any{}}
}

// Getter attaches the read hook. fn may be any non-variadic function taking
// the instance first; see AsGetter for the accepted shapes. An unusable fn is
// reported when the property is defined on a class.
func (p *Property) Getter(fn any) *Property {
	g, err := AsGetter(fn)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.recordErr(fmt.Errorf("getter: %w", err))
		return p
	}
	p.fget = g
	return p
}

// Setter attaches the assignment hook; see AsSetter for the accepted shapes.
func (p *Property) Setter(fn any) *Property {
	s, err := AsSetter(fn)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.recordErr(fmt.Errorf("setter: %w", err))
		return p
	}
	p.fset = s
	return p
}

// Deleter attaches the removal hook; see AsDeleter for the accepted shapes.
func (p *Property) Deleter(fn any) *Property {
	d, err := AsDeleter(fn)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.recordErr(fmt.Errorf("deleter: %w", err))
		return p
	}
	p.fdel = d
	return p
}

// WithDoc attaches a documentation string.
func (p *Property) WithDoc(doc string) *Property {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc = doc
	return p
}

// WithArgs sets the positional arguments passed to every hook call after the
// instance (and, for setters, the assigned value).
func (p *Property) WithArgs(args ...any) *Property {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.args = args
	return p
}

// WithKwargs replaces the keyword arguments passed to hooks that accept them.
func (p *Property) WithKwargs(kwargs map[string]any) *Property {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kwargs = map[string]any{}
	for k, v := range kwargs {
		p.kwargs[k] = v
	}
	return p
}

// recordErr keeps the first construction error. Callers hold p.mu.
func (p *Property) recordErr(err error) {
	if p.buildErr == nil {
		p.buildErr = err
	}
}

// Err returns the first error recorded while attaching hooks, or nil. The
// same error also fails Class.Define, so checking it is optional.
func (p *Property) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.buildErr
}

// bind associates the property with a class attribute. Binding happens once;
// a second bind under the same owner and name is a no-op, anything else is
// rejected.
func (p *Property) bind(owner *Class, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.buildErr != nil {
		return p.buildErr
	}
	if p.owner != nil {
		if p.owner == owner && p.name == name {
			return nil
		}
		return fmt.Errorf("%w: %q is bound to %s.%s", ErrRebound, name, p.owner.Name(), p.name)
	}

	p.owner = owner
	p.name = name
	return nil
}

// Get returns the attribute value for inst, computing and caching it on
// first access. A nil instance means class-level access and returns the
// property itself, mirroring how descriptors behave when read off the class.
func (p *Property) Get(inst Instance) (any, error) {
	if inst == nil {
		return p, nil
	}

	p.mu.RLock()
	owner, name := p.owner, p.name
	fget := p.fget
	args, kwargs := p.args, p.kwargs
	p.mu.RUnlock()

	if owner == nil {
		return nil, ErrNotBound
	}

	s := inst.AttributeStore()
	if v, ok := s.Get(name); ok {
		owner.observeHit(name, v)
		return v, nil
	}
	owner.observeMiss(name)

	if fget == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoGetter, owner.Name(), name)
	}

	v, err, _ := p.sf.Do(computeKey{store: s, name: name}, func() (any, error) {
		// Another goroutine may have finished the compute between our miss
		// and joining the flight.
		if v, ok := s.Get(name); ok {
			return v, nil
		}

		owner.computeStarted()
		start := time.Now()
		v, err := fget(inst, args, kwargs)
		owner.computeFinished()
		if err != nil {
			return nil, err
		}
		owner.observeCompute(name, time.Since(start))

		if producer, ok := v.(Producer); ok {
			gen, err := NewCachedGenerator(producer)
			if err != nil {
				return nil, err
			}
			owner.observeGeneratorWrapped(name)
			v = gen
		}

		if err := s.Set(name, v); err != nil {
			return nil, fmt.Errorf("propcache: caching %s.%s: %w", owner.Name(), name, err)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Set assigns a value to the attribute through the setter hook. If the hook
// returns a non-nil value, that value is cached instead of the assigned one,
// so setters can normalize what gets stored. On hook error the cache is left
// untouched.
func (p *Property) Set(inst Instance, value any) error {
	if inst == nil {
		return fmt.Errorf("propcache: cannot set attribute on nil instance")
	}

	p.mu.RLock()
	owner, name := p.owner, p.name
	fset := p.fset
	args, kwargs := p.args, p.kwargs
	p.mu.RUnlock()

	if owner == nil {
		return ErrNotBound
	}
	if fset == nil {
		return fmt.Errorf("%w: %s.%s", ErrNoSetter, owner.Name(), name)
	}

	replacement, err := fset(inst, value, args, kwargs)
	if err != nil {
		return err
	}
	if replacement != nil {
		value = replacement
	}

	if err := inst.AttributeStore().Set(name, value); err != nil {
		return fmt.Errorf("propcache: caching %s.%s: %w", owner.Name(), name, err)
	}
	owner.observeSet(name, value)
	return nil
}

// Delete removes the attribute through the deleter hook and drops any cached
// value. Deleting an attribute that was never cached is not an error. On
// hook error the cache is left untouched.
func (p *Property) Delete(inst Instance) error {
	if inst == nil {
		return fmt.Errorf("propcache: cannot delete attribute on nil instance")
	}

	p.mu.RLock()
	owner, name := p.owner, p.name
	fdel := p.fdel
	args, kwargs := p.args, p.kwargs
	p.mu.RUnlock()

	if owner == nil {
		return ErrNotBound
	}
	if fdel == nil {
		return fmt.Errorf("%w: %s.%s", ErrNoDeleter, owner.Name(), name)
	}

	if err := fdel(inst, args, kwargs); err != nil {
		return err
	}

	if err := inst.AttributeStore().Delete(name); err != nil {
		return fmt.Errorf("propcache: invalidating %s.%s: %w", owner.Name(), name, err)
	}
	owner.observeInvalidate(name)
	return nil
}

// Invalidate drops the cached value without calling the deleter, so the next
// Get recomputes.
func (p *Property) Invalidate(inst Instance) error {
	if inst == nil {
		return fmt.Errorf("propcache: cannot invalidate attribute on nil instance")
	}

	p.mu.RLock()
	owner, name := p.owner, p.name
	p.mu.RUnlock()

	if owner == nil {
		return ErrNotBound
	}
	if err := inst.AttributeStore().Delete(name); err != nil {
		return err
	}
	owner.observeInvalidate(name)
	return nil
}

// Cached reports whether inst currently holds a cached value, without
// triggering a compute.
func (p *Property) Cached(inst Instance) bool {
	p.mu.RLock()
	name := p.name
	p.mu.RUnlock()

	if inst == nil || name == "" {
		return false
	}
	_, ok := inst.AttributeStore().Get(name)
	return ok
}

// Kwarg returns a keyword argument by name.
func (p *Property) Kwarg(name string) (any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.kwargs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKwargNotFound, name)
	}
	return v, nil
}

// SetKwarg stores a keyword argument, overwriting any previous value.
func (p *Property) SetKwarg(name string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.kwargs == nil {
		p.kwargs = map[string]any{}
	}
	p.kwargs[name] = value
}

// Name returns the attribute name the property is bound to, or "".
func (p *Property) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

// Owner returns the class the property is bound to, or nil.
func (p *Property) Owner() *Class {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.owner
}

// Doc returns the documentation string.
func (p *Property) Doc() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc
}

// Args returns a copy of the bound positional arguments.
func (p *Property) Args() []any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]any, len(p.args))
	copy(out, p.args)
	return out
}

// Kwargs returns a copy of the keyword arguments.
func (p *Property) Kwargs() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]any, len(p.kwargs))
	for k, v := range p.kwargs {
		out[k] = v
	}
	return out
}

// HasGetter reports whether a read hook is attached.
func (p *Property) HasGetter() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fget != nil
}

// HasSetter reports whether an assignment hook is attached.
func (p *Property) HasSetter() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fset != nil
}

// HasDeleter reports whether a removal hook is attached.
func (p *Property) HasDeleter() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fdel != nil
}

// Descriptor is the attribute access protocol a Property implements. Foreign
// descriptors can be adapted into memoizing properties with WrapDescriptor.
type Descriptor interface {
	Get(inst Instance) (any, error)
	Set(inst Instance, value any) error
	Delete(inst Instance) error
}

var _ Descriptor = (*Property)(nil)

// WrapDescriptor builds a property whose hooks delegate to an existing
// descriptor, adding memoization on top of its access protocol.
func WrapDescriptor(d Descriptor) (*Property, error) {
	if d == nil {
		return nil, ErrInvalidDescriptor
	}

	return NewPropertyFunc(
		func(inst Instance, _ []any, _ map[string]any) (any, error) {
			return d.Get(inst)
		},
		func(inst Instance, value any, _ []any, _ map[string]any) (any, error) {
			return nil, d.Set(inst, value)
		},
		func(inst Instance, _ []any, _ map[string]any) error {
			return d.Delete(inst)
		},
	), nil
}

// WrapDescriptorInto wraps a descriptor and immediately defines the result on
// a class attribute.
func WrapDescriptorInto(d Descriptor, owner *Class, name string) (*Property, error) {
	p, err := WrapDescriptor(d)
	if err != nil {
		return nil, err
	}
	return owner.Define(name, p)
}
