package propcache

import "errors"

// Constraint errors, reported at construction time.
var (
	// ErrNotCallable is returned when a supplied getter, setter or deleter
	// hook is not a function.
	ErrNotCallable = errors.New("propcache: hook is not callable")

	// ErrInvalidProducer is returned when a cached generator is constructed
	// from something that is not a valid one-shot producer.
	ErrInvalidProducer = errors.New("propcache: invalid producer")

	// ErrInvalidDescriptor is returned when WrapDescriptor is given a nil
	// descriptor.
	ErrInvalidDescriptor = errors.New("propcache: invalid descriptor")

	// ErrProducerExhausted is returned when a cached generator is constructed
	// from a producer that has already signaled completion.
	ErrProducerExhausted = errors.New("propcache: producer already exhausted")
)

// Attribute access errors, reported when an operation lacks its hook.
var (
	// ErrNoGetter is returned on Get when no getter is registered.
	ErrNoGetter = errors.New("propcache: unreadable cached property")

	// ErrNoSetter is returned on Set when no setter is registered.
	ErrNoSetter = errors.New("propcache: cannot assign to read-only cached property")

	// ErrNoDeleter is returned on Delete when no deleter is registered.
	ErrNoDeleter = errors.New("propcache: cannot delete this cached property")
)

// Protocol errors.
var (
	// ErrKwargNotFound is returned when reading a keyword argument that was
	// never set.
	ErrKwargNotFound = errors.New("propcache: keyword argument not found")

	// ErrRebound is returned when a property already bound to a class
	// attribute is bound again under a different owner or name. Binding is a
	// one-time association; a conflicting rebind is configuration misuse and
	// is surfaced at definition time, not at first access.
	ErrRebound = errors.New("propcache: property already bound")

	// ErrNotBound is returned when an instance-level operation is performed
	// on a property that was never bound to a class attribute.
	ErrNotBound = errors.New("propcache: property not bound to a class")
)
