package propcache

import (
	"context"
	"time"
)

// Hooks defines event callbacks for attribute cache operations
type Hooks struct {
	// OnHit is called when a read is served from the instance cache
	OnHit []OnHitHook

	// OnMiss is called when a read finds no cached value
	OnMiss []OnMissHook

	// OnCompute is called after a getter runs successfully
	OnCompute []OnComputeHook

	// OnSet is called after an assignment is cached
	OnSet []OnSetHook

	// OnInvalidate is called when a cached value is dropped
	OnInvalidate []OnInvalidateHook

	// OnEvict is called when a bounded store evicts a cached value
	OnEvict []OnEvictHook

	// OnGeneratorWrap is called when a getter result is wrapped in a
	// cached generator
	OnGeneratorWrap []OnGeneratorWrapHook

	// Context-aware variants
	OnHitCtx        []OnHitHookCtx
	OnMissCtx       []OnMissHookCtx
	OnInvalidateCtx []OnInvalidateHookCtx
}

// Hook function type definitions
type (
	// OnHitHook is called with the attribute name and the cached value
	OnHitHook func(name string, value any)

	// OnMissHook is called with the attribute name
	OnMissHook func(name string)

	// OnComputeHook is called with the attribute name and getter duration
	OnComputeHook func(name string, duration time.Duration)

	// OnSetHook is called with the attribute name and the value cached
	OnSetHook func(name string, value any)

	// OnInvalidateHook is called with the attribute name
	OnInvalidateHook func(name string)

	// OnEvictHook is called with the evicted attribute name and value
	OnEvictHook func(name string, value any)

	// OnGeneratorWrapHook is called with the attribute name
	OnGeneratorWrapHook func(name string)

	// OnHitHookCtx is the context-aware variant of OnHitHook
	OnHitHookCtx func(ctx context.Context, name string, value any)

	// OnMissHookCtx is the context-aware variant of OnMissHook
	OnMissHookCtx func(ctx context.Context, name string)

	// OnInvalidateHookCtx is the context-aware variant of OnInvalidateHook
	OnInvalidateHookCtx func(ctx context.Context, name string)
)

// AddOnHit adds an OnHit hook
func (h *Hooks) AddOnHit(hook OnHitHook) {
	h.OnHit = append(h.OnHit, hook)
}

// AddOnMiss adds an OnMiss hook
func (h *Hooks) AddOnMiss(hook OnMissHook) {
	h.OnMiss = append(h.OnMiss, hook)
}

// AddOnCompute adds an OnCompute hook
func (h *Hooks) AddOnCompute(hook OnComputeHook) {
	h.OnCompute = append(h.OnCompute, hook)
}

// AddOnSet adds an OnSet hook
func (h *Hooks) AddOnSet(hook OnSetHook) {
	h.OnSet = append(h.OnSet, hook)
}

// AddOnInvalidate adds an OnInvalidate hook
func (h *Hooks) AddOnInvalidate(hook OnInvalidateHook) {
	h.OnInvalidate = append(h.OnInvalidate, hook)
}

// AddOnEvict adds an OnEvict hook
func (h *Hooks) AddOnEvict(hook OnEvictHook) {
	h.OnEvict = append(h.OnEvict, hook)
}

// AddOnGeneratorWrap adds an OnGeneratorWrap hook
func (h *Hooks) AddOnGeneratorWrap(hook OnGeneratorWrapHook) {
	h.OnGeneratorWrap = append(h.OnGeneratorWrap, hook)
}

// AddOnHitCtx adds a context-aware OnHit hook
func (h *Hooks) AddOnHitCtx(hook OnHitHookCtx) {
	h.OnHitCtx = append(h.OnHitCtx, hook)
}

// AddOnMissCtx adds a context-aware OnMiss hook
func (h *Hooks) AddOnMissCtx(hook OnMissHookCtx) {
	h.OnMissCtx = append(h.OnMissCtx, hook)
}

// AddOnInvalidateCtx adds a context-aware OnInvalidate hook
func (h *Hooks) AddOnInvalidateCtx(hook OnInvalidateHookCtx) {
	h.OnInvalidateCtx = append(h.OnInvalidateCtx, hook)
}

// invokeOnHit calls all OnHit and OnHitCtx hooks
func (h *Hooks) invokeOnHit(name string, value any) {
	for _, hook := range h.OnHit {
		if hook != nil {
			hook(name, value)
		}
	}
	for _, hook := range h.OnHitCtx {
		if hook != nil {
			hook(context.Background(), name, value)
		}
	}
}

// invokeOnMiss calls all OnMiss and OnMissCtx hooks
func (h *Hooks) invokeOnMiss(name string) {
	for _, hook := range h.OnMiss {
		if hook != nil {
			hook(name)
		}
	}
	for _, hook := range h.OnMissCtx {
		if hook != nil {
			hook(context.Background(), name)
		}
	}
}

// invokeOnCompute calls all OnCompute hooks
func (h *Hooks) invokeOnCompute(name string, duration time.Duration) {
	for _, hook := range h.OnCompute {
		if hook != nil {
			hook(name, duration)
		}
	}
}

// invokeOnSet calls all OnSet hooks
func (h *Hooks) invokeOnSet(name string, value any) {
	for _, hook := range h.OnSet {
		if hook != nil {
			hook(name, value)
		}
	}
}

// invokeOnInvalidate calls all OnInvalidate and OnInvalidateCtx hooks
func (h *Hooks) invokeOnInvalidate(name string) {
	for _, hook := range h.OnInvalidate {
		if hook != nil {
			hook(name)
		}
	}
	for _, hook := range h.OnInvalidateCtx {
		if hook != nil {
			hook(context.Background(), name)
		}
	}
}

// invokeOnEvict calls all OnEvict hooks
func (h *Hooks) invokeOnEvict(name string, value any) {
	for _, hook := range h.OnEvict {
		if hook != nil {
			hook(name, value)
		}
	}
}

// invokeOnGeneratorWrap calls all OnGeneratorWrap hooks
func (h *Hooks) invokeOnGeneratorWrap(name string) {
	for _, hook := range h.OnGeneratorWrap {
		if hook != nil {
			hook(name)
		}
	}
}

// Merge appends all hooks from other into h.
func (h *Hooks) Merge(other *Hooks) {
	if other == nil {
		return
	}
	h.OnHit = append(h.OnHit, other.OnHit...)
	h.OnMiss = append(h.OnMiss, other.OnMiss...)
	h.OnCompute = append(h.OnCompute, other.OnCompute...)
	h.OnSet = append(h.OnSet, other.OnSet...)
	h.OnInvalidate = append(h.OnInvalidate, other.OnInvalidate...)
	h.OnEvict = append(h.OnEvict, other.OnEvict...)
	h.OnGeneratorWrap = append(h.OnGeneratorWrap, other.OnGeneratorWrap...)
	h.OnHitCtx = append(h.OnHitCtx, other.OnHitCtx...)
	h.OnMissCtx = append(h.OnMissCtx, other.OnMissCtx...)
	h.OnInvalidateCtx = append(h.OnInvalidateCtx, other.OnInvalidateCtx...)
}
