package propcache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestHooksFireOnCacheEvents(t *testing.T) {
	var hits, misses, computes, sets, invalidations int32

	hooks := &Hooks{}
	hooks.AddOnHit(func(name string, value any) {
		if name != "v" {
			t.Errorf("hit hook got name %q", name)
		}
		atomic.AddInt32(&hits, 1)
	})
	hooks.AddOnMiss(func(string) { atomic.AddInt32(&misses, 1) })
	hooks.AddOnCompute(func(_ string, d time.Duration) {
		if d < 0 {
			t.Error("negative compute duration")
		}
		atomic.AddInt32(&computes, 1)
	})
	hooks.AddOnSet(func(string, any) { atomic.AddInt32(&sets, 1) })
	hooks.AddOnInvalidate(func(string) { atomic.AddInt32(&invalidations, 1) })

	c, err := NewClass("Hooked", NewDefaultConfig().WithHooks(hooks))
	if err != nil {
		t.Fatalf("NewClass failed: %v", err)
	}

	p := defineProp(t, c, "v", NewPropertyFunc(
		func(Instance, []any, map[string]any) (any, error) { return 1, nil },
		func(Instance, any, []any, map[string]any) (any, error) { return nil, nil },
		func(Instance, []any, map[string]any) error { return nil }))

	inst := &host{}
	p.Get(inst)
	p.Get(inst)
	p.Set(inst, 2)
	p.Delete(inst)

	if atomic.LoadInt32(&misses) != 1 {
		t.Errorf("misses = %d", misses)
	}
	if atomic.LoadInt32(&computes) != 1 {
		t.Errorf("computes = %d", computes)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("hits = %d", hits)
	}
	if atomic.LoadInt32(&sets) != 1 {
		t.Errorf("sets = %d", sets)
	}
	if atomic.LoadInt32(&invalidations) != 1 {
		t.Errorf("invalidations = %d", invalidations)
	}
}

func TestContextHooksFire(t *testing.T) {
	var ctxHits int32

	hooks := &Hooks{}
	hooks.AddOnHitCtx(func(ctx context.Context, name string, value any) {
		if ctx == nil {
			t.Error("nil context in hook")
		}
		atomic.AddInt32(&ctxHits, 1)
	})

	c, err := NewClass("CtxHooked", NewDefaultConfig().WithHooks(hooks))
	if err != nil {
		t.Fatalf("NewClass failed: %v", err)
	}

	p := defineProp(t, c, "v", NewPropertyFunc(
		func(Instance, []any, map[string]any) (any, error) { return 1, nil }, nil, nil))

	inst := &host{}
	p.Get(inst)
	p.Get(inst)

	if atomic.LoadInt32(&ctxHits) != 1 {
		t.Errorf("ctx hits = %d", ctxHits)
	}
}

func TestHooksMerge(t *testing.T) {
	a := &Hooks{}
	a.AddOnHit(func(string, any) {})
	a.AddOnMiss(func(string) {})

	b := &Hooks{}
	b.AddOnHit(func(string, any) {})
	b.AddOnEvict(func(string, any) {})
	b.AddOnGeneratorWrap(func(string) {})

	a.Merge(b)
	a.Merge(nil)

	if len(a.OnHit) != 2 || len(a.OnMiss) != 1 || len(a.OnEvict) != 1 || len(a.OnGeneratorWrap) != 1 {
		t.Errorf("merge wrong: hit=%d miss=%d evict=%d gen=%d",
			len(a.OnHit), len(a.OnMiss), len(a.OnEvict), len(a.OnGeneratorWrap))
	}
}

func TestNilHooksAreSkipped(t *testing.T) {
	h := &Hooks{
		OnHit:        []OnHitHook{nil},
		OnMiss:       []OnMissHook{nil},
		OnInvalidate: []OnInvalidateHook{nil},
	}

	// Must not panic.
	h.invokeOnHit("a", 1)
	h.invokeOnMiss("a")
	h.invokeOnInvalidate("a")
}
