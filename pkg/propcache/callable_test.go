package propcache

import (
	"errors"
	"testing"
)

func TestAsGetterShapes(t *testing.T) {
	inst := &host{name: "n"}

	t.Run("plain value", func(t *testing.T) {
		g, err := AsGetter(func(h *host) string { return h.name })
		if err != nil {
			t.Fatalf("AsGetter failed: %v", err)
		}
		v, err := g(inst, nil, nil)
		if err != nil || v != "n" {
			t.Errorf("got %v, %v", v, err)
		}
	})

	t.Run("value and error", func(t *testing.T) {
		g, err := AsGetter(func(*host) (int, error) { return 7, nil })
		if err != nil {
			t.Fatalf("AsGetter failed: %v", err)
		}
		v, err := g(inst, nil, nil)
		if err != nil || v != 7 {
			t.Errorf("got %v, %v", v, err)
		}
	})

	t.Run("error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		g, err := AsGetter(func(*host) (int, error) { return 0, boom })
		if err != nil {
			t.Fatalf("AsGetter failed: %v", err)
		}
		if _, err := g(inst, nil, nil); !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
	})

	t.Run("bound args", func(t *testing.T) {
		g, err := AsGetter(func(_ *host, a, b int) int { return a + b })
		if err != nil {
			t.Fatalf("AsGetter failed: %v", err)
		}
		v, err := g(inst, []any{2, 3}, nil)
		if err != nil || v != 5 {
			t.Errorf("got %v, %v", v, err)
		}
	})

	t.Run("kwargs param", func(t *testing.T) {
		g, err := AsGetter(func(_ *host, kw map[string]any) any { return kw["k"] })
		if err != nil {
			t.Fatalf("AsGetter failed: %v", err)
		}
		v, err := g(inst, nil, map[string]any{"k": "v"})
		if err != nil || v != "v" {
			t.Errorf("got %v, %v", v, err)
		}
	})

	t.Run("typed getter passes through", func(t *testing.T) {
		orig := Getter(func(Instance, []any, map[string]any) (any, error) { return 1, nil })
		g, err := AsGetter(orig)
		if err != nil {
			t.Fatalf("AsGetter failed: %v", err)
		}
		if v, _ := g(inst, nil, nil); v != 1 {
			t.Errorf("got %v", v)
		}
	})
}

func TestAsGetterRejections(t *testing.T) {
	cases := []struct {
		name string
		fn   any
	}{
		{"nil", nil},
		{"not a function", 42},
		{"string", "getter"},
		{"variadic", func(_ *host, xs ...int) int { return 0 }},
		{"no results", func(*host) {}},
		{"two values", func(*host) (int, int) { return 0, 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := AsGetter(tc.fn); !errors.Is(err, ErrNotCallable) {
				t.Errorf("expected ErrNotCallable, got %v", err)
			}
		})
	}
}

func TestAsGetterArgumentMismatch(t *testing.T) {
	g, err := AsGetter(func(_ *host, a int) int { return a })
	if err != nil {
		t.Fatalf("AsGetter failed: %v", err)
	}

	if _, err := g(&host{}, nil, nil); err == nil {
		t.Error("expected argument count error")
	}
	if _, err := g(&host{}, []any{"wrong type"}, nil); err == nil {
		t.Error("expected argument type error")
	}
}

func TestAsSetterShapes(t *testing.T) {
	inst := &host{}

	t.Run("no result", func(t *testing.T) {
		var got any
		s, err := AsSetter(func(_ *host, v string) { got = v })
		if err != nil {
			t.Fatalf("AsSetter failed: %v", err)
		}
		replacement, err := s(inst, "x", nil, nil)
		if err != nil || replacement != nil {
			t.Errorf("got %v, %v", replacement, err)
		}
		if got != "x" {
			t.Errorf("setter did not receive value: %v", got)
		}
	})

	t.Run("transforming", func(t *testing.T) {
		s, err := AsSetter(func(_ *host, v int) int { return v * 2 })
		if err != nil {
			t.Fatalf("AsSetter failed: %v", err)
		}
		replacement, err := s(inst, 21, nil, nil)
		if err != nil || replacement != 42 {
			t.Errorf("got %v, %v", replacement, err)
		}
	})

	t.Run("error only", func(t *testing.T) {
		s, err := AsSetter(func(_ *host, _ int) error { return errors.New("no") })
		if err != nil {
			t.Fatalf("AsSetter failed: %v", err)
		}
		if _, err := s(inst, 1, nil, nil); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("too many results", func(t *testing.T) {
		if _, err := AsSetter(func(*host, int) (int, int) { return 0, 0 }); !errors.Is(err, ErrNotCallable) {
			t.Errorf("expected ErrNotCallable, got %v", err)
		}
	})
}

func TestAsDeleterShapes(t *testing.T) {
	inst := &host{}

	t.Run("no result", func(t *testing.T) {
		called := false
		d, err := AsDeleter(func(*host) { called = true })
		if err != nil {
			t.Fatalf("AsDeleter failed: %v", err)
		}
		if err := d(inst, nil, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !called {
			t.Error("deleter not invoked")
		}
	})

	t.Run("error result", func(t *testing.T) {
		d, err := AsDeleter(func(*host) error { return errors.New("locked") })
		if err != nil {
			t.Fatalf("AsDeleter failed: %v", err)
		}
		if err := d(inst, nil, nil); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("value result rejected", func(t *testing.T) {
		if _, err := AsDeleter(func(*host) int { return 0 }); !errors.Is(err, ErrNotCallable) {
			t.Errorf("expected ErrNotCallable, got %v", err)
		}
	})
}

func TestConformArgConversion(t *testing.T) {
	// int arguments convert to wider parameter types
	g, err := AsGetter(func(_ *host, n int64) int64 { return n + 1 })
	if err != nil {
		t.Fatalf("AsGetter failed: %v", err)
	}

	v, err := g(&host{}, []any{int(41)}, nil)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if v != int64(42) {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestConformArgNil(t *testing.T) {
	g, err := AsGetter(func(_ *host, p *int) bool { return p == nil })
	if err != nil {
		t.Fatalf("AsGetter failed: %v", err)
	}

	v, err := g(&host{}, []any{nil}, nil)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if v != true {
		t.Error("nil argument should become the zero value")
	}
}

func TestFluentBuilderReportsBadHook(t *testing.T) {
	c := newTestClass(t)

	p := NewProperty().Getter("not callable")
	if _, err := c.Define("bad", p); !errors.Is(err, ErrNotCallable) {
		t.Errorf("expected ErrNotCallable at define time, got %v", err)
	}
}
