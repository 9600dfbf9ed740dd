package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// newTestStore connects to the Redis named by REDIS_ADDR, skipping the test
// when no server is available.
func newTestStore(t *testing.T, encoding Encoding) *Store {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis store tests")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis at %s not reachable: %v", addr, err)
	}

	s, err := New(&Config{
		Client:    client,
		KeyPrefix: "propcache-test:" + t.Name() + ":",
		Encoding:  encoding,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Cleanup(func() {
		s.Clear()
		client.Close()
	})
	return s
}

func TestNewValidation(t *testing.T) {
	if _, err := New(&Config{}); err == nil {
		t.Error("expected error for missing client")
	}

	client := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	defer client.Close()

	if _, err := New(&Config{Client: client, Encoding: "xml"}); err == nil {
		t.Error("expected error for unsupported encoding")
	}

	s, err := New(&Config{Client: client})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.keyPrefix != "propcache:" {
		t.Errorf("default prefix = %q", s.keyPrefix)
	}
	if s.encoding != EncodingJSON {
		t.Errorf("default encoding = %q", s.encoding)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for _, encoding := range []Encoding{EncodingJSON, EncodingMsgpack} {
		t.Run(string(encoding), func(t *testing.T) {
			s := newTestStore(t, encoding)

			if err := s.Set("health", 100.0); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			v, ok := s.Get("health")
			if !ok {
				t.Fatal("expected cached value")
			}
			if f, ok := v.(float64); !ok || f != 100 {
				t.Errorf("got %v (%T)", v, v)
			}

			if _, ok := s.Get("missing"); ok {
				t.Error("unexpected value for missing attribute")
			}
		})
	}
}

func TestStoreKeysScopedToPrefix(t *testing.T) {
	s := newTestStore(t, EncodingJSON)

	s.Set("a", 1)
	s.Set("b", 2)

	keys := s.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys = %v", keys)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d", s.Len())
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := s.Get("a"); ok {
		t.Error("a survived Delete")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
}

func TestStoreCorruptedValueIsMiss(t *testing.T) {
	s := newTestStore(t, EncodingJSON)

	// Write garbage directly under the store's key.
	ctx := context.Background()
	if err := s.client.Set(ctx, s.buildKey("broken"), "not json", 0).Err(); err != nil {
		t.Fatalf("raw Set failed: %v", err)
	}

	if _, ok := s.Get("broken"); ok {
		t.Error("corrupted value should read as a miss")
	}
	// The corrupted key is dropped so later writes are clean.
	if _, ok := s.Get("broken"); ok {
		t.Error("corrupted key should have been removed")
	}
}
