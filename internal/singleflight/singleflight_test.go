package singleflight

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoDeduplicates(t *testing.T) {
	var g Group[string, int]
	var calls int32

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err, _ := g.Do("key", func() (int, error) {
				atomic.AddInt32(&calls, 1)
				time.Sleep(20 * time.Millisecond)
				return 42, nil
			})
			if err != nil {
				t.Errorf("Do failed: %v", err)
			}
			results[i] = v
		}(i)
	}
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("fn ran %d times, want 1", n)
	}
	for i, v := range results {
		if v != 42 {
			t.Errorf("result %d = %d", i, v)
		}
	}
}

func TestDoError(t *testing.T) {
	var g Group[string, int]
	want := errors.New("compute failed")

	_, err, _ := g.Do("key", func() (int, error) {
		return 0, want
	})
	if !errors.Is(err, want) {
		t.Errorf("err = %v", err)
	}
}

func TestDoSequentialCallsRunAgain(t *testing.T) {
	var g Group[string, int]
	calls := 0

	for i := 0; i < 3; i++ {
		v, err, shared := g.Do("key", func() (int, error) {
			calls++
			return calls, nil
		})
		if err != nil {
			t.Fatalf("Do failed: %v", err)
		}
		if shared {
			t.Error("sequential call reported shared")
		}
		if v != i+1 {
			t.Errorf("call %d returned %d", i, v)
		}
	}
}

func TestForget(t *testing.T) {
	var g Group[string, int]

	started := make(chan struct{})
	release := make(chan struct{})

	go g.Do("key", func() (int, error) {
		close(started)
		<-release
		return 1, nil
	})

	<-started
	if g.InFlight() != 1 {
		t.Errorf("InFlight = %d, want 1", g.InFlight())
	}

	g.Forget("key")
	if g.InFlight() != 0 {
		t.Errorf("InFlight after Forget = %d, want 0", g.InFlight())
	}

	// A new Do for the forgotten key runs independently.
	v, err, _ := g.Do("key", func() (int, error) { return 2, nil })
	if err != nil || v != 2 {
		t.Errorf("Do after Forget = %d, %v", v, err)
	}

	close(release)
}

func TestDistinctKeysRunIndependently(t *testing.T) {
	var g Group[int, string]
	var calls int32

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g.Do(i, func() (string, error) {
				atomic.AddInt32(&calls, 1)
				return "", nil
			})
		}(i)
	}
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 4 {
		t.Errorf("fn ran %d times, want 4", n)
	}
}
