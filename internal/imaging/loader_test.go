package imaging

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// countingLoader returns a LoadFunc that serves constant grids and counts
// how often it was called.
func countingLoader(calls *int, mu *sync.Mutex) LoadFunc {
	return func(path string) (*Grid, error) {
		mu.Lock()
		*calls++
		mu.Unlock()
		if path == "missing.pgm" {
			return nil, fmt.Errorf("open %s: %w", path, ErrIOFailure)
		}
		return Fill(2, 2, 255, len(path)), nil
	}
}

func TestGridCache_Load(t *testing.T) {
	var calls int
	var mu sync.Mutex
	cache := NewGridCache(countingLoader(&calls, &mu))

	g1, err := cache.Load("a.pgm")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	g2, err := cache.Load("a.pgm")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	if g1 != g2 {
		t.Error("second Load should return the cached grid")
	}
	if calls != 1 {
		t.Errorf("loader calls: got %d, want 1", calls)
	}
}

func TestGridCache_LoadError(t *testing.T) {
	var calls int
	var mu sync.Mutex
	cache := NewGridCache(countingLoader(&calls, &mu))

	if _, err := cache.Load("missing.pgm"); !errors.Is(err, ErrIOFailure) {
		t.Errorf("Load: got %v, want ErrIOFailure", err)
	}
	if cache.Len() != 0 {
		t.Errorf("failed load should not be cached, Len = %d", cache.Len())
	}
}

func TestGridCache_Handles(t *testing.T) {
	cache := NewGridCache(nil)
	g := Fill(3, 3, 255, 1)

	h := cache.Put(g)
	if h == "" {
		t.Fatal("Put returned an empty handle")
	}
	if h2 := cache.Put(g); h2 == h {
		t.Error("Put should return a fresh handle each time")
	}

	got, err := cache.Get(h)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != g {
		t.Error("Get returned a different grid")
	}

	if _, err := cache.Get("no-such-handle"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Get unknown: got %v, want ErrInvalidParameter", err)
	}
}

func TestGridCache_Resolve(t *testing.T) {
	var calls int
	var mu sync.Mutex
	cache := NewGridCache(countingLoader(&calls, &mu))
	h := cache.Put(Fill(1, 1, 255, 42))

	g, err := cache.Resolve(h, "ignored.pgm")
	if err != nil {
		t.Fatalf("Resolve by handle failed: %v", err)
	}
	if g.At(0, 0) != 42 || calls != 0 {
		t.Errorf("Resolve should prefer the handle, got sample %d with %d loads", g.At(0, 0), calls)
	}

	if _, err := cache.Resolve("", "b.pgm"); err != nil {
		t.Fatalf("Resolve by path failed: %v", err)
	}
	if _, err := cache.Resolve("", ""); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Resolve with nothing: got %v, want ErrInvalidParameter", err)
	}
}

func TestGridCache_EvictAndClear(t *testing.T) {
	var calls int
	var mu sync.Mutex
	cache := NewGridCache(countingLoader(&calls, &mu))

	if _, err := cache.Load("a.pgm"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	h := cache.Put(Fill(1, 1, 255, 1))

	cache.Evict("a.pgm")
	if _, err := cache.Load("a.pgm"); err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("loader calls after Evict: got %d, want 2", calls)
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", cache.Len())
	}
	if _, err := cache.Get(h); err == nil {
		t.Error("handle should be gone after Clear")
	}
}

func TestGridCache_Concurrent(t *testing.T) {
	var calls int
	var mu sync.Mutex
	cache := NewGridCache(countingLoader(&calls, &mu))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := cache.Load(fmt.Sprintf("img-%d.pgm", i%3)); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
			cache.Put(Fill(1, 1, 255, i))
		}(i)
	}
	wg.Wait()

	if got := cache.Len(); got != 13 {
		t.Errorf("Len: got %d, want 13", got)
	}
}
