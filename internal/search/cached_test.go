package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/factchain/internal/cache"
)

type countingSearcher struct {
	mu    sync.Mutex
	calls int
}

func (s *countingSearcher) Name() string { return "counting" }

func (s *countingSearcher) Search(ctx context.Context, query string, mode Mode, maxResults int) ([]Result, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return []Result{{URL: "https://example.com/" + query, Title: query}}, nil
}

func TestCachedSearcher_SecondCallHitsCache(t *testing.T) {
	inner := &countingSearcher{}
	s := NewCachedSearcher(inner, cache.NewMemoryCache(time.Minute, time.Minute))

	for i := 0; i < 3; i++ {
		results, err := s.Search(context.Background(), "q", ModeWeb, 5)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].URL != "https://example.com/q" {
			t.Fatalf("unexpected results: %v", results)
		}
	}

	if inner.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", inner.calls)
	}
}

func TestCachedSearcher_KeyIncludesModeAndCap(t *testing.T) {
	inner := &countingSearcher{}
	s := NewCachedSearcher(inner, cache.NewMemoryCache(time.Minute, time.Minute))

	_, _ = s.Search(context.Background(), "q", ModeWeb, 5)
	_, _ = s.Search(context.Background(), "q", ModeNews, 5)
	_, _ = s.Search(context.Background(), "q", ModeWeb, 10)

	if inner.calls != 3 {
		t.Errorf("distinct mode/cap combinations must not share entries, got %d calls", inner.calls)
	}
}

func TestCachedSearcher_NilCachePassthrough(t *testing.T) {
	inner := &countingSearcher{}
	s := NewCachedSearcher(inner, nil)

	if s != Searcher(inner) {
		t.Error("nil cache should return the inner searcher unchanged")
	}
}

func TestCachedSearcher_CorruptEntryFallsThrough(t *testing.T) {
	inner := &countingSearcher{}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	s := NewCachedSearcher(inner, c)

	key := cache.Key(inner.Name(), "q", string(ModeWeb), "5")
	if err := c.Set(key, []byte("not json"), 0); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	results, err := s.Search(context.Background(), "q", ModeWeb, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || inner.calls != 1 {
		t.Errorf("corrupt entry should trigger a live search, got %d calls", inner.calls)
	}
}
