package search

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/ppiankov/factchain/internal/cache"
)

// CachedSearcher wraps a Searcher with a response cache. Search APIs are
// metered, so repeated bucket queries within a run (and across runs when
// the disk layer is enabled) are served from cache.
type CachedSearcher struct {
	inner Searcher
	cache cache.Cache
}

// NewCachedSearcher wraps a searcher with the given cache.
// A nil cache returns the inner searcher unchanged.
func NewCachedSearcher(inner Searcher, c cache.Cache) Searcher {
	if c == nil {
		return inner
	}
	return &CachedSearcher{inner: inner, cache: c}
}

// Name returns the wrapped provider's name
func (s *CachedSearcher) Name() string {
	return s.inner.Name()
}

// Search serves from cache when possible, otherwise queries the provider
// and stores the result. Cache failures are silent: a broken cache must
// never break a search.
func (s *CachedSearcher) Search(ctx context.Context, query string, mode Mode, maxResults int) ([]Result, error) {
	key := cache.Key(s.inner.Name(), query, string(mode), strconv.Itoa(maxResults))

	if data, found := s.cache.Get(key); found {
		var results []Result
		if err := json.Unmarshal(data, &results); err == nil {
			return results, nil
		}
		// Corrupt entry: fall through to a live search
	}

	results, err := s.inner.Search(ctx, query, mode, maxResults)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		_ = s.cache.Set(key, data, 0)
	}
	return results, nil
}
