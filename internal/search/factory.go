package search

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factchain/internal/cache"
	"github.com/ppiankov/factchain/internal/model"
)

// NewSearcher creates a search provider from configuration, optionally
// wrapped with a response cache
func NewSearcher(cfg model.SearchConfig, timeWindow string, c cache.Cache) (Searcher, error) {
	var inner Searcher

	switch strings.ToLower(cfg.Provider) {
	case "cse", "":
		inner = NewCSEClient(cfg, timeWindow)
	case "serpapi":
		inner = NewSerpAPIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown search provider: %s (supported: cse, serpapi)", cfg.Provider)
	}

	return NewCachedSearcher(inner, c), nil
}
