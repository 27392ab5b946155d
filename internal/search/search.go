// Package search talks to web search providers. The collector constructs
// the queries (site filters, noise exclusions); this package only handles
// the provider API shape, pagination, rate limiting and caching.
package search

import "context"

// Mode selects the provider-side search index
type Mode string

const (
	ModeWeb       Mode = "web"
	ModeNews      Mode = "news"
	ModeScholarly Mode = "scholarly"
)

// Result is one raw search hit before normalization and tiering
type Result struct {
	URL     string `json:"url"`
	Domain  string `json:"domain,omitempty"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Searcher is the external search collaborator boundary
type Searcher interface {
	// Search runs a query and returns up to maxResults raw hits.
	// Implementations must honor ctx cancellation.
	Search(ctx context.Context, query string, mode Mode, maxResults int) ([]Result, error)

	// Name identifies the provider for report metadata
	Name() string
}
