package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/factchain/internal/model"
)

const (
	defaultCSEEndpoint = "https://www.googleapis.com/customsearch/v1"
	csePageSize        = 10 // CSE returns at most 10 items per request
)

// CSEClient implements Searcher against the Google Custom Search JSON API.
// CSE has no separate news/scholarly index, so Mode only influences the
// dateRestrict mapping; index diversity comes from the collector's query
// construction.
type CSEClient struct {
	endpoint   string
	apiKey     string
	cx         string
	hl         string
	gl         string
	timeWindow string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCSEClient creates a Google CSE search client
func NewCSEClient(cfg model.SearchConfig, timeWindow string) *CSEClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultCSEEndpoint
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	rps := cfg.RatePerS
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &CSEClient{
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		cx:         cfg.CSEID,
		hl:         cfg.HL,
		gl:         cfg.GL,
		timeWindow: timeWindow,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Name returns the provider name for report metadata
func (c *CSEClient) Name() string {
	return "Google Custom Search API"
}

type cseResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Snippet     string `json:"snippet"`
		HTMLSnippet string `json:"htmlSnippet"`
	} `json:"items"`
}

// Search runs a paginated CSE query
func (c *CSEClient) Search(ctx context.Context, query string, mode Mode, maxResults int) ([]Result, error) {
	if c.apiKey == "" || c.cx == "" {
		return nil, fmt.Errorf("CSE credentials not configured")
	}
	if maxResults <= 0 {
		return []Result{}, nil
	}

	var results []Result
	start := 1

	for len(results) < maxResults {
		num := maxResults - len(results)
		if num > csePageSize {
			num = csePageSize
		}

		page, err := c.fetchPage(ctx, query, start, num)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		results = append(results, page...)
		if len(page) < num {
			break // Provider ran out of results
		}
		start += num
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func (c *CSEClient) fetchPage(ctx context.Context, query string, start, num int) ([]Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cx)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))
	params.Set("start", strconv.Itoa(start))
	if c.hl != "" {
		params.Set("hl", c.hl)
	}
	if c.gl != "" {
		params.Set("gl", c.gl)
	}
	if dr := dateRestrict(c.timeWindow); dr != "" {
		params.Set("dateRestrict", dr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search status %d: %s", resp.StatusCode, string(body))
	}

	var parsed cseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		snippet := it.Snippet
		if snippet == "" {
			snippet = it.HTMLSnippet
		}
		results = append(results, Result{
			URL:     it.Link,
			Title:   it.Title,
			Snippet: snippet,
		})
	}
	return results, nil
}

// dateRestrict maps a time window keyword to the CSE dateRestrict value
func dateRestrict(window string) string {
	switch window {
	case "d":
		return "d1"
	case "w":
		return "w1"
	case "m":
		return "m1"
	case "y":
		return "y1"
	}
	return ""
}
