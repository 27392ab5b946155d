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

const defaultSerpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPIClient implements Searcher against SerpAPI. Unlike CSE, SerpAPI
// exposes dedicated engines: ModeNews maps to the Google News tab and
// ModeScholarly to the Google Scholar engine.
type SerpAPIClient struct {
	endpoint   string
	apiKey     string
	hl         string
	gl         string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSerpAPIClient creates a SerpAPI search client
func NewSerpAPIClient(cfg model.SearchConfig) *SerpAPIClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultSerpAPIEndpoint
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

	return &SerpAPIClient{
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		hl:         cfg.HL,
		gl:         cfg.GL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Name returns the provider name for report metadata
func (c *SerpAPIClient) Name() string {
	return "SerpAPI"
}

type serpAPIResponse struct {
	OrganicResults []serpAPIHit `json:"organic_results"`
	NewsResults    []serpAPIHit `json:"news_results"`
}

type serpAPIHit struct {
	Title           string `json:"title"`
	Link            string `json:"link"`
	Snippet         string `json:"snippet"`
	Source          string `json:"source"`
	PublicationInfo struct {
		Summary string `json:"summary"`
	} `json:"publication_info"`
}

// Search runs a single SerpAPI query on the engine selected by mode
func (c *SerpAPIClient) Search(ctx context.Context, query string, mode Mode, maxResults int) ([]Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("SerpAPI key not configured")
	}
	if maxResults <= 0 {
		return []Result{}, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(maxResults))
	if c.hl != "" {
		params.Set("hl", c.hl)
	}

	switch mode {
	case ModeScholarly:
		params.Set("engine", "google_scholar")
	case ModeNews:
		params.Set("engine", "google")
		params.Set("tbm", "nws")
		if c.gl != "" {
			params.Set("gl", c.gl)
		}
	default:
		params.Set("engine", "google")
		if c.gl != "" {
			params.Set("gl", c.gl)
		}
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

	var parsed serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hits := parsed.OrganicResults
	if mode == ModeNews {
		hits = parsed.NewsResults
	}
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		snippet := h.Snippet
		if snippet == "" {
			// Scholar hits often carry their abstract in publication_info,
			// news hits only the outlet name
			if h.PublicationInfo.Summary != "" {
				snippet = h.PublicationInfo.Summary
			} else {
				snippet = h.Source
			}
		}
		results = append(results, Result{
			URL:     h.Link,
			Title:   h.Title,
			Snippet: snippet,
		})
	}
	return results, nil
}
