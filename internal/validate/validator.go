// Package validate performs the optional post-collection link check:
// is each evidence URL still reachable, does robots.txt permit fetching
// it, and what title does the page carry. Results are advisory and never
// change the score.
package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/ppiankov/factchain/internal/model"
	"github.com/ppiankov/factchain/internal/util"
	"github.com/ppiankov/factchain/internal/worker"
)

// titleReadLimit bounds how much of the body is read for the <title> tag
const titleReadLimit = 64 * 1024

// Validator validates evidence links concurrently
type Validator struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	maxWorkers int
	userAgent  string
}

// NewValidator creates a new validator
func NewValidator(config model.ValidateConfig, maxWorkers int) *Validator {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Validator{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:     util.NewRobotsChecker(config.UserAgent, timeout),
		limiter:    worker.NewLimiter(2, 4),
		maxWorkers: maxWorkers,
		userAgent:  config.UserAgent,
	}
}

// Validate checks all evidence URLs concurrently. The result slice is
// index-aligned with the input.
func (v *Validator) Validate(ctx context.Context, urls []string) []model.ValidationResult {
	if len(urls) == 0 {
		return []model.ValidationResult{}
	}

	results := make([]model.ValidationResult, len(urls))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.maxWorkers)

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.ValidationResult{URL: rawURL, Error: "context cancelled"}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.validateSingle(ctx, rawURL)
		}(i, u)
	}

	wg.Wait()
	return results
}

// validateSingle checks one evidence link: robots.txt first, then a GET
// that reads just enough of the body to recover the page title
func (v *Validator) validateSingle(ctx context.Context, rawURL string) model.ValidationResult {
	result := model.ValidationResult{URL: rawURL}

	allowed, crawlDelay, err := v.robots.CanFetch(ctx, rawURL)
	if err != nil {
		result.Error = fmt.Sprintf("robots check: %v", err)
		return result
	}
	if !allowed {
		result.RobotsBlocked = true
		return result
	}

	if err := v.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		result.Error = fmt.Sprintf("rate limit: %v", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Accessible = true
		result.Title = extractTitle(io.LimitReader(resp.Body, titleReadLimit))
	}
	return result
}

// extractTitle pulls the first <title> text out of an HTML stream.
// Parse errors simply end the scan, a missing title is an empty string.
func extractTitle(r io.Reader) string {
	tokenizer := html.NewTokenizer(r)
	inTitle := false
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(tokenizer.Text()))
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}

// Summary counts accessible and blocked links for console output
func Summary(results []model.ValidationResult) (accessible, blocked, failed int) {
	for _, r := range results {
		switch {
		case r.Accessible:
			accessible++
		case r.RobotsBlocked:
			blocked++
		default:
			failed++
		}
	}
	return accessible, blocked, failed
}
