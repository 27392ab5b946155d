package collect

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ppiankov/factchain/internal/evidence"
	"github.com/ppiankov/factchain/internal/model"
	"github.com/ppiankov/factchain/internal/search"
	"github.com/ppiankov/factchain/internal/trust"
)

// Collector gathers evidence for claims. Bucket queries fan out
// concurrently with a bounded worker count and a per-call timeout; a
// failed bucket is skipped, never fatal. The collector is read-only
// after construction and safe to share across claims.
type Collector struct {
	searcher      search.Searcher
	classifier    *trust.Classifier
	config        model.CollectConfig
	bucketWorkers int
	callTimeout   time.Duration
	verbose       bool
}

// NewCollector creates a collector
func NewCollector(searcher search.Searcher, classifier *trust.Classifier, cfg model.CollectConfig, bucketWorkers int, callTimeout time.Duration, verbose bool) *Collector {
	if bucketWorkers <= 0 {
		bucketWorkers = 4
	}
	if callTimeout <= 0 {
		callTimeout = 20 * time.Second
	}
	if classifier == nil {
		classifier = trust.NewClassifier(nil)
	}

	return &Collector{
		searcher:      searcher,
		classifier:    classifier,
		config:        cfg,
		bucketWorkers: bucketWorkers,
		callTimeout:   callTimeout,
		verbose:       verbose,
	}
}

// Collect builds the evidence set for one claim:
//  1. resolve the category's buckets
//  2. query each bucket concurrently, capped per bucket (not globally)
//  3. normalize, tier and merge in bucket order, dedupe by canonical URL
//  4. sweep authority domains once when tier 2-3 domain diversity is thin
//
// Collect never fails: recoverable errors degrade to fewer items and a
// claim with zero evidence is still scorable.
func (c *Collector) Collect(ctx context.Context, claim model.Claim) model.EvidenceSet {
	buckets := BucketsFor(claim.Category)
	perBucket := c.config.MaxResults / len(buckets)
	if perBucket < 1 {
		perBucket = 1
	}

	query := claim.NormalizedQuery
	if query == "" {
		query = claim.Text
	}

	bucketItems, failed := c.queryBuckets(ctx, query, buckets, perBucket)
	if failed == len(buckets) {
		c.warnf("claim %s: all %d bucket searches failed", claim.ID, len(buckets))
		return model.EvidenceSet{Items: []model.Evidence{}}
	}

	// Merge in bucket-priority order; the first occurrence of a
	// canonical URL wins.
	var merged []model.Evidence
	for _, items := range bucketItems {
		merged = append(merged, items...)
	}
	merged = evidence.Dedupe(merged)

	set := model.EvidenceSet{Items: merged}

	// Fallback decision is made once, on the organic results only.
	// Evidence appended by the sweep never re-triggers it.
	if c.shouldFallback(&set) {
		set.FallbackApplied = true
		swept := c.authoritySweep(ctx, claim, query, buckets)
		set.Items = evidence.Dedupe(append(set.Items, swept...))
	}

	return set
}

// queryBuckets fans out one search per bucket with bounded concurrency.
// Results keep their bucket slot so merge order matches bucket order.
func (c *Collector) queryBuckets(ctx context.Context, query string, buckets []model.Bucket, perBucket int) ([][]model.Evidence, int) {
	bucketItems := make([][]model.Evidence, len(buckets))
	failures := make([]bool, len(buckets))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.bucketWorkers)

	for i, bucket := range buckets {
		wg.Add(1)
		go func(idx int, b model.Bucket) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				failures[idx] = true
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			bucketQuery, mode := BuildBucketQuery(b, query)

			callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
			defer cancel()

			results, err := c.searcher.Search(callCtx, bucketQuery, mode, perBucket)
			if err != nil {
				failures[idx] = true
				c.warnf("bucket %s search failed: %v", b, err)
				return
			}
			bucketItems[idx] = c.toEvidence(results, b)
		}(i, bucket)
	}
	wg.Wait()

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	return bucketItems, failed
}

// shouldFallback applies the configured authority policy. In auto mode
// the sweep triggers when fewer than 2 distinct domains of tier 2 or
// higher are present.
func (c *Collector) shouldFallback(set *model.EvidenceSet) bool {
	switch c.config.AuthorityPolicy {
	case "always":
		return true
	case "never":
		return false
	}
	return set.DistinctTrustedDomains() < 2
}

// authoritySweep issues site-restricted queries over the curated domain
// set, in chunks small enough for one query each
func (c *Collector) authoritySweep(ctx context.Context, claim model.Claim, query string, buckets []model.Bucket) []model.Evidence {
	domains := AuthorityDomains(claim.Category, c.config.Locale, c.config.AuthorityExtra, buckets)
	if len(domains) == 0 {
		return nil
	}

	perDomain := 1
	if c.config.MaxResults > 6 {
		perDomain = 2
	}
	budget := perDomain * len(domains)

	var swept []model.Evidence
	for _, chunk := range chunkDomains(domains, 8) {
		if len(swept) >= budget {
			break
		}

		sweepQuery := BuildSiteSweepQuery(query, chunk)

		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		results, err := c.searcher.Search(callCtx, sweepQuery, search.ModeWeb, perDomain*len(chunk))
		cancel()
		if err != nil {
			c.warnf("authority sweep failed for %d domains: %v", len(chunk), err)
			continue
		}

		swept = append(swept, c.toEvidence(results, model.BucketGeneral)...)
	}
	return swept
}

// toEvidence normalizes and tiers raw search hits. Malformed URLs and
// noise-domain hits are dropped with a warning, not an error.
func (c *Collector) toEvidence(results []search.Result, bucket model.Bucket) []model.Evidence {
	items := make([]model.Evidence, 0, len(results))
	for _, r := range results {
		canonical, err := evidence.NormalizeURL(r.URL)
		if err != nil {
			c.warnf("dropping malformed result URL %q: %v", r.URL, err)
			continue
		}

		domain := evidence.Domain(canonical)
		if domain == noiseDomain {
			continue
		}

		items = append(items, model.Evidence{
			URL:       canonical,
			Domain:    domain,
			Title:     r.Title,
			Snippet:   r.Snippet,
			Bucket:    bucket,
			TrustTier: c.classifier.Classify(domain),
		})
	}
	return items
}

func (c *Collector) warnf(format string, args ...interface{}) {
	if c.verbose {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
	}
}
