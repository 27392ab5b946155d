// Package collect turns a claim into a deduplicated, tiered evidence set:
// it resolves search buckets for the claim's category, fans out the bucket
// queries, merges and dedupes the hits, and sweeps curated authority
// domains when organic results lack high-tier diversity.
package collect

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factchain/internal/model"
	"github.com/ppiankov/factchain/internal/search"
)

// noiseExclusion is appended to every query: patent aggregator pages
// dominate technical queries and are never useful evidence
const noiseExclusion = " -site:patents.google.com"

// noiseDomain is the firewall check applied again after normalization,
// in case a provider ignores the negative filter
const noiseDomain = "patents.google.com"

// categoryPresets maps a claim category to the ordered buckets to query.
// Order matters: buckets contribute evidence in this order, and the first
// occurrence of a URL wins during deduplication.
var categoryPresets = map[model.Category][]model.Bucket{
	model.CategoryTech:      {model.BucketScholarly, model.BucketGovernment, model.BucketNews, model.BucketGeneral},
	model.CategoryScience:   {model.BucketScholarly, model.BucketGovernment, model.BucketNews},
	model.CategoryPolicy:    {model.BucketGovernment, model.BucketNews, model.BucketGeneral, model.BucketCommunity},
	model.CategoryHealth:    {model.BucketGovernment, model.BucketScholarly, model.BucketNews},
	model.CategoryFinance:   {model.BucketNews, model.BucketGeneral, model.BucketGovernment},
	model.CategoryCommunity: {model.BucketCommunity, model.BucketNews, model.BucketGeneral},
	model.CategoryGeneral:   {model.BucketNews, model.BucketGeneral, model.BucketGovernment},
}

// defaultBuckets is used for unknown categories
var defaultBuckets = []model.Bucket{model.BucketNews, model.BucketGeneral, model.BucketGovernment}

// BucketsFor returns the ordered search buckets for a category
func BucketsFor(category model.Category) []model.Bucket {
	if buckets, ok := categoryPresets[category]; ok {
		return buckets
	}
	return defaultBuckets
}

// Per-bucket domain groups (site: OR-filters)
var (
	scholarSites = []string{
		"arxiv.org", "acm.org", "ieee.org", "springer.com", "sciencedirect.com",
		"nature.com", "science.org", "pnas.org", "cell.com", "cambridge.org",
	}
	blogSites = []string{
		"medium.com", "tistory.com", "velog.io", "dev.to", "blogspot.com",
		"hashnode.com", "brunch.co.kr",
	}
	communitySites = []string{
		"reddit.com", "stackoverflow.com", "superuser.com", "serverfault.com",
		"quora.com", "news.ycombinator.com", "okky.kr",
	}
)

// BuildBucketQuery transforms a claim query into the bucket-specific
// provider query and search mode. Every bucket carries the universal
// noise exclusion.
func BuildBucketQuery(bucket model.Bucket, query string) (string, search.Mode) {
	switch bucket {
	case model.BucketScholarly:
		// Scholar-capable providers use the mode; others rely on the filter
		return fmt.Sprintf("%s (%s)%s", query, siteFilter(scholarSites), noiseExclusion), search.ModeScholarly
	case model.BucketGovernment:
		return query + " (site:.gov OR site:.go.kr OR site:.g.kr OR site:.edu)" + noiseExclusion, search.ModeWeb
	case model.BucketNews:
		return query + noiseExclusion, search.ModeNews
	case model.BucketBlogs:
		return fmt.Sprintf("%s (%s)%s", query, siteFilter(blogSites), noiseExclusion), search.ModeWeb
	case model.BucketCommunity:
		return fmt.Sprintf("%s (%s)%s", query, siteFilter(communitySites), noiseExclusion), search.ModeWeb
	default: // general
		return query + noiseExclusion, search.ModeWeb
	}
}

// BuildSiteSweepQuery restricts a query to a group of authority domains
func BuildSiteSweepQuery(query string, domains []string) string {
	return fmt.Sprintf("%s (%s)%s", query, siteFilter(domains), noiseExclusion)
}

func siteFilter(domains []string) string {
	parts := make([]string, 0, len(domains))
	for _, d := range domains {
		parts = append(parts, "site:"+d)
	}
	return strings.Join(parts, " OR ")
}
