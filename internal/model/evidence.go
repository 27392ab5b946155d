package model

// Evidence represents one web source gathered for a claim.
// URL is canonical (tracking parameters stripped) and the trust tier is
// assigned once at collection time; items are never mutated afterwards.
type Evidence struct {
	URL       string    `json:"url"`
	Domain    string    `json:"domain"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	Bucket    Bucket    `json:"bucket"`
	TrustTier TrustTier `json:"trust_tier"`
}

// Bucket is a search-strategy category used to diversify evidence sources
type Bucket string

const (
	BucketScholarly  Bucket = "scholarly"
	BucketGovernment Bucket = "government"
	BucketNews       Bucket = "news"
	BucketBlogs      Bucket = "blogs"
	BucketCommunity  Bucket = "community"
	BucketGeneral    Bucket = "general"
)

// TrustTier ranks a domain's presumed reliability, 3 highest
type TrustTier int

const (
	TierOther     TrustTier = 1 // Default: forums, blogs, unknown sites
	TierPress     TrustTier = 2 // Recognized mainstream news, established reference sites
	TierAuthority TrustTier = 3 // Government, standards bodies, peer-reviewed publishers
)

// EvidenceSet is the ordered evidence gathered for one claim
type EvidenceSet struct {
	Items           []Evidence `json:"items"`
	FallbackApplied bool       `json:"fallback_applied"` // Authority sweep was triggered
}

// TierCounts counts items per trust tier
func (s *EvidenceSet) TierCounts() TierCounts {
	var tc TierCounts
	for _, ev := range s.Items {
		switch ev.TrustTier {
		case TierAuthority:
			tc.Tier3++
		case TierPress:
			tc.Tier2++
		default:
			tc.Tier1++
		}
	}
	return tc
}

// DistinctTrustedDomains counts distinct domains among tier 2-3 items.
// Each domain is counted once regardless of how many items cite it.
func (s *EvidenceSet) DistinctTrustedDomains() int {
	seen := make(map[string]bool)
	for _, ev := range s.Items {
		if ev.TrustTier >= TierPress && !seen[ev.Domain] {
			seen[ev.Domain] = true
		}
	}
	return len(seen)
}

// URLs returns the canonical URLs of all items in order
func (s *EvidenceSet) URLs() []string {
	urls := make([]string, 0, len(s.Items))
	for _, ev := range s.Items {
		urls = append(urls, ev.URL)
	}
	return urls
}

// TierCounts is the per-tier histogram of an evidence set
type TierCounts struct {
	Tier1 int `json:"1"`
	Tier2 int `json:"2"`
	Tier3 int `json:"3"`
}
