package collect

import (
	"strings"

	"github.com/ppiankov/factchain/internal/model"
)

// baseAuthority maps a topic to curated high-trust domains swept when
// organic results are thin. Additions should be conservative.
var baseAuthority = map[model.Category][]string{
	model.CategoryTech:    {"ietf.org", "rfc-editor.org", "w3.org", "iana.org", "developer.mozilla.org", "learn.microsoft.com", "cloudflare.com", "google.com"},
	model.CategoryScience: {"arxiv.org", "nature.com", "science.org", "springer.com", "sciencedirect.com", "pnas.org", "cell.com", "nih.gov"},
	model.CategoryPolicy:  {"un.org", "oecd.org", "reuters.com", "apnews.com", "bbc.com", "nytimes.com"},
	model.CategoryHealth:  {"who.int", "cdc.gov", "fda.gov", "ema.europa.eu", "nih.gov", "bmj.com", "thelancet.com", "nejm.org"},
	model.CategoryFinance: {"reuters.com", "apnews.com", "bloomberg.com", "wsj.com", "ft.com"},
	model.CategoryGeneral: {"reuters.com", "apnews.com", "bbc.com", "nature.com"},
}

// localeAuthority supplements the base set with region-specific sources
var localeAuthority = map[string][]string{
	"KR": {"korea.kr", "go.kr", "stat.go.kr", "yna.co.kr", "kbs.co.kr", "mbc.co.kr", "sbs.co.kr", "chosun.com", "joongang.co.kr", "hani.co.kr"},
	"US": {"cdc.gov", "fda.gov", "nih.gov", "nasa.gov", "nytimes.com", "wsj.com", "apnews.com", "reuters.com"},
	"EU": {"ec.europa.eu", "ema.europa.eu", "who.int", "oecd.org", "reuters.com", "bbc.com"},
}

// AuthorityDomains builds the fallback domain set for a topic and locale.
// Extra domains from configuration are appended, and topics with a
// scholarly leaning get academic suffixes. Order is preserved and
// duplicates removed.
func AuthorityDomains(topic model.Category, locale string, extra []string, buckets []model.Bucket) []string {
	base, ok := baseAuthority[topic]
	if !ok {
		base = baseAuthority[model.CategoryGeneral]
	}
	loc := localeAuthority[strings.ToUpper(locale)]

	domains := dedupeStrings(append(append(append([]string{}, base...), loc...), extra...))

	if scholarlyBoost(topic, buckets) {
		domains = dedupeStrings(append(domains, "edu", "ac.kr"))
	}
	return domains
}

// scholarlyBoost reports whether academic suffixes belong in the sweep
func scholarlyBoost(topic model.Category, buckets []model.Bucket) bool {
	switch topic {
	case model.CategoryScience, model.CategoryHealth, model.CategoryTech:
		return true
	}
	for _, b := range buckets {
		if b == model.BucketScholarly {
			return true
		}
	}
	return false
}

// chunkDomains splits a domain list into groups small enough for one
// site-restricted query
func chunkDomains(domains []string, size int) [][]string {
	if size <= 0 {
		size = 8
	}
	var chunks [][]string
	for i := 0; i < len(domains); i += size {
		end := i + size
		if end > len(domains) {
			end = len(domains)
		}
		chunks = append(chunks, domains[i:end])
	}
	return chunks
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
