// Package evidence provides URL canonicalization and deduplication for
// collected evidence. Canonical URLs are the identity key of an evidence
// set: no two items in a result set may share one.
package evidence

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/factchain/internal/model"
)

// trackingParams are query keys stripped during canonicalization
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"gclid":        true,
	"fbclid":       true,
	"mc_cid":       true,
	"mc_eid":       true,
}

// NormalizeURL canonicalizes a raw URL: tracking parameters and the
// fragment are removed, scheme and host are lower-cased, default ports
// and a trailing slash are stripped. Remaining query parameters keep
// their original order. Malformed or non-http(s) URLs return an error
// so the caller can drop the item.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported scheme: %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", raw)
	}

	u.Scheme = scheme
	u.Host = normalizeHost(strings.ToLower(u.Host), scheme)
	u.Fragment = ""
	u.RawQuery = stripTracking(u.RawQuery)
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String(), nil
}

// Domain extracts the host from a URL, without the port.
// Returns "" when the URL cannot be parsed.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Dedupe removes items whose canonical URL already appeared, preserving
// first-seen order. Items are assumed to carry canonical URLs already.
func Dedupe(items []model.Evidence) []model.Evidence {
	seen := make(map[string]bool, len(items))
	out := make([]model.Evidence, 0, len(items))
	for _, it := range items {
		if it.URL == "" || seen[it.URL] {
			continue
		}
		seen[it.URL] = true
		out = append(out, it)
	}
	return out
}

// normalizeHost strips the default port for the scheme
func normalizeHost(host, scheme string) string {
	switch scheme {
	case "http":
		return strings.TrimSuffix(host, ":80")
	case "https":
		return strings.TrimSuffix(host, ":443")
	}
	return host
}

// stripTracking filters tracking keys out of a raw query string while
// keeping the remaining parameters in their original order
func stripTracking(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if idx := strings.Index(pair, "="); idx >= 0 {
			key = pair[:idx]
		}
		if trackingParams[strings.ToLower(key)] {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}
