package trust

import (
	"regexp"
	"strings"

	"github.com/ppiankov/factchain/internal/model"
)

// Classifier maps a domain to a trust tier via ordered pattern groups.
// Tier 3 patterns are checked first, then tier 2; anything else is tier 1.
// Classification is pure lookup: no I/O, safe for concurrent use.
type Classifier struct {
	tier3 []*regexp.Regexp
	tier2 []*regexp.Regexp
}

// NewClassifier compiles the tier patterns from config. Invalid patterns
// are skipped so a bad config entry degrades a rule, not the whole run.
func NewClassifier(config *model.TrustConfig) *Classifier {
	if config == nil {
		config = &model.DefaultConfig().Trust
	}

	return &Classifier{
		tier3: compilePatterns(config.Tier3Patterns),
		tier2: compilePatterns(config.Tier2Patterns),
	}
}

// Classify returns the trust tier for a domain string. It is total: any
// input yields a tier, defaulting to 1 when no rule matches. Matching is
// case-insensitive and ignores a leading www.
func (c *Classifier) Classify(domain string) model.TrustTier {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "www.")
	if d == "" {
		return model.TierOther
	}

	for _, pat := range c.tier3 {
		if pat.MatchString(d) {
			return model.TierAuthority
		}
	}
	for _, pat := range c.tier2 {
		if pat.MatchString(d) {
			return model.TierPress
		}
	}
	return model.TierOther
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if re, err := regexp.Compile(p); err == nil {
			compiled = append(compiled, re)
		}
	}
	return compiled
}
