package trust

import (
	"testing"

	"github.com/ppiankov/factchain/internal/model"
)

func TestClassify_Tiers(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		domain string
		want   model.TrustTier
	}{
		// Tier 3: government, academic, standards
		{"cdc.gov", model.TierAuthority},
		{"korea.go.kr", model.TierAuthority},
		{"mit.edu", model.TierAuthority},
		{"snu.ac.kr", model.TierAuthority},
		{"who.int", model.TierAuthority},
		{"datatracker.ietf.org", model.TierAuthority},
		{"rfc-editor.org", model.TierAuthority},
		// Tier 2: press, big tech
		{"reuters.com", model.TierPress},
		{"apnews.com", model.TierPress},
		{"yna.co.kr", model.TierPress},
		{"learn.microsoft.com", model.TierPress},
		{"blog.cloudflare.com", model.TierPress},
		// Tier 1: everything else
		{"reddit.com", model.TierOther},
		{"stackoverflow.com", model.TierOther},
		{"medium.com", model.TierOther},
		{"example.com", model.TierOther},
		{"", model.TierOther},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.domain); got != tt.want {
			t.Errorf("Classify(%q) = %d, want %d", tt.domain, got, tt.want)
		}
	}
}

func TestClassify_CaseAndWWWInvariance(t *testing.T) {
	c := NewClassifier(nil)

	variants := []string{"cdc.gov", "CDC.GOV", "www.cdc.gov", "WWW.CDC.Gov"}
	for _, v := range variants {
		if got := c.Classify(v); got != model.TierAuthority {
			t.Errorf("Classify(%q) = %d, want %d", v, got, model.TierAuthority)
		}
	}
}

func TestClassify_SubdomainsMatchSuffix(t *testing.T) {
	c := NewClassifier(nil)

	// Patterns anchor at domain-label boundaries: subdomains of a tier-3
	// domain match, but lookalike registrations do not.
	if got := c.Classify("data.cdc.gov"); got != model.TierAuthority {
		t.Errorf("subdomain of .gov should be tier 3, got %d", got)
	}
	if got := c.Classify("notreallygov.com"); got != model.TierOther {
		t.Errorf("lookalike domain should be tier 1, got %d", got)
	}
	if got := c.Classify("fakereuters.com"); got != model.TierOther {
		t.Errorf("fakereuters.com should be tier 1, got %d", got)
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	c := NewClassifier(&model.TrustConfig{
		Tier3Patterns: []string{`(^|\.)example\.com$`},
		Tier2Patterns: []string{`(^|\.)example\.com$`},
	})

	if got := c.Classify("example.com"); got != model.TierAuthority {
		t.Errorf("tier 3 rules must take precedence, got %d", got)
	}
}

func TestNewClassifier_SkipsInvalidPatterns(t *testing.T) {
	c := NewClassifier(&model.TrustConfig{
		Tier3Patterns: []string{`([`, `(^|\.)gov$`},
	})

	if got := c.Classify("cdc.gov"); got != model.TierAuthority {
		t.Errorf("valid pattern after an invalid one should still apply, got %d", got)
	}
}
