package collect

import (
	"testing"

	"github.com/ppiankov/factchain/internal/model"
)

func TestAuthorityDomains_TopicAndLocale(t *testing.T) {
	domains := AuthorityDomains(model.CategoryHealth, "KR", nil, BucketsFor(model.CategoryHealth))

	mustContain := []string{"who.int", "cdc.gov", "korea.kr", "go.kr"}
	for _, d := range mustContain {
		if !containsString(domains, d) {
			t.Errorf("health/KR domains missing %s: %v", d, domains)
		}
	}
}

func TestAuthorityDomains_UnknownTopicUsesGeneral(t *testing.T) {
	domains := AuthorityDomains(model.Category("mystery"), "US", nil, nil)
	if !containsString(domains, "reuters.com") {
		t.Errorf("unknown topic should fall back to the general set, got %v", domains)
	}
	if !containsString(domains, "nasa.gov") {
		t.Errorf("US locale domains missing, got %v", domains)
	}
}

func TestAuthorityDomains_ScholarlyBoost(t *testing.T) {
	science := AuthorityDomains(model.CategoryScience, "KR", nil, nil)
	if !containsString(science, "edu") || !containsString(science, "ac.kr") {
		t.Errorf("science should get academic suffixes, got %v", science)
	}

	// Policy has no scholarly leaning and no scholarly bucket
	policy := AuthorityDomains(model.CategoryPolicy, "KR", nil, BucketsFor(model.CategoryPolicy))
	if containsString(policy, "edu") {
		t.Errorf("policy should not get academic suffixes, got %v", policy)
	}

	// But an explicit scholarly bucket turns the boost on
	boosted := AuthorityDomains(model.CategoryPolicy, "KR", nil, []model.Bucket{model.BucketScholarly})
	if !containsString(boosted, "edu") {
		t.Errorf("scholarly bucket should enable the boost, got %v", boosted)
	}
}

func TestAuthorityDomains_ExtraAndDedupe(t *testing.T) {
	domains := AuthorityDomains(model.CategoryFinance, "US", []string{"sec.gov", "reuters.com"}, nil)

	if !containsString(domains, "sec.gov") {
		t.Errorf("extra domain missing: %v", domains)
	}

	count := 0
	for _, d := range domains {
		if d == "reuters.com" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("reuters.com should appear exactly once, got %d in %v", count, domains)
	}
}

func TestChunkDomains(t *testing.T) {
	domains := make([]string, 19)
	for i := range domains {
		domains[i] = "d"
	}

	chunks := chunkDomains(domains, 8)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 8 || len(chunks[1]) != 8 || len(chunks[2]) != 3 {
		t.Errorf("unexpected chunk sizes: %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
