package collect

import (
	"strings"
	"testing"

	"github.com/ppiankov/factchain/internal/model"
	"github.com/ppiankov/factchain/internal/search"
)

func TestBucketsFor(t *testing.T) {
	tests := []struct {
		category model.Category
		want     []model.Bucket
	}{
		{model.CategoryTech, []model.Bucket{model.BucketScholarly, model.BucketGovernment, model.BucketNews, model.BucketGeneral}},
		{model.CategoryScience, []model.Bucket{model.BucketScholarly, model.BucketGovernment, model.BucketNews}},
		{model.CategoryGeneral, []model.Bucket{model.BucketNews, model.BucketGeneral, model.BucketGovernment}},
		{model.Category("unknown"), []model.Bucket{model.BucketNews, model.BucketGeneral, model.BucketGovernment}},
	}

	for _, tt := range tests {
		got := BucketsFor(tt.category)
		if len(got) != len(tt.want) {
			t.Errorf("BucketsFor(%s) = %v, want %v", tt.category, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("BucketsFor(%s)[%d] = %s, want %s", tt.category, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBuildBucketQuery(t *testing.T) {
	tests := []struct {
		bucket       model.Bucket
		wantMode     search.Mode
		wantContains string
	}{
		{model.BucketScholarly, search.ModeScholarly, "site:arxiv.org"},
		{model.BucketGovernment, search.ModeWeb, "site:.gov"},
		{model.BucketNews, search.ModeNews, "HTTP/3 QUIC"},
		{model.BucketBlogs, search.ModeWeb, "site:medium.com"},
		{model.BucketCommunity, search.ModeWeb, "site:stackoverflow.com"},
		{model.BucketGeneral, search.ModeWeb, "HTTP/3 QUIC"},
	}

	for _, tt := range tests {
		query, mode := BuildBucketQuery(tt.bucket, "HTTP/3 QUIC")
		if mode != tt.wantMode {
			t.Errorf("BuildBucketQuery(%s) mode = %s, want %s", tt.bucket, mode, tt.wantMode)
		}
		if !strings.Contains(query, tt.wantContains) {
			t.Errorf("BuildBucketQuery(%s) = %q, missing %q", tt.bucket, query, tt.wantContains)
		}
		if !strings.Contains(query, "-site:patents.google.com") {
			t.Errorf("BuildBucketQuery(%s) = %q, missing universal noise exclusion", tt.bucket, query)
		}
	}
}

func TestBuildSiteSweepQuery(t *testing.T) {
	q := BuildSiteSweepQuery("bitcoin launch year", []string{"reuters.com", "apnews.com"})
	for _, want := range []string{"site:reuters.com", "site:apnews.com", "-site:patents.google.com", "bitcoin launch year"} {
		if !strings.Contains(q, want) {
			t.Errorf("sweep query %q missing %q", q, want)
		}
	}
}
