package evidence

import (
	"reflect"
	"testing"

	"github.com/ppiankov/factchain/internal/model"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips utm parameters",
			in:   "https://example.com/a?utm_source=x&utm_medium=y&id=7",
			want: "https://example.com/a?id=7",
		},
		{
			name: "strips gclid and fbclid",
			in:   "https://example.com/a?gclid=1&fbclid=2",
			want: "https://example.com/a",
		},
		{
			name: "lower-cases host, keeps path case",
			in:   "https://Example.COM/Path",
			want: "https://example.com/Path",
		},
		{
			name: "strips default https port",
			in:   "https://example.com:443/a",
			want: "https://example.com/a",
		},
		{
			name: "strips default http port",
			in:   "http://example.com:80/a",
			want: "http://example.com/a",
		},
		{
			name: "keeps non-default port",
			in:   "https://example.com:8443/a",
			want: "https://example.com:8443/a",
		},
		{
			name: "strips trailing slash",
			in:   "https://example.com/a/",
			want: "https://example.com/a",
		},
		{
			name: "strips fragment",
			in:   "https://example.com/a#section",
			want: "https://example.com/a",
		},
		{
			name: "preserves query parameter order",
			in:   "https://example.com/a?b=2&utm_term=x&a=1",
			want: "https://example.com/a?b=2&a=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			if err != nil {
				t.Fatalf("NormalizeURL(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	in := "https://Example.com:443/a/?utm_source=x&id=7#frag"
	once, err := NormalizeURL(in)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := NormalizeURL(once)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if once != twice {
		t.Errorf("not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeURL_Malformed(t *testing.T) {
	bad := []string{"", "notaurl", "ftp://example.com/file", "http://", "://missing"}
	for _, in := range bad {
		if got, err := NormalizeURL(in); err == nil {
			t.Errorf("NormalizeURL(%q) = %q, expected error", in, got)
		}
	}
}

func TestDedupe(t *testing.T) {
	items := []model.Evidence{
		{URL: "https://a.com/1", Domain: "a.com", Bucket: model.BucketScholarly},
		{URL: "https://b.com/1", Domain: "b.com", Bucket: model.BucketNews},
		{URL: "https://a.com/1", Domain: "a.com", Bucket: model.BucketNews},
		{URL: "https://c.com/1", Domain: "c.com", Bucket: model.BucketGeneral},
	}

	got := Dedupe(items)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}

	// First occurrence wins: the scholarly copy of a.com/1 is retained
	if got[0].Bucket != model.BucketScholarly {
		t.Errorf("expected first-seen bucket scholarly, got %s", got[0].Bucket)
	}

	wantOrder := []string{"https://a.com/1", "https://b.com/1", "https://c.com/1"}
	var gotOrder []string
	for _, it := range got {
		gotOrder = append(gotOrder, it.URL)
	}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Errorf("order = %v, want %v", gotOrder, wantOrder)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	items := []model.Evidence{
		{URL: "https://a.com/1"},
		{URL: "https://a.com/1"},
		{URL: "https://b.com/1"},
	}

	once := Dedupe(items)
	twice := Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupe(dedupe(L)) != dedupe(L): %v vs %v", twice, once)
	}

	seen := make(map[string]bool)
	for _, it := range once {
		if seen[it.URL] {
			t.Errorf("duplicate canonical URL in output: %s", it.URL)
		}
		seen[it.URL] = true
	}
}

func TestDedupe_DropsEmptyURLs(t *testing.T) {
	items := []model.Evidence{{URL: ""}, {URL: "https://a.com/1"}}
	got := Dedupe(items)
	if len(got) != 1 || got[0].URL != "https://a.com/1" {
		t.Errorf("unexpected result: %v", got)
	}
}
