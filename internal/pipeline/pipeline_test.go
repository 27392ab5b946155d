package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/factchain/internal/collect"
	"github.com/ppiankov/factchain/internal/model"
	"github.com/ppiankov/factchain/internal/score"
	"github.com/ppiankov/factchain/internal/search"
	"github.com/ppiankov/factchain/internal/trust"
)

type fakeProvider struct {
	claims     []model.Claim
	extractErr error
	judgeErr   error
}

func (f *fakeProvider) Name() string                         { return "fake" }
func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeProvider) ExtractClaims(ctx context.Context, text string) ([]model.Claim, error) {
	return f.claims, f.extractErr
}

func (f *fakeProvider) EvaluateEvidence(ctx context.Context, claimText string, items []model.Evidence) (model.Judgment, error) {
	if f.judgeErr != nil {
		return model.UncertainJudgment(), f.judgeErr
	}
	judgment := model.Judgment{OverallVerdict: model.VerdictSupported, Confidence: 0.9}
	for _, item := range items {
		judgment.PerEvidence = append(judgment.PerEvidence, model.EvidenceJudgment{
			URL:       item.URL,
			Judgement: model.JudgementSupports,
		})
	}
	return judgment, nil
}

type fakeSearcher struct{}

func (f *fakeSearcher) Name() string { return "fake search" }

func (f *fakeSearcher) Search(ctx context.Context, query string, mode search.Mode, maxResults int) ([]search.Result, error) {
	if mode == search.ModeNews {
		return []search.Result{
			{URL: "https://reuters.com/x", Title: "Reuters"},
			{URL: "https://apnews.com/y", Title: "AP"},
		}, nil
	}
	return nil, nil
}

func testPipeline(provider *fakeProvider) *Pipeline {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = false
	searcher := &fakeSearcher{}
	collector := collect.NewCollector(searcher, trust.NewClassifier(nil), cfg.Collect, 4, 5*time.Second, false)

	return &Pipeline{
		provider:   provider,
		collector:  collector,
		aggregator: score.NewAggregator(),
		searcher:   searcher,
		config:     cfg,
	}
}

func claims(texts ...string) []model.Claim {
	var out []model.Claim
	for i, text := range texts {
		out = append(out, model.Claim{
			ID:              "C" + string(rune('1'+i)),
			Text:            text,
			NormalizedQuery: text,
			Category:        model.CategoryGeneral,
		})
	}
	return out
}

func TestCheck_FullRun(t *testing.T) {
	provider := &fakeProvider{claims: claims("Claim one.", "Claim two.", "Claim three.")}
	p := testPipeline(provider)

	report, err := p.Check(context.Background(), "input text")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if len(report.Claims) != 3 {
		t.Fatalf("expected 3 assessments, got %d", len(report.Claims))
	}

	// Order must follow the extracted claims, not completion order
	for i, want := range []string{"C1", "C2", "C3"} {
		if report.Claims[i].Claim.ID != want {
			t.Errorf("assessment %d is %s, want %s", i, report.Claims[i].Claim.ID, want)
		}
	}

	first := report.Claims[0]
	if len(first.Evidence.Items) == 0 {
		t.Error("expected collected evidence")
	}
	if first.Score.Verdict != model.VerdictSupported {
		t.Errorf("verdict = %s, want supported", first.Score.Verdict)
	}
	if first.Score.Score <= 0 {
		t.Errorf("score should be positive, got %v", first.Score.Score)
	}
	if report.Meta.SearchProvider != "fake search" {
		t.Errorf("meta search provider = %q", report.Meta.SearchProvider)
	}
	if _, ok := report.Meta.Timings["extract"]; !ok {
		t.Error("extract timing missing")
	}
}

func TestCheck_ExtractionFailure(t *testing.T) {
	provider := &fakeProvider{extractErr: errors.New("api down")}
	p := testPipeline(provider)

	if _, err := p.Check(context.Background(), "input"); err == nil {
		t.Error("extraction failure should abort the run")
	}
}

func TestCheck_NoClaims(t *testing.T) {
	p := testPipeline(&fakeProvider{})

	report, err := p.Check(context.Background(), "nothing factual here")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(report.Claims) != 0 {
		t.Errorf("expected 0 assessments, got %d", len(report.Claims))
	}
}

func TestCheck_EvaluationFailureDegrades(t *testing.T) {
	provider := &fakeProvider{
		claims:   claims("Claim one."),
		judgeErr: errors.New("model overloaded"),
	}
	p := testPipeline(provider)

	report, err := p.Check(context.Background(), "input")
	if err != nil {
		t.Fatalf("an evaluation failure must not abort the run: %v", err)
	}

	a := report.Claims[0]
	if a.Score.Verdict != model.VerdictUncertain {
		t.Errorf("verdict = %s, want uncertain", a.Score.Verdict)
	}
	// Evidence still collected and counted even without a judgment
	if len(a.Evidence.Items) == 0 {
		t.Error("evidence should survive an evaluation failure")
	}
	if !a.Score.EvidenceExists {
		t.Error("score should reflect the collected evidence")
	}
}

func TestRenderJSON(t *testing.T) {
	p := testPipeline(&fakeProvider{claims: claims("Claim one.")})
	report, err := p.Check(context.Background(), "input")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "report.json")
	renderer := NewRenderer(false)
	if err := renderer.RenderJSON(report, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(decoded.Claims) != 1 {
		t.Errorf("round-tripped report has %d claims, want 1", len(decoded.Claims))
	}
}

func TestRenderSummary(t *testing.T) {
	p := testPipeline(&fakeProvider{claims: claims("Claim one.")})
	report, err := p.Check(context.Background(), "input")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	var buf bytes.Buffer
	NewRenderer(false).RenderSummary(&buf, report)

	out := buf.String()
	for _, want := range []string{"Claim one.", "supported", "tier2:2", "reuters.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("color disabled but ANSI codes present")
	}
}

func TestRenderSummary_TruncatesTitlesOnRuneBoundary(t *testing.T) {
	// 3-byte Hangul runes; a byte-based cut at 60 would split one
	long := strings.Repeat("한", 90)
	report := &model.Report{
		Meta: model.ReportMeta{Model: "m", SearchProvider: "s"},
		Claims: []model.ClaimAssessment{{
			Claim: model.Claim{ID: "C1", Text: "claim"},
			Evidence: model.EvidenceSet{Items: []model.Evidence{{
				URL:    "https://example.com/a",
				Domain: "example.com",
				Title:  long,
			}}},
			Judgment: model.UncertainJudgment(),
		}},
	}

	var buf bytes.Buffer
	NewRenderer(false).RenderSummary(&buf, report)

	out := buf.String()
	if !utf8.ValidString(out) {
		t.Fatal("summary contains invalid UTF-8")
	}
	if !strings.Contains(out, strings.Repeat("한", 60)+"...") {
		t.Error("long title should be cut at 60 characters")
	}
	if strings.Contains(out, strings.Repeat("한", 61)) {
		t.Error("title kept more than 60 characters")
	}
}
