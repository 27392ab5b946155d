// Package pipeline orchestrates the full fact-checking run: claim
// extraction, evidence collection, model evaluation, scoring and the
// optional link check.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ppiankov/factchain/internal/cache"
	"github.com/ppiankov/factchain/internal/collect"
	"github.com/ppiankov/factchain/internal/llm"
	"github.com/ppiankov/factchain/internal/model"
	"github.com/ppiankov/factchain/internal/score"
	"github.com/ppiankov/factchain/internal/search"
	"github.com/ppiankov/factchain/internal/trust"
	"github.com/ppiankov/factchain/internal/validate"
)

// Pipeline orchestrates the complete fact-checking process
type Pipeline struct {
	provider   llm.Provider
	collector  *collect.Collector
	aggregator *score.Aggregator
	validator  *validate.Validator // nil when the link check is disabled
	searcher   search.Searcher
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("an LLM provider is required (openai, anthropic or ollama)")
	}

	var searchCache cache.Cache
	if cfg.Cache.Enabled {
		searchCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	searcher, err := search.NewSearcher(cfg.Search, cfg.Collect.TimeWindow, searchCache)
	if err != nil {
		return nil, fmt.Errorf("init search provider: %w", err)
	}

	classifier := trust.NewClassifier(&cfg.Trust)
	collector := collect.NewCollector(searcher, classifier, cfg.Collect,
		cfg.Concurrency.BucketWorkers, cfg.Search.Timeout, cfg.Output.Verbose)

	var validator *validate.Validator
	if cfg.Validate.Enabled {
		validator = validate.NewValidator(cfg.Validate, cfg.Concurrency.ValidationWorkers)
	}

	return &Pipeline{
		provider:   provider,
		collector:  collector,
		aggregator: score.NewAggregator(),
		validator:  validator,
		searcher:   searcher,
		config:     cfg,
	}, nil
}

// Check runs the full pipeline over one input text
func (p *Pipeline) Check(ctx context.Context, text string) (*model.Report, error) {
	start := time.Now()
	timings := make(map[string]float64)

	extractStart := time.Now()
	claims, err := p.provider.ExtractClaims(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	timings["extract"] = time.Since(extractStart).Seconds()

	if len(claims) == 0 {
		return p.buildReport(nil, start, timings), nil
	}

	assessStart := time.Now()
	assessments := p.assessClaims(ctx, claims)
	timings["assess"] = time.Since(assessStart).Seconds()

	return p.buildReport(assessments, start, timings), nil
}

// assessClaims runs collect/evaluate/score/validate for every claim,
// bounded by the claim worker count. Results keep the claim order no
// matter which worker finishes first.
func (p *Pipeline) assessClaims(ctx context.Context, claims []model.Claim) []model.ClaimAssessment {
	workers := p.config.Concurrency.ClaimWorkers
	if workers <= 0 {
		workers = 1
	}

	assessments := make([]model.ClaimAssessment, len(claims))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, cl model.Claim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				assessments[idx] = p.failedAssessment(cl)
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			assessments[idx] = p.assessClaim(ctx, cl)
		}(i, claim)
	}

	wg.Wait()
	return assessments
}

// assessClaim runs the per-claim chain. An evaluation failure degrades
// to the uncertain judgment so one flaky model call cannot sink the
// whole claim.
func (p *Pipeline) assessClaim(ctx context.Context, claim model.Claim) model.ClaimAssessment {
	set := p.collector.Collect(ctx, claim)

	judgment, err := p.provider.EvaluateEvidence(ctx, claim.Text, set.Items)
	if err != nil {
		p.warnf("evaluate %s: %v", claim.ID, err)
		judgment = model.UncertainJudgment()
	}

	assessment := model.ClaimAssessment{
		Claim:    claim,
		Evidence: set,
		Judgment: judgment,
		Score:    p.aggregator.Score(claim.ID, set, judgment),
	}

	if p.validator != nil {
		assessment.Validation = p.validator.Validate(ctx, set.URLs())
		backfillTitles(&assessment.Evidence, assessment.Validation)
	}
	return assessment
}

// failedAssessment is the placeholder for a claim that never ran
func (p *Pipeline) failedAssessment(claim model.Claim) model.ClaimAssessment {
	judgment := model.UncertainJudgment()
	return model.ClaimAssessment{
		Claim:    claim,
		Judgment: judgment,
		Score:    p.aggregator.Score(claim.ID, model.EvidenceSet{}, judgment),
	}
}

// backfillTitles fills empty evidence titles from the link check
func backfillTitles(set *model.EvidenceSet, validation []model.ValidationResult) {
	for i := range set.Items {
		if set.Items[i].Title != "" || i >= len(validation) {
			continue
		}
		if validation[i].Title != "" {
			set.Items[i].Title = validation[i].Title
		}
	}
}

func (p *Pipeline) buildReport(assessments []model.ClaimAssessment, start time.Time, timings map[string]float64) *model.Report {
	if assessments == nil {
		assessments = []model.ClaimAssessment{}
	}
	return &model.Report{
		Meta: model.ReportMeta{
			Model:          p.config.LLM.Model,
			SearchProvider: p.searcher.Name(),
			MaxResults:     p.config.Collect.MaxResults,
			ElapsedSec:     time.Since(start).Seconds(),
			HL:             p.config.Search.HL,
			GL:             p.config.Search.GL,
			Workers:        p.config.Concurrency.ClaimWorkers,
			Timings:        timings,
		},
		Claims: assessments,
	}
}

func (p *Pipeline) warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
