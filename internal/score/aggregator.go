// Package score turns an evidence set and the model's judgment into the
// final 0-100 trust score. The aggregation is deterministic and total:
// any well-typed input produces a result, malformed values are coerced
// conservatively rather than rejected.
package score

import (
	"math"

	"github.com/ppiankov/factchain/internal/evidence"
	"github.com/ppiankov/factchain/internal/model"
)

// Additive term weights. Refutation is penalized harder than support is
// rewarded, and model confidence carries the largest single weight.
const (
	existenceBonus   = 10.0
	tier3Weight      = 10.0
	tier2Weight      = 5.0
	tier1Weight      = 1.0
	supportWeight    = 3.0
	supportedBonus   = 10.0
	refutedPenalty   = 15.0
	confidenceWeight = 40.0
)

// Aggregator computes trust scores
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Score aggregates evidence tiers, per-evidence judgments, the overall
// verdict and model confidence into a clamped 0-100 score. Terms are
// applied in a fixed order:
//
//	+10                          if any evidence exists
//	+10/+5/+1                    per tier 3/2/1 item
//	+3 * max(0, supports-refutes)
//	+10 / -15                    for a supported / refuted verdict
//	+40 * confidence             (confidence clamped to 0..1)
//
// then clamped to [0, 100].
func (a *Aggregator) Score(claimID string, set model.EvidenceSet, judgment model.Judgment) model.ScoreResult {
	exists := len(set.Items) > 0
	tierCounts := set.TierCounts()

	supports, refutes, irrelevant := matchJudgments(set, judgment.PerEvidence)

	verdict := model.ParseVerdict(string(judgment.OverallVerdict))
	confidence := clamp(judgment.Confidence, 0, 1)

	score := 0.0
	if exists {
		score += existenceBonus
	}
	score += float64(tierCounts.Tier3)*tier3Weight +
		float64(tierCounts.Tier2)*tier2Weight +
		float64(tierCounts.Tier1)*tier1Weight
	if supports > refutes {
		score += float64(supports-refutes) * supportWeight
	}
	switch verdict {
	case model.VerdictSupported:
		score += supportedBonus
	case model.VerdictRefuted:
		score -= refutedPenalty
	}
	score += confidence * confidenceWeight
	score = clamp(score, 0, 100)

	return model.ScoreResult{
		ClaimID:        claimID,
		Score:          score,
		Verdict:        verdict,
		Confidence:     confidence,
		TierCounts:     tierCounts,
		Supports:       supports,
		Refutes:        refutes,
		Irrelevant:     irrelevant,
		EvidenceExists: exists,
	}
}

// matchJudgments counts per-evidence judgments whose URL belongs to the
// evidence set. Both sides are canonicalized before comparison, so
// cosmetic URL differences still match. Entries with unknown URLs are
// silently dropped from the counts: the policy lives here and only here.
func matchJudgments(set model.EvidenceSet, perEvidence []model.EvidenceJudgment) (supports, refutes, irrelevant int) {
	known := make(map[string]bool, len(set.Items))
	for _, item := range set.Items {
		known[canonical(item.URL)] = true
	}

	for _, pe := range perEvidence {
		if !known[canonical(pe.URL)] {
			continue
		}
		switch model.ParseJudgement(string(pe.Judgement)) {
		case model.JudgementSupports:
			supports++
		case model.JudgementRefutes:
			refutes++
		default:
			irrelevant++
		}
	}
	return supports, refutes, irrelevant
}

// canonical normalizes a URL for matching, falling back to the raw
// string when normalization fails
func canonical(rawURL string) string {
	if c, err := evidence.NormalizeURL(rawURL); err == nil {
		return c
	}
	return rawURL
}

// clamp bounds v to [lo, hi]; NaN coerces to lo
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
