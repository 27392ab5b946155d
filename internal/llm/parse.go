package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/factchain/internal/model"
)

// Wire structures for model output. Kept separate from internal/model so
// that loose or partial JSON from the LLM never shapes the domain types.
type claimsPayload struct {
	Claims []claimPayload `json:"claims"`
}

type claimPayload struct {
	ID              string `json:"id"`
	Claim           string `json:"claim"`
	NormalizedQuery string `json:"normalized_query"`
	Category        string `json:"category"`
}

type judgmentPayload struct {
	PerEvidence []struct {
		URL       string `json:"url"`
		Judgement string `json:"judgement"`
		Rationale string `json:"rationale"`
	} `json:"per_evidence"`
	OverallVerdict string  `json:"overall_verdict"`
	Confidence     float64 `json:"confidence"`
}

// ParseClaims parses the extraction output. Duplicate claim texts are
// dropped, missing fields are backfilled with usable defaults.
func ParseClaims(raw string) ([]model.Claim, error) {
	var payload claimsPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	var out []model.Claim
	seen := make(map[string]bool)
	for _, c := range payload.Claims {
		text := strings.TrimSpace(c.Claim)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true

		id := c.ID
		if id == "" {
			id = fmt.Sprintf("C%d", len(out)+1)
		}
		query := strings.TrimSpace(c.NormalizedQuery)
		if query == "" {
			query = text
		}
		out = append(out, model.Claim{
			ID:              id,
			Text:            text,
			NormalizedQuery: query,
			Category:        model.ParseCategory(c.Category),
		})
	}
	return out, nil
}

// ParseJudgment parses the evaluation output. Any malformed or partial
// response degrades to the uncertain judgment rather than an error, so a
// flaky model run never aborts the pipeline.
func ParseJudgment(raw string) model.Judgment {
	var payload judgmentPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return model.UncertainJudgment()
	}

	judgment := model.Judgment{
		OverallVerdict: model.ParseVerdict(payload.OverallVerdict),
		Confidence:     payload.Confidence,
	}
	if judgment.Confidence < 0 || judgment.Confidence > 1 {
		judgment.Confidence = 0
	}
	for _, pe := range payload.PerEvidence {
		if pe.URL == "" {
			continue
		}
		judgment.PerEvidence = append(judgment.PerEvidence, model.EvidenceJudgment{
			URL:       pe.URL,
			Judgement: model.ParseJudgement(pe.Judgement),
			Rationale: pe.Rationale,
		})
	}
	return judgment
}

// extractJSON trims markdown fences and any prose padding around the JSON
// object. Models occasionally wrap structured output despite instructions.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
