package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factchain/internal/model"
)

const snippetLimit = 300

const extractSystem = "You are a fact-checking editor. Respond with JSON only."

const evaluateSystem = "You are a fact-checking expert. Respond with JSON only."

// BuildExtractPrompt constructs the claim-extraction prompt. The model is
// asked for factual assertions only; value judgments and speculation are
// excluded at the prompt level, not post-filtered.
func BuildExtractPrompt(text string) string {
	return fmt.Sprintf(`Extract the factual claims from the input text below. Keep only
statements of fact; drop value judgments (good/bad/desirable), opinions and
speculation. Summarize each claim as a single sentence.

Classify each claim into one of these categories:
["tech","science","policy","health","finance","community","general"]

Output format (JSON):
{
  "claims": [
    {"id": "C1", "claim": "one-sentence claim", "normalized_query": "key search terms", "category": "tech"}
  ]
}

Input:
%s`, strings.TrimSpace(text))
}

// BuildEvaluatePrompt constructs the evidence-evaluation prompt. Only the
// provided evidence bullets may be used as grounds for the verdict.
func BuildEvaluatePrompt(claimText string, items []model.Evidence) string {
	return fmt.Sprintf(`Evaluate the claim below using ONLY the web evidence summaries
provided. For each evidence item decide whether it supports, refutes or is
irrelevant to the claim, then give an overall verdict. When the evidence is
inconclusive answer "uncertain". No exaggeration, no speculation.

Claim:
%s

Evidence:
%s

Output format (JSON):
{
  "per_evidence": [
    {"url": "...", "judgement": "supports|refutes|irrelevant", "rationale": "one-line reason"}
  ],
  "overall_verdict": "supported|refuted|uncertain",
  "confidence": 0.0
}`, claimText, evidenceBullets(items))
}

// evidenceBullets renders evidence items as prompt bullets, truncating
// snippets so a large evidence set cannot blow the token budget
func evidenceBullets(items []model.Evidence) string {
	if len(items) == 0 {
		return "(no evidence)"
	}
	var b strings.Builder
	for _, item := range items {
		// Truncate on rune count; a byte slice could split a multibyte
		// character mid-sequence
		snippet := item.Snippet
		if runes := []rune(snippet); len(runes) > snippetLimit {
			snippet = string(runes[:snippetLimit])
		}
		fmt.Fprintf(&b, "- [%s] %s — %s (URL: %s)\n", item.Domain, item.Title, snippet, item.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}
