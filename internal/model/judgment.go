package model

// Judgement classifies how a single evidence item relates to a claim
type Judgement string

const (
	JudgementSupports   Judgement = "supports"
	JudgementRefutes    Judgement = "refutes"
	JudgementIrrelevant Judgement = "irrelevant"
)

// ParseJudgement converts a string to a Judgement, defaulting to irrelevant.
// An unparseable value must never abort scoring.
func ParseJudgement(s string) Judgement {
	switch s {
	case string(JudgementSupports):
		return JudgementSupports
	case string(JudgementRefutes):
		return JudgementRefutes
	default:
		return JudgementIrrelevant
	}
}

// Verdict is the overall judgment for a claim
type Verdict string

const (
	VerdictSupported Verdict = "supported"
	VerdictRefuted   Verdict = "refuted"
	VerdictUncertain Verdict = "uncertain"
)

// ParseVerdict converts a string to a Verdict, defaulting to uncertain
func ParseVerdict(s string) Verdict {
	switch s {
	case string(VerdictSupported):
		return VerdictSupported
	case string(VerdictRefuted):
		return VerdictRefuted
	default:
		return VerdictUncertain
	}
}

// EvidenceJudgment is the model's assessment of one evidence item
type EvidenceJudgment struct {
	URL       string    `json:"url"`
	Judgement Judgement `json:"judgement"`
	Rationale string    `json:"rationale"`
}

// Judgment is the structured output of the LLM evidence evaluation
type Judgment struct {
	PerEvidence    []EvidenceJudgment `json:"per_evidence"`
	OverallVerdict Verdict            `json:"overall_verdict"`
	Confidence     float64            `json:"confidence"` // 0..1
}

// UncertainJudgment is the conservative default used when the evaluation
// collaborator fails or returns unusable output
func UncertainJudgment() Judgment {
	return Judgment{
		PerEvidence:    []EvidenceJudgment{},
		OverallVerdict: VerdictUncertain,
		Confidence:     0.0,
	}
}
