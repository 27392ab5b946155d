package model

// ScoreResult is the final output of the scoring engine for one claim
type ScoreResult struct {
	ClaimID        string     `json:"claim_id"`
	Score          float64    `json:"score"` // 0..100
	Verdict        Verdict    `json:"verdict"`
	Confidence     float64    `json:"confidence"` // Passed through from the judgment, clamped to 0..1
	TierCounts     TierCounts `json:"tier_counts"`
	Supports       int        `json:"supports"`
	Refutes        int        `json:"refutes"`
	Irrelevant     int        `json:"irrelevant"`
	EvidenceExists bool       `json:"evidence_exists"`
}

// ClaimAssessment bundles everything known about one claim after the
// full extract/collect/evaluate/score chain
type ClaimAssessment struct {
	Claim      Claim              `json:"claim"`
	Evidence   EvidenceSet        `json:"evidence"`
	Judgment   Judgment           `json:"judgment"`
	Score      ScoreResult        `json:"score"`
	Validation []ValidationResult `json:"validation,omitempty"` // Optional link check results
}

// ValidationResult records the optional accessibility check of one evidence URL
type ValidationResult struct {
	URL           string `json:"url"`
	Accessible    bool   `json:"accessible"`
	StatusCode    int    `json:"status_code,omitempty"`
	RobotsBlocked bool   `json:"robots_blocked,omitempty"`
	Title         string `json:"title,omitempty"` // Backfilled from the page when the search result had none
	Error         string `json:"error,omitempty"`
}

// Report is the complete pipeline output for one input text
type Report struct {
	Meta   ReportMeta        `json:"meta"`
	Claims []ClaimAssessment `json:"claims"`
}

// ReportMeta describes the run that produced a report
type ReportMeta struct {
	Model          string             `json:"model"`
	SearchProvider string             `json:"search_provider"`
	MaxResults     int                `json:"max_results"`
	ElapsedSec     float64            `json:"elapsed_sec"`
	HL             string             `json:"hl"`
	GL             string             `json:"gl"`
	Workers        int                `json:"workers"`
	Timings        map[string]float64 `json:"timings,omitempty"` // Per-step durations in seconds
}
