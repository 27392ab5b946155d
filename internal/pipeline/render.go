package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ppiankov/factchain/internal/model"
)

// ANSI escape codes for the console summary
const (
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorRed    = "\033[91m"
	colorCyan   = "\033[96m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

// Renderer writes the report as JSON and as a colored console summary
type Renderer struct {
	color bool
}

// NewRenderer creates a renderer
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// RenderJSON writes the full report to a JSON file
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints the per-claim console summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	meta := report.Meta

	fmt.Fprintln(w, "\nFact-check results")
	fmt.Fprintln(w, "───────────────────────────────")
	fmt.Fprintf(w, "Model: %s | Search: %s\n", meta.Model, meta.SearchProvider)
	fmt.Fprintf(w, "Elapsed: %.1fs | Claims: %d\n\n", meta.ElapsedSec, len(report.Claims))

	for _, assessment := range report.Claims {
		r.renderClaim(w, assessment)
		fmt.Fprintln(w, "───────────────────────────────")
	}
}

func (r *Renderer) renderClaim(w io.Writer, a model.ClaimAssessment) {
	fmt.Fprintln(w, r.paint(fmt.Sprintf("[%s] %s", a.Claim.ID, a.Claim.Text), colorCyan))
	fmt.Fprintf(w, "   verdict: %s (confidence %.2f)\n", r.verdictLabel(a.Score.Verdict), a.Score.Confidence)
	fmt.Fprintf(w, "   score:   %.1f/100\n", a.Score.Score)
	fmt.Fprintf(w, "   %s\n", r.tierSummary(a.Score.TierCounts))

	if a.Evidence.FallbackApplied {
		fmt.Fprintln(w, "   (authority fallback applied)")
	}

	// Top three evidence sources
	for i, item := range a.Evidence.Items {
		if i >= 3 {
			break
		}
		title := item.Title
		if runes := []rune(title); len(runes) > 60 {
			title = string(runes[:60]) + "..."
		}
		fmt.Fprintf(w, "      - %s: %s\n", item.Domain, title)
	}
}

func (r *Renderer) verdictLabel(v model.Verdict) string {
	switch v {
	case model.VerdictSupported:
		return r.paint("supported", colorGreen)
	case model.VerdictRefuted:
		return r.paint("refuted", colorRed)
	default:
		return r.paint("uncertain", colorYellow)
	}
}

func (r *Renderer) tierSummary(tc model.TierCounts) string {
	return fmt.Sprintf("source trust: %s, %s, %s",
		r.paint(fmt.Sprintf("tier3:%d", tc.Tier3), colorGreen),
		r.paint(fmt.Sprintf("tier2:%d", tc.Tier2), colorYellow),
		r.paint(fmt.Sprintf("tier1:%d", tc.Tier1), colorRed))
}

func (r *Renderer) paint(s, color string) string {
	if !r.color {
		return s
	}
	return color + s + colorReset
}
