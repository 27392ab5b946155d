package llm

import (
	"context"

	"github.com/ppiankov/factchain/internal/model"
)

// Provider defines the interface for LLM providers. Both operations are
// fail-soft: callers treat a nil provider as "LLM disabled" and malformed
// model output degrades to conservative defaults instead of erroring.
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractClaims pulls factual claims out of free text, each with a
	// search query and a topic category
	ExtractClaims(ctx context.Context, text string) ([]model.Claim, error)

	// EvaluateEvidence judges each evidence item against the claim and
	// produces an overall verdict with confidence
	EvaluateEvidence(ctx context.Context, claimText string, items []model.Evidence) (model.Judgment, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, OpenAI-compatible proxies)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Model:     "gpt-4o-mini",
		Timeout:   30,
		MaxTokens: 2000,
	}
}
