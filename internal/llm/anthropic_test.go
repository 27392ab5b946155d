package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/factchain/internal/model"
)

func TestAnthropicProvider_ExtractClaims(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected path /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key test-key, got %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("anthropic-version header is required")
		}

		resp := anthropicResponse{
			Model: "claude-3-5-haiku-20241022",
			Content: []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			}{
				{Type: "text", Text: `{"claims": [{"id": "C1", "claim": "The WHO declared COVID-19 a pandemic in March 2020.", "normalized_query": "WHO COVID-19 pandemic declaration date", "category": "health"}]}`},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	claims, err := provider.ExtractClaims(context.Background(), "some text")
	if err != nil {
		t.Fatalf("ExtractClaims failed: %v", err)
	}
	if len(claims) != 1 || claims[0].Category != model.CategoryHealth {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestAnthropicProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		var apiErr anthropicError
		apiErr.Type = "error"
		apiErr.Error.Type = "authentication_error"
		apiErr.Error.Message = "invalid x-api-key"
		_ = json.NewEncoder(w).Encode(apiErr)
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{
		APIKey:  "bad-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.ExtractClaims(context.Background(), "text"); err == nil {
		t.Error("expected an API error")
	}

	// Evaluation surfaces the error but still hands back a usable judgment
	judgment, err := provider.EvaluateEvidence(context.Background(), "claim", nil)
	if err == nil {
		t.Error("expected an API error")
	}
	if judgment.OverallVerdict != model.VerdictUncertain {
		t.Errorf("error path should return the uncertain judgment, got %s", judgment.OverallVerdict)
	}
}

func TestAnthropicProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewAnthropicProvider(Config{}); err == nil {
		t.Error("expected an error without an API key")
	}
}
