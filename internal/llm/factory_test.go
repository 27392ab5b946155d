package llm

import (
	"testing"

	"github.com/ppiankov/factchain/internal/model"
)

func TestNewProvider_Dispatch(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{"openai", "openai"},
		{"anthropic", "anthropic"},
		{"claude", "anthropic"},
		{"ollama", "ollama"},
	}

	for _, tt := range tests {
		p, err := NewProvider(Config{Provider: tt.provider, APIKey: "k", Model: "m"})
		if err != nil {
			t.Fatalf("NewProvider(%s) failed: %v", tt.provider, err)
		}
		if p.Name() != tt.wantName {
			t.Errorf("NewProvider(%s).Name() = %q, want %q", tt.provider, p.Name(), tt.wantName)
		}
	}
}

func TestNewProvider_EmptyMeansDisabled(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("empty provider should yield nil/nil, got %v/%v", p, err)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "bard"}); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}

func TestConfigFromModel_BackfillsDefaults(t *testing.T) {
	cfg := ConfigFromModel(model.LLMConfig{Provider: "anthropic", APIKey: "k"})

	defaults := DefaultConfig()
	if cfg.Timeout != defaults.Timeout {
		t.Errorf("timeout = %d, want default %d", cfg.Timeout, defaults.Timeout)
	}
	if cfg.MaxTokens != defaults.MaxTokens {
		t.Errorf("max tokens = %d, want default %d", cfg.MaxTokens, defaults.MaxTokens)
	}
	// Explicit values pass through untouched
	cfg = ConfigFromModel(model.LLMConfig{Provider: "openai", Timeout: 5, MaxTokens: 100})
	if cfg.Timeout != 5 || cfg.MaxTokens != 100 {
		t.Errorf("explicit values overridden: %+v", cfg)
	}
}
