package model

import "time"

// Config is the complete FactChain configuration tree. It is built once at
// startup (flags > env > config file > defaults) and treated as immutable
// by everything downstream.
type Config struct {
	Search      SearchConfig      `yaml:"search"`
	LLM         LLMConfig         `yaml:"llm"`
	Collect     CollectConfig     `yaml:"collect"`
	Trust       TrustConfig       `yaml:"trust"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Validate    ValidateConfig    `yaml:"validate"`
	Output      OutputConfig      `yaml:"output"`
}

// SearchConfig configures the web search provider
type SearchConfig struct {
	Provider string        `yaml:"provider"` // "cse" or "serpapi"
	Endpoint string        `yaml:"endpoint,omitempty"`
	APIKey   string        `yaml:"api_key,omitempty"`
	CSEID    string        `yaml:"cse_id,omitempty"` // Google CSE engine ID (cx)
	HL       string        `yaml:"hl"`               // Search UI language
	GL       string        `yaml:"gl"`               // Search region/country
	Timeout  time.Duration `yaml:"timeout"`
	RatePerS float64       `yaml:"rate_per_s"` // Request rate toward the provider
	Burst    int           `yaml:"burst"`
}

// LLMConfig configures the claim extraction / evidence evaluation model
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// CollectConfig configures evidence collection
type CollectConfig struct {
	MaxResults      int      `yaml:"max_results"`      // Cap per bucket/sweep, not global
	Locale          string   `yaml:"locale"`           // "KR", "US", "EU", ...
	AuthorityPolicy string   `yaml:"authority_policy"` // auto, always, never
	AuthorityExtra  []string `yaml:"authority_extra,omitempty"`
	TimeWindow      string   `yaml:"time_window,omitempty"` // d, w, m, y
}

// TrustConfig holds the ordered tier patterns for domain classification.
// Patterns are regular expressions matched against the lower-cased domain
// with any leading www. removed. First match wins; no match means tier 1.
type TrustConfig struct {
	Tier3Patterns []string `yaml:"tier3_patterns"`
	Tier2Patterns []string `yaml:"tier2_patterns"`
}

// CacheConfig configures search response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig bounds the pipeline's parallelism
type ConcurrencyConfig struct {
	ClaimWorkers      int `yaml:"claim_workers"`      // Claims processed in parallel
	BucketWorkers     int `yaml:"bucket_workers"`     // Bucket queries in flight per claim
	ValidationWorkers int `yaml:"validation_workers"` // Concurrent link checks
}

// ValidateConfig configures the optional evidence link check
type ValidateConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	JSONPath string `yaml:"json_path"`
	Verbose  bool   `yaml:"verbose"`
	Color    bool   `yaml:"color"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Provider: "cse",
			HL:       "ko",
			GL:       "kr",
			Timeout:  20 * time.Second,
			RatePerS: 5,
			Burst:    5,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 2000,
		},
		Collect: CollectConfig{
			MaxResults:      6,
			Locale:          "KR",
			AuthorityPolicy: "auto",
		},
		Trust: TrustConfig{
			Tier3Patterns: DefaultTier3Patterns,
			Tier2Patterns: DefaultTier2Patterns,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers:      4,
			BucketWorkers:     4,
			ValidationWorkers: 10,
		},
		Validate: ValidateConfig{
			Enabled:   false,
			Timeout:   10 * time.Second,
			UserAgent: "FactChain/0.1 (+https://github.com/ppiankov/factchain)",
		},
		Output: OutputConfig{
			JSONPath: "output.json",
			Color:    true,
		},
	}
}

// DefaultTier3Patterns matches government, public, academic, international
// and core standards domains. Additions should be conservative and reviewed.
var DefaultTier3Patterns = []string{
	`(^|\.)gov$`, `(^|\.)go\.kr$`, `(^|\.)g\.kr$`, `(^|\.)edu$`,
	`(^|\.)ac\.[a-z]{2}$`,
	`(^|\.)who\.int$`, `(^|\.)un\.org$`, `(^|\.)europa\.eu$`,
	`(^|\.)rfc-editor\.org$`, `(^|\.)ietf\.org$`, `(^|\.)iso\.org$`, `(^|\.)ieee\.org$`,
}

// DefaultTier2Patterns matches major press and big-tech/standards sites
var DefaultTier2Patterns = []string{
	// International press
	`(^|\.)reuters\.com$`, `(^|\.)apnews\.com$`, `(^|\.)bbc\.com$`,
	`(^|\.)nytimes\.com$`, `(^|\.)wsj\.com$`, `(^|\.)bloomberg\.com$`,
	`(^|\.)theguardian\.com$`, `(^|\.)cnn\.com$`, `(^|\.)cnbc\.com$`,
	`(^|\.)forbes\.com$`, `(^|\.)economist\.com$`, `(^|\.)washingtonpost\.com$`,
	// Korean press
	`(^|\.)hani\.co\.kr$`, `(^|\.)yna\.co\.kr$`, `(^|\.)yonhapnews\.co\.kr$`,
	`(^|\.)kbs\.co\.kr$`, `(^|\.)mbc\.co\.kr$`, `(^|\.)sbs\.co\.kr$`,
	`(^|\.)chosun\.com$`, `(^|\.)joongang\.co\.kr$`, `(^|\.)donga\.com$`,
	`(^|\.)jtbc\.co\.kr$`, `(^|\.)mk\.co\.kr$`, `(^|\.)edaily\.co\.kr$`,
	`(^|\.)koreatimes\.co\.kr$`, `(^|\.)koreaherald\.com$`, `(^|\.)asiatoday\.co\.kr$`,
	`(^|\.)newsis\.co\.kr$`, `(^|\.)heraldcorp\.com$`,
	// Tech / standards / vendors
	`(^|\.)microsoft\.com$`, `(^|\.)apple\.com$`, `(^|\.)google\.com$`,
	`(^|\.)meta\.com$`, `(^|\.)cloudflare\.com$`, `(^|\.)mozilla\.org$`,
	`(^|\.)oracle\.com$`, `(^|\.)intel\.com$`, `(^|\.)nvidia\.com$`,
}

func defaultCacheDir() string {
	return ".factchain-cache"
}
