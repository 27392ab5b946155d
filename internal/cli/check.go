package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/factchain/internal/model"
	"github.com/ppiankov/factchain/internal/pipeline"
)

var (
	inputText       string
	inputFile       string
	outJSON         string
	searchProvider  string
	llmProvider     string
	llmModel        string
	maxResults      int
	callTimeout     time.Duration
	locale          string
	timeWindow      string
	authorityPolicy string
	authorityExtra  []string
	hl              string
	gl              string
	claimWorkers    int
	validateLinks   bool
	noCache         bool
	noColor         bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fact-check a text and score each claim",
	Long: `Check runs the full fact-checking pipeline over an input text:
- Extract factual claims with an LLM
- Collect web evidence per claim across source buckets
- Judge each evidence item (supports/refutes/irrelevant)
- Aggregate a 0-100 trust score per claim

Example:
  factchain check --text "HTTP/3 runs on QUIC, not TCP."
  factchain check --file article.txt --json report.json
  factchain check --file article.txt --llm-provider ollama --model llama3.1:8b
  factchain check --text "..." --locale US --authority-policy always --validate`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&inputText, "text", "", "input text to fact-check")
	checkCmd.Flags().StringVar(&inputFile, "file", "", "read input text from a file")
	checkCmd.Flags().StringVar(&outJSON, "json", "output.json", "output JSON path")

	checkCmd.Flags().StringVar(&searchProvider, "search-provider", "cse", "search provider (cse, serpapi)")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "LLM model name")

	checkCmd.Flags().IntVar(&maxResults, "max-results", 6, "evidence items to keep per claim")
	checkCmd.Flags().DurationVar(&callTimeout, "timeout", 20*time.Second, "per-search-call timeout")
	checkCmd.Flags().StringVar(&locale, "locale", "KR", "locale for authority domain selection (KR, US, EU)")
	checkCmd.Flags().StringVar(&timeWindow, "time-window", "", "restrict results by age (d, w, m, y)")
	checkCmd.Flags().StringVar(&authorityPolicy, "authority-policy", "auto", "authority fallback policy (auto, always, never)")
	checkCmd.Flags().StringSliceVar(&authorityExtra, "authority-extra", nil, "extra authority domains for the fallback sweep")
	checkCmd.Flags().StringVar(&hl, "hl", "ko", "search UI language")
	checkCmd.Flags().StringVar(&gl, "gl", "kr", "search region")

	checkCmd.Flags().IntVar(&claimWorkers, "workers", 4, "claims processed in parallel")
	checkCmd.Flags().BoolVar(&validateLinks, "validate", false, "check evidence link accessibility after scoring")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search response caching")
	checkCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored console output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readInput()
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Model: %s/%s | Search: %s\n", llmProvider, llmModel, searchProvider)
		fmt.Fprintln(os.Stderr, "⚙️  Extracting claims...")
	}

	report, err := p.Check(ctx, text)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Assessed %d claims in %.1fs\n", len(report.Claims), report.Meta.ElapsedSec)
	}

	renderer := pipeline.NewRenderer(!noColor)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	renderer.RenderSummary(os.Stdout, report)

	return nil
}

// demoText is checked when neither --text nor --file is given.
const demoText = `In 1905 Einstein published the special theory of relativity,
reshaping the concepts of time and space. According to the theory the speed of
light is constant in every inertial frame, and time is relative to the
observer rather than absolute. In 1915 he followed with general relativity,
describing gravity as curvature of spacetime.`

// readInput resolves --text/--file; with neither set the demo text is used
func readInput() (string, error) {
	switch {
	case inputText != "" && inputFile != "":
		return "", fmt.Errorf("--text and --file are mutually exclusive")
	case inputText != "":
		return inputText, nil
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	default:
		fmt.Fprintln(os.Stderr, "no input given, checking the demo text (use --text or --file)")
		return demoText, nil
	}
}

// buildConfig merges flags and environment into the pipeline config
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.Search.Provider = searchProvider
	cfg.Search.Timeout = callTimeout
	cfg.Search.HL = hl
	cfg.Search.GL = gl

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	cfg.Collect.MaxResults = maxResults
	cfg.Collect.Locale = locale
	cfg.Collect.AuthorityPolicy = authorityPolicy
	cfg.Collect.AuthorityExtra = authorityExtra
	cfg.Collect.TimeWindow = timeWindow

	cfg.Concurrency.ClaimWorkers = claimWorkers
	cfg.Validate.Enabled = validateLinks
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.Color = !noColor
	cfg.Output.JSONPath = outJSON

	if err := resolveSearchKeys(cfg); err != nil {
		return nil, err
	}
	if err := resolveLLMKeys(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveSearchKeys(cfg *model.Config) error {
	switch cfg.Search.Provider {
	case "cse":
		cfg.Search.APIKey = os.Getenv("GOOGLE_CSE_API_KEY")
		cfg.Search.CSEID = os.Getenv("GOOGLE_CSE_CX")
		if cfg.Search.APIKey == "" || cfg.Search.CSEID == "" {
			return fmt.Errorf("GOOGLE_CSE_API_KEY and GOOGLE_CSE_CX environment variables not set")
		}
	case "serpapi":
		cfg.Search.APIKey = os.Getenv("SERPAPI_API_KEY")
		if cfg.Search.APIKey == "" {
			return fmt.Errorf("SERPAPI_API_KEY environment variable not set")
		}
	}
	return nil
}

func resolveLLMKeys(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
