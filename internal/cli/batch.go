package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/factchain/internal/pipeline"
	"github.com/ppiankov/factchain/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Fact-check multiple input files in parallel",
	Long: `Batch fact-checks multiple input texts concurrently:
- Read input file paths from a manifest (one per line, # for comments)
- Process inputs in parallel with a configurable worker count
- Write an individual JSON report per input

Example:
  factchain batch inputs.txt
  factchain batch inputs.txt --concurrency 4 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent inputs")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./factchain-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	paths, err := worker.ReadPathsFromFile(manifest)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("manifest %s lists no input files", manifest)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d inputs with %d workers...\n", len(paths), concurrency)

	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.ProcessFiles(ctx, paths)

	renderer := pipeline.NewRenderer(!noColor)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, reportName(result.Source))
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Source, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s: %d claims -> %s\n", result.Source, len(result.Report.Claims), jsonPath)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d ok, %d failed, output in %s\n",
		successCount, failureCount, outputDir)

	return nil
}

// reportName derives the report filename from the input path
func reportName(source string) string {
	base := filepath.Base(source)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".json"
}
