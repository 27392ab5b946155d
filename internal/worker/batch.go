package worker

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/ppiankov/factchain/internal/model"
)

// Checker runs the fact-checking pipeline over one input text
type Checker interface {
	Check(ctx context.Context, text string) (*model.Report, error)
}

// CheckJob fact-checks the contents of a single input file
type CheckJob struct {
	Source  string // file path, kept for attribution in the result
	Text    string
	Checker Checker
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	report, err := j.Checker.Check(ctx, j.Text)
	return &CheckResult{
		Source: j.Source,
		Report: report,
		Error:  err,
	}
}

// CheckResult represents the result of a check job
type CheckResult struct {
	Source string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor fact-checks multiple input files concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessFiles reads each input file and fact-checks them concurrently.
// Results arrive in completion order; each carries its source path.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*CheckResult {
	if len(paths) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			pool.Submit(&errorJob{source: path, err: err})
			continue
		}
		pool.Submit(&CheckJob{
			Source:  path,
			Text:    string(text),
			Checker: b.checker,
		})
	}

	results := pool.Wait()

	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}
	return checkResults
}

// errorJob carries a file read failure through the pool so the caller
// still gets one result per input
type errorJob struct {
	source string
	err    error
}

func (j *errorJob) Execute(ctx context.Context) Result {
	return &CheckResult{Source: j.source, Error: j.err}
}

// ReadPathsFromFile reads input file paths from a manifest (one per
// line). Empty lines and #-comments are skipped, duplicates dropped.
func ReadPathsFromFile(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}
