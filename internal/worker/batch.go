package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/adetolu/medfact/internal/model"
)

// Checker defines the interface for verifying a single claim
type Checker interface {
	Check(ctx context.Context, claim string) (*model.VerdictResponse, error)
}

// CheckJob represents a single claim verification job
type CheckJob struct {
	Index   int
	Claim   string
	Checker Checker
}

// Execute runs the verification
func (j *CheckJob) Execute(ctx context.Context) Result {
	response, err := j.Checker.Check(ctx, j.Claim)
	return &CheckResult{
		Index:    j.Index,
		Claim:    j.Claim,
		Response: response,
		Error:    err,
	}
}

// CheckResult represents the outcome of a claim verification job
type CheckResult struct {
	Index    int
	Claim    string
	Response *model.VerdictResponse
	Error    error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple claims concurrently
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

// ProcessClaims verifies the given claims concurrently. Results come back in
// input order regardless of completion order.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*CheckResult {
	if len(claims) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, claim := range claims {
		pool.Submit(&CheckJob{
			Index:   i,
			Claim:   claim,
			Checker: b.checker,
		})
	}

	results := pool.Wait()

	ordered := make([]*CheckResult, len(claims))
	for _, result := range results {
		checkResult := result.(*CheckResult)
		ordered[checkResult.Index] = checkResult
	}

	return ordered
}

// ProcessFile reads claims from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*CheckResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file (one per line)
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate claims
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
