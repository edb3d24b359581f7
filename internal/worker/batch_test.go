package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/adetolu/medfact/internal/model"
)

type stubChecker struct {
	calls   int32
	failFor string
}

func (c *stubChecker) Check(_ context.Context, claim string) (*model.VerdictResponse, error) {
	atomic.AddInt32(&c.calls, 1)
	if claim == c.failFor {
		return nil, fmt.Errorf("check failed for %q", claim)
	}
	return &model.VerdictResponse{
		Claim:      claim,
		Verdict:    model.VerdictFalse,
		Confidence: 90,
		Origin:     model.OriginCurated,
	}, nil
}

func TestBatchProcessor_ProcessClaims(t *testing.T) {
	checker := &stubChecker{}
	processor := NewBatchProcessor(checker, 3)

	claims := []string{
		"hot water cures malaria",
		"bitter kola cures ebola",
		"garlic cures hypertension",
	}

	results := processor.ProcessClaims(context.Background(), claims)

	if len(results) != len(claims) {
		t.Fatalf("expected %d results, got %d", len(claims), len(results))
	}

	// Results must follow input order even with concurrent execution
	for i, result := range results {
		if result == nil {
			t.Fatalf("result %d is nil", i)
		}
		if result.Claim != claims[i] {
			t.Errorf("result %d out of order: got %q, want %q", i, result.Claim, claims[i])
		}
		if result.Error != nil {
			t.Errorf("result %d: unexpected error: %v", i, result.Error)
		}
	}

	if atomic.LoadInt32(&checker.calls) != int32(len(claims)) {
		t.Errorf("expected %d checks, got %d", len(claims), checker.calls)
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	checker := &stubChecker{failFor: "bad claim"}
	processor := NewBatchProcessor(checker, 2)

	results := processor.ProcessClaims(context.Background(), []string{"good claim", "bad claim"})

	if results[0].Error != nil {
		t.Errorf("expected first claim to succeed: %v", results[0].Error)
	}
	if results[1].Error == nil {
		t.Error("expected second claim to fail")
	}
	if results[1].Response != nil {
		t.Error("failed check must not carry a response")
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(&stubChecker{}, 2)
	results := processor.ProcessClaims(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadClaimsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claims.txt")

	content := strings.Join([]string{
		"# common myths",
		"hot water cures malaria",
		"",
		"bitter kola cures ebola",
		"hot water cures malaria", // duplicate
	}, "\n")

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	claims, err := ReadClaimsFromFile(path)
	if err != nil {
		t.Fatalf("ReadClaimsFromFile failed: %v", err)
	}

	want := []string{"hot water cures malaria", "bitter kola cures ebola"}
	if len(claims) != len(want) {
		t.Fatalf("expected %d claims, got %d: %v", len(want), len(claims), claims)
	}
	for i := range want {
		if claims[i] != want[i] {
			t.Errorf("claim %d = %q, want %q", i, claims[i], want[i])
		}
	}
}

func TestReadClaimsFromFile_Missing(t *testing.T) {
	if _, err := ReadClaimsFromFile("/nonexistent/claims.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
