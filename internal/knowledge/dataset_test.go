package knowledge

import (
	"testing"

	"github.com/adetolu/medfact/internal/model"
)

func TestLoadCurated(t *testing.T) {
	claims, err := LoadCurated()
	if err != nil {
		t.Fatalf("LoadCurated failed: %v", err)
	}

	if len(claims) < 10 {
		t.Fatalf("Expected at least 10 curated records, got %d", len(claims))
	}

	for _, c := range claims {
		if c.Claim == "" {
			t.Error("Record with empty claim text")
		}
		if !c.Verdict.IsValid() {
			t.Errorf("Record %q has invalid verdict %q", c.Claim, c.Verdict)
		}
		if c.Confidence < 0 || c.Confidence > 100 {
			t.Errorf("Record %q has confidence %d out of range", c.Claim, c.Confidence)
		}
		if len(c.Sources) == 0 {
			t.Errorf("Record %q has no sources", c.Claim)
		}
		if c.Language == "" {
			t.Errorf("Record %q missing language tag", c.Claim)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	claims := []model.CuratedClaim{
		{Claim: "a", Category: "malaria"},
		{Claim: "b", Category: "malaria,covid"},
		{Claim: "c", Category: "covid"},
	}

	covid := FilterByCategory(claims, "covid")
	if len(covid) != 2 {
		t.Errorf("Expected 2 covid records, got %d", len(covid))
	}

	malaria := FilterByCategory(claims, "MALARIA")
	if len(malaria) != 2 {
		t.Errorf("Expected case-insensitive match, got %d records", len(malaria))
	}

	all := FilterByCategory(claims, "")
	if len(all) != 3 {
		t.Errorf("Empty category must return all records, got %d", len(all))
	}

	none := FilterByCategory(claims, "ebola")
	if len(none) != 0 {
		t.Errorf("Expected no ebola records, got %d", len(none))
	}
}
