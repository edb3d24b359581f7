package knowledge

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/adetolu/medfact/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed claims.yaml
var curatedDataset []byte

type datasetFile struct {
	Claims []model.CuratedClaim `yaml:"claims"`
}

// LoadCurated parses the embedded curated dataset.
// Records with an invalid verdict or out-of-range confidence are rejected so
// that a bad dataset fails at startup, not at query time.
func LoadCurated() ([]model.CuratedClaim, error) {
	var file datasetFile
	if err := yaml.Unmarshal(curatedDataset, &file); err != nil {
		return nil, fmt.Errorf("parse curated dataset: %w", err)
	}

	if len(file.Claims) == 0 {
		return nil, fmt.Errorf("curated dataset is empty")
	}

	for i, c := range file.Claims {
		if !c.Verdict.IsValid() {
			return nil, fmt.Errorf("record %d (%q): invalid verdict %q", i, c.Claim, c.Verdict)
		}
		if c.Confidence < 0 || c.Confidence > 100 {
			return nil, fmt.Errorf("record %d (%q): confidence %d out of range", i, c.Claim, c.Confidence)
		}
		if c.Language == "" {
			file.Claims[i].Language = "en"
		}
	}

	return file.Claims, nil
}

// FilterByCategory returns records whose category tags include the given one
func FilterByCategory(claims []model.CuratedClaim, category string) []model.CuratedClaim {
	if category == "" {
		return claims
	}

	var matched []model.CuratedClaim
	for _, c := range claims {
		for _, tag := range strings.Split(c.Category, ",") {
			if strings.EqualFold(strings.TrimSpace(tag), category) {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched
}
