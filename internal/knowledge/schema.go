package knowledge

import (
	"github.com/weaviate/weaviate/entities/models"
)

// claimClass returns the Weaviate class definition for curated claims.
// Vectorizer is "none": vectors are computed client-side by the embedder,
// so the same class works regardless of which Weaviate modules are enabled.
func claimClass(name string) *models.Class {
	indexFilterable := new(bool)
	*indexFilterable = true

	return &models.Class{
		Class:       name,
		Description: "A manually vetted health claim with verdict, confidence, and cited sources.",
		Vectorizer:  "none",
		Properties: []*models.Property{
			{
				Name:        "claim",
				DataType:    []string{"text"},
				Description: "The claim text itself.",
			},
			{
				Name:            "verdict",
				DataType:        []string{"text"},
				Description:     "One of TRUE, FALSE, PARTIALLY TRUE, UNCLEAR.",
				Tokenization:    "field",
				IndexFilterable: indexFilterable,
			},
			{
				Name:        "confidence",
				DataType:    []string{"int"},
				Description: "Curator confidence, 0-100.",
			},
			{
				Name:        "explanation",
				DataType:    []string{"text"},
				Description: "Plain-language explanation of the verdict.",
			},
			{
				Name:        "sources",
				DataType:    []string{"text[]"},
				Description: "Citations backing the verdict.",
			},
			{
				Name:            "category",
				DataType:        []string{"text"},
				Description:     "Comma-separated topic tags.",
				IndexFilterable: indexFilterable,
			},
			{
				Name:            "language",
				DataType:        []string{"text"},
				Description:     "Language tag of the record.",
				Tokenization:    "field",
				IndexFilterable: indexFilterable,
			},
		},
	}
}
