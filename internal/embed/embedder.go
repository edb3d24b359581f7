// Package embed produces vector embeddings for curated claims and queries.
//
// The knowledge store keeps explicit vectors (the Weaviate class uses no
// server-side vectorizer), so both indexing and querying go through an
// Embedder.
package embed

import (
	"context"
	"fmt"
	"strings"

	"github.com/adetolu/medfact/internal/model"
)

// Embedder converts text into a vector
type Embedder interface {
	// Name returns the backend name
	Name() string

	// Embed returns the embedding vector for the given text
	Embed(ctx context.Context, text string) ([]float32, error)
}

// New creates an embedder from configuration
func New(cfg model.EmbeddingConfig) (Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		return NewOpenAIEmbedder(cfg)
	case "ollama":
		return NewOllamaEmbedder(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}
