// Package knowledge wraps the Weaviate-backed store of curated health claims.
//
// The store holds the embedded curated dataset as vectorized records and
// exposes similarity search over them. Records are immutable at runtime;
// indexing happens only through the `index` command.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adetolu/medfact/internal/embed"
	"github.com/adetolu/medfact/internal/model"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	wmodels "github.com/weaviate/weaviate/entities/models"
)

// Store wraps a Weaviate client for curated claim retrieval
type Store struct {
	client   *weaviate.Client
	embedder embed.Embedder
	class    string
}

// New creates a Store connected to the configured Weaviate instance
func New(cfg model.WeaviateConfig, embedder embed.Embedder) (*Store, error) {
	scheme, host := splitURL(cfg.URL)

	client, err := weaviate.NewClient(weaviate.Config{
		Host:   host,
		Scheme: scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}

	class := cfg.Class
	if class == "" {
		class = "HealthClaim"
	}

	return &Store{
		client:   client,
		embedder: embedder,
		class:    class,
	}, nil
}

// splitURL separates a Weaviate URL into scheme and host
func splitURL(rawURL string) (scheme, host string) {
	scheme, host = "http", rawURL
	if strings.HasPrefix(rawURL, "https://") {
		scheme = "https"
		host = strings.TrimPrefix(rawURL, "https://")
	} else if strings.HasPrefix(rawURL, "http://") {
		host = strings.TrimPrefix(rawURL, "http://")
	}
	return scheme, strings.TrimSuffix(host, "/")
}

// Ready reports whether Weaviate is reachable
func (s *Store) Ready(ctx context.Context) error {
	ready, err := s.client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return fmt.Errorf("weaviate readiness check: %w", err)
	}
	if !ready {
		return fmt.Errorf("weaviate at configured URL is not ready")
	}
	return nil
}

// EnsureSchema creates the claim class if it does not exist yet
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.client.Schema().ClassGetter().WithClassName(s.class).Do(ctx)
	if err == nil {
		slog.Debug("Schema already exists", "class", s.class)
		return nil
	}

	if err := s.client.Schema().ClassCreator().WithClass(claimClass(s.class)).Do(ctx); err != nil {
		return fmt.Errorf("create schema for class %s: %w", s.class, err)
	}
	slog.Info("Created schema", "class", s.class)
	return nil
}

// Reset drops the claim class and everything stored under it. Forced
// reindexing calls this first so edited or removed records do not linger
// alongside the fresh copy.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.client.Schema().ClassDeleter().WithClassName(s.class).Do(ctx); err != nil {
		return fmt.Errorf("delete class %s: %w", s.class, err)
	}
	slog.Info("Dropped class", "class", s.class)
	return nil
}

// Index embeds and inserts curated claims into the store
func (s *Store) Index(ctx context.Context, claims []model.CuratedClaim) error {
	for i, c := range claims {
		vector, err := s.embedder.Embed(ctx, embeddingText(c))
		if err != nil {
			return fmt.Errorf("embed record %d (%q): %w", i, c.Claim, err)
		}

		_, err = s.client.Data().Creator().
			WithClassName(s.class).
			WithProperties(map[string]interface{}{
				"claim":       c.Claim,
				"verdict":     string(c.Verdict),
				"confidence":  c.Confidence,
				"explanation": c.Explanation,
				"sources":     c.Sources,
				"category":    c.Category,
				"language":    c.Language,
			}).
			WithVector(vector).
			Do(ctx)
		if err != nil {
			return fmt.Errorf("insert record %d (%q): %w", i, c.Claim, err)
		}
	}

	slog.Info("Indexed curated claims", "count", len(claims), "class", s.class)
	return nil
}

// Count returns the number of indexed claims
func (s *Store) Count(ctx context.Context) (int, error) {
	resp, err := s.client.GraphQL().Aggregate().
		WithClassName(s.class).
		WithFields(graphql.Field{
			Name:   "meta",
			Fields: []graphql.Field{{Name: "count"}},
		}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("aggregate query: %w", err)
	}
	if len(resp.Errors) > 0 {
		return 0, fmt.Errorf("aggregate query: %s", resp.Errors[0].Message)
	}

	parsed, err := parseGraphQL[aggregateResponse](resp)
	if err != nil {
		return 0, err
	}

	rows := parsed.Aggregate[s.class]
	if len(rows) == 0 {
		return 0, nil
	}
	return int(rows[0].Meta.Count), nil
}

// Search returns the closest curated matches for the query, best first.
// Results below the authority threshold are still returned; the caller
// decides whether to fall through to literature search.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]model.CuratedMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if limit <= 0 {
		limit = 2
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	nearVector := s.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector)

	fields := []graphql.Field{
		{Name: "claim"},
		{Name: "verdict"},
		{Name: "confidence"},
		{Name: "explanation"},
		{Name: "sources"},
		{Name: "category"},
		{Name: "language"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "certainty"}}},
	}

	resp, err := s.client.GraphQL().Get().
		WithClassName(s.class).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("similarity search: %s", resp.Errors[0].Message)
	}

	parsed, err := parseGraphQL[getResponse](resp)
	if err != nil {
		return nil, err
	}

	var matches []model.CuratedMatch
	for _, row := range parsed.Get[s.class] {
		matches = append(matches, model.CuratedMatch{
			CuratedClaim: model.CuratedClaim{
				Claim:       row.Claim,
				Verdict:     model.ParseVerdict(row.Verdict),
				Confidence:  model.ClampConfidence(int(row.Confidence)),
				Explanation: row.Explanation,
				Sources:     row.Sources,
				Category:    row.Category,
				Language:    row.Language,
			},
			Certainty: row.Additional.Certainty,
		})
	}

	return matches, nil
}

// parseGraphQL converts Weaviate's dynamic response payload into a typed struct
func parseGraphQL[T any](resp *wmodels.GraphQLResponse) (*T, error) {
	if resp == nil {
		return nil, fmt.Errorf("nil GraphQL response")
	}

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal GraphQL response data: %w", err)
	}

	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("unmarshal GraphQL response: %w", err)
	}
	return &result, nil
}

type claimResult struct {
	Claim       string   `json:"claim"`
	Verdict     string   `json:"verdict"`
	Confidence  float64  `json:"confidence"` // GraphQL numbers decode as float64
	Explanation string   `json:"explanation"`
	Sources     []string `json:"sources"`
	Category    string   `json:"category"`
	Language    string   `json:"language"`
	Additional  struct {
		Certainty float64 `json:"certainty"`
	} `json:"_additional"`
}

type getResponse struct {
	Get map[string][]claimResult `json:"Get"`
}

type aggregateResponse struct {
	Aggregate map[string][]struct {
		Meta struct {
			Count float64 `json:"count"`
		} `json:"meta"`
	} `json:"Aggregate"`
}

// embeddingText builds the text that gets vectorized for a curated record.
// Claim plus explanation gives the vector enough context to match question
// phrasings ("does X cure Y?") against statement phrasings ("X cures Y").
func embeddingText(c model.CuratedClaim) string {
	var b strings.Builder
	b.WriteString("Health Claim: ")
	b.WriteString(c.Claim)
	b.WriteString("\nVerdict: ")
	b.WriteString(string(c.Verdict))
	b.WriteString("\nExplanation: ")
	b.WriteString(c.Explanation)
	b.WriteString("\nCategory: ")
	b.WriteString(c.Category)
	return b.String()
}
