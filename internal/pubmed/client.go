// Package pubmed implements a client for the NCBI E-utilities API.
//
// A search is two calls: esearch to resolve a free-text query into PMIDs,
// then efetch to pull the article records as XML. NCBI allows 3 requests
// per second without an API key (10 with one); the client enforces that
// with a shared rate limiter and caches results per query.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/adetolu/medfact/internal/cache"
	"github.com/adetolu/medfact/internal/model"
	"golang.org/x/time/rate"
)

const toolName = "medfact"

// Client searches PubMed through the NCBI E-utilities endpoints
type Client struct {
	baseURL    string
	email      string
	apiKey     string
	maxResults int
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.Cache // nil disables caching
}

// NewClient creates a PubMed client. The cache may be nil.
func NewClient(cfg model.PubMedConfig, resultCache cache.Cache) *Client {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 3
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		email:      cfg.Email,
		apiKey:     cfg.APIKey,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cache:      resultCache,
	}
}

// Search returns up to the configured number of relevant abstracts
func (c *Client) Search(ctx context.Context, query string) ([]model.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	if c.cache != nil {
		if data, found := c.cache.Get(cache.Key(query)); found {
			var cached []model.Article
			if err := json.Unmarshal(data, &cached); err == nil {
				slog.Debug("PubMed cache hit", "query", query)
				return cached, nil
			}
		}
	}

	pmids, err := c.search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("esearch: %w", err)
	}

	var articles []model.Article
	if len(pmids) > 0 {
		articles, err = c.fetch(ctx, pmids)
		if err != nil {
			return nil, fmt.Errorf("efetch: %w", err)
		}
	}

	// Empty result sets are cached too; a query with no hits should not
	// re-hit NCBI on every repeat within the TTL.
	if c.cache != nil {
		if data, err := json.Marshal(articles); err == nil {
			_ = c.cache.Set(cache.Key(query), data, 0)
		}
	}

	return articles, nil
}

// search resolves a free-text query into a list of PMIDs
func (c *Client) search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {fmt.Sprintf("%d", c.maxResults)},
		"sort":    {"relevance"},
		"retmode": {"json"},
	}

	body, err := c.get(ctx, "/esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var result esearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return result.ESearchResult.IDList, nil
}

// fetch pulls full article records for the given PMIDs
func (c *Client) fetch(ctx context.Context, pmids []string) ([]model.Article, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"rettype": {"abstract"},
		"retmode": {"xml"},
	}

	body, err := c.get(ctx, "/efetch.fcgi", params)
	if err != nil {
		return nil, err
	}

	return parseArticleSet(body)
}

// get performs a rate-limited GET against an E-utilities endpoint
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	// NCBI etiquette: identify the tool and a contact address on every call
	params.Set("tool", toolName)
	if c.email != "" {
		params.Set("email", c.email)
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	requestURL := c.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateBody(body))
	}

	return body, nil
}

type esearchResponse struct {
	ESearchResult struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

func truncateBody(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
