package model

import (
	"fmt"
	"time"
)

// Config is the complete application configuration
type Config struct {
	Weaviate  WeaviateConfig  `yaml:"weaviate" mapstructure:"weaviate"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	PubMed    PubMedConfig    `yaml:"pubmed" mapstructure:"pubmed"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding" mapstructure:"embedding"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// WeaviateConfig configures the knowledge store connection
type WeaviateConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`         // e.g. http://localhost:8080
	Class   string        `yaml:"class" mapstructure:"class"`     // Weaviate class name
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"` // Startup readiness timeout
}

// SearchConfig controls curated retrieval behavior
type SearchConfig struct {
	// Threshold is the minimum similarity certainty for a curated match
	// to be treated as authoritative.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
	// TopK is the number of curated results fetched per query.
	TopK int `yaml:"top_k" mapstructure:"top_k"`
}

// PubMedConfig configures the NCBI E-utilities client
type PubMedConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	Email             string        `yaml:"email" mapstructure:"email"` // Required by NCBI etiquette
	APIKey            string        `yaml:"api_key,omitempty" mapstructure:"api_key"`
	MaxResults        int           `yaml:"max_results" mapstructure:"max_results"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// LLMConfig configures the hosted model provider
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, gemini, ollama
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // Seconds
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// EmbeddingConfig configures the embedder used for curated claims and queries
type EmbeddingConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // openai or ollama
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"-" mapstructure:"-"`
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// CacheConfig configures literature search caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Weaviate: WeaviateConfig{
			URL:     "http://localhost:8080",
			Class:   "HealthClaim",
			Timeout: 10 * time.Second,
		},
		Search: SearchConfig{
			Threshold: 0.75,
			TopK:      2,
		},
		PubMed: PubMedConfig{
			BaseURL:           "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
			MaxResults:        3,
			Timeout:           20 * time.Second,
			RequestsPerSecond: 3, // NCBI allows 3 req/s without an API key
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "",
			Timeout:     60,
			MaxTokens:   1200,
			Temperature: 0.1,
		},
		Embedding: EmbeddingConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.medfact/cache at load time
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:         ":8090",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 2 * time.Minute,
		},
	}
}

// Validate checks settings that would otherwise fail deep inside a request
func (c *Config) Validate() error {
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search threshold %.2f out of range [0,1]", c.Search.Threshold)
	}
	if c.Search.TopK < 1 {
		return fmt.Errorf("search top_k must be at least 1")
	}
	if c.PubMed.MaxResults < 1 {
		return fmt.Errorf("pubmed max_results must be at least 1")
	}
	if c.PubMed.RequestsPerSecond <= 0 {
		return fmt.Errorf("pubmed requests_per_second must be positive")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm timeout must be positive")
	}
	return nil
}
