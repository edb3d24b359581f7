package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/adetolu/medfact/internal/agent"
	"github.com/adetolu/medfact/internal/cache"
	"github.com/adetolu/medfact/internal/embed"
	"github.com/adetolu/medfact/internal/knowledge"
	"github.com/adetolu/medfact/internal/llm"
	"github.com/adetolu/medfact/internal/model"
	"github.com/adetolu/medfact/internal/pubmed"
)

// loadConfig merges defaults, the config file and environment variables.
// API keys never live in the config file; they come from the environment.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.LLM.APIKey = providerAPIKey(cfg.LLM.Provider)
	cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")

	if v := os.Getenv("WEAVIATE_URL"); v != "" {
		cfg.Weaviate.URL = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		if cfg.LLM.Provider == "ollama" {
			cfg.LLM.BaseURL = v
		}
		if cfg.Embedding.Provider == "ollama" {
			cfg.Embedding.BaseURL = v
		}
	}
	if v := os.Getenv("PUBMED_EMAIL"); v != "" {
		cfg.PubMed.Email = v
	}
	if v := os.Getenv("PUBMED_API_KEY"); v != "" {
		cfg.PubMed.APIKey = v
		// NCBI lifts the rate ceiling for keyed requests
		if cfg.PubMed.RequestsPerSecond < 10 {
			cfg.PubMed.RequestsPerSecond = 10
		}
	}

	if cfg.Cache.Dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".medfact", "cache")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func providerAPIKey(provider string) string {
	switch provider {
	case "gemini", "google":
		return os.Getenv("GEMINI_API_KEY")
	case "ollama":
		return ""
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// newLogger builds the process logger. Verbose mode lowers the level to debug.
func newLogger(cfg *model.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Output.Verbose || verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildStore connects to Weaviate with the configured embedder
func buildStore(cfg *model.Config) (*knowledge.Store, error) {
	embedder, err := embed.New(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	store, err := knowledge.New(cfg.Weaviate, embedder)
	if err != nil {
		return nil, fmt.Errorf("connect to knowledge store: %w", err)
	}

	return store, nil
}

// buildAgent wires the full verification pipeline from configuration
func buildAgent(cfg *model.Config, logger *slog.Logger) (*agent.Agent, llm.Provider, *knowledge.Store, error) {
	store, err := buildStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create LLM provider: %w", err)
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	literature := pubmed.NewClient(cfg.PubMed, resultCache)

	a := agent.New(store, literature, provider, cfg.Search, logger)
	return a, provider, store, nil
}
