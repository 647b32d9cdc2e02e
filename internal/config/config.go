package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type SearchConfig struct {
	APIKey         string  `toml:"api_key"`
	EngineID       string  `toml:"engine_id"`
	DailyLimit     int     `toml:"daily_limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RetryBackoffMS int     `toml:"retry_backoff_ms"`
	QPS            float64 `toml:"qps"`
	Endpoint       string  `toml:"endpoint"`
}

type EmbeddingConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type StorageConfig struct {
	Backend   string `toml:"backend"`
	QuotaPath string `toml:"quota_path"`
	CachePath string `toml:"cache_path"`
	BoltPath  string `toml:"bolt_path"`
}

type RetrievalConfig struct {
	TopK            int `toml:"top_k"`
	ResultsPerQuery int `toml:"results_per_query"`
}

type ConcurrencyConfig struct {
	BatchWorkers int `toml:"batch_workers"`
}

type Config struct {
	Search      SearchConfig      `toml:"search"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	Storage     StorageConfig     `toml:"storage"`
	Retrieval   RetrievalConfig   `toml:"retrieval"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
}

// Default returns the configuration the engine runs with before any file or
// environment overrides are applied.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			DailyLimit:     100,
			TimeoutSeconds: 30,
			RetryBackoffMS: 1500,
		},
		Embedding: EmbeddingConfig{
			Provider: "gemini",
			Model:    "text-embedding-004",
		},
		Storage: StorageConfig{
			Backend:   "file",
			QuotaPath: filepath.Join("logs", ".google_quota.json"),
			CachePath: filepath.Join("logs", ".google_search_cache.json"),
			BoltPath:  filepath.Join("logs", "veracity_state.db"),
		},
		Retrieval: RetrievalConfig{
			TopK:            5,
			ResultsPerQuery: 10,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file is not an
// error; the environment alone can configure the engine.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// ApplyEnv layers the environment over the loaded configuration. The variable
// names follow the deployment scripts this engine inherited: GCP_* for the
// search provider, GOOGLE_API_KEY for Gemini embeddings.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GCP_SEARCH_API_KEY"); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv("GCP_CUSTOM_SEARCH_ENGINE_ID"); v != "" {
		c.Search.EngineID = v
	}
	if v := os.Getenv("GCP_DAILY_QUERY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.DailyLimit = n
		}
	}
	if v := os.Getenv("GCP_QUOTA_STORE"); v != "" {
		c.Storage.QuotaPath = v
	}
	if v := os.Getenv("GCP_SEARCH_CACHE"); v != "" {
		c.Storage.CachePath = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.Embedding.APIKey = v
	}
	if v := os.Getenv("EMBEDDING_PROVIDER"); v != "" {
		c.Embedding.Provider = v
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		c.Embedding.Model = v
	}
	if v := os.Getenv("DEFAULT_SEARCH_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retrieval.ResultsPerQuery = n
		}
	}
	if v := os.Getenv("DEFAULT_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retrieval.TopK = n
		}
	}
	if v := os.Getenv("VERACITY_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("VERACITY_BATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency.BatchWorkers = n
		}
	}
}

// Validate checks the two credentials the search client cannot run without.
// Everything else has a workable default.
func (c *Config) Validate() error {
	if c.Search.APIKey == "" {
		return errors.New("google custom search API key is required (GCP_SEARCH_API_KEY)")
	}
	if c.Search.EngineID == "" {
		return errors.New("custom search engine ID is required (GCP_CUSTOM_SEARCH_ENGINE_ID)")
	}
	return nil
}

func (s SearchConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (s SearchConfig) Backoff() time.Duration {
	if s.RetryBackoffMS <= 0 {
		return 1500 * time.Millisecond
	}
	return time.Duration(s.RetryBackoffMS) * time.Millisecond
}
