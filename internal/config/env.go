package config

import "fmt"

// EnvTemplate is the .env skeleton written by `veracity env init`. It lists
// every variable ApplyEnv reads.
const EnvTemplate = `# Google Custom Search (required)
GCP_SEARCH_API_KEY=
GCP_CUSTOM_SEARCH_ENGINE_ID=

# Daily search budget; a value <= 0 disables enforcement
GCP_DAILY_QUERY_LIMIT=100

# Gemini embeddings (optional; without it the deterministic
# term-frequency fallback is used)
GOOGLE_API_KEY=
EMBEDDING_PROVIDER=gemini
EMBEDDING_MODEL=text-embedding-004

# State file locations
GCP_QUOTA_STORE=logs/.google_quota.json
GCP_SEARCH_CACHE=logs/.google_search_cache.json

# Retrieval defaults
DEFAULT_SEARCH_RESULTS=10
DEFAULT_TOP_K=5
`

// Status reports which pieces of configuration are present, one line per
// concern, without echoing secrets. `veracity env check` prints these.
func (c *Config) Status() []string {
	mark := func(ok bool) string {
		if ok {
			return "set"
		}
		return "missing"
	}
	return []string{
		fmt.Sprintf("Search API key:       %s", mark(c.Search.APIKey != "")),
		fmt.Sprintf("Search engine ID:     %s", mark(c.Search.EngineID != "")),
		fmt.Sprintf("Embedding provider:   %s", c.Embedding.Provider),
		fmt.Sprintf("Embedding API key:    %s", mark(c.Embedding.APIKey != "")),
		fmt.Sprintf("Daily query limit:    %d", c.Search.DailyLimit),
		fmt.Sprintf("Storage backend:      %s", c.Storage.Backend),
		fmt.Sprintf("Results per query:    %d", c.Retrieval.ResultsPerQuery),
		fmt.Sprintf("Top-k evidence:       %d", c.Retrieval.TopK),
	}
}
