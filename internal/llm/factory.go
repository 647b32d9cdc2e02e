package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/veracity/internal/config"
)

// NewEmbedder builds the remote embedding client named by cfg, or returns nil
// when the configuration selects the offline fallback only. A nil client is
// not an error; Provider handles it.
func NewEmbedder(ctx context.Context, cfg config.EmbeddingConfig) (EmbedderClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "", "none":
		return nil, nil

	case "gemini":
		if cfg.APIKey == "" {
			log.Printf("No embedding API key configured, using term-frequency fallback")
			return nil, nil
		}
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		// Ollama speaks the OpenAI embeddings API; reuse that client.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		// Ollama ignores the API key but the client config requires one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
