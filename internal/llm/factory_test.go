package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/veracity/internal/config"
)

func TestNewEmbedderNone(t *testing.T) {
	for _, provider := range []string{"", "none"} {
		client, err := NewEmbedder(context.Background(), config.EmbeddingConfig{Provider: provider})
		require.NoError(t, err)
		assert.Nil(t, client)
	}
}

func TestNewEmbedderGeminiWithoutKeyDegrades(t *testing.T) {
	client, err := NewEmbedder(context.Background(), config.EmbeddingConfig{Provider: "gemini"})
	require.NoError(t, err)
	assert.Nil(t, client, "missing key selects the fallback instead of failing")
}

func TestNewEmbedderGemini(t *testing.T) {
	client, err := NewEmbedder(context.Background(), config.EmbeddingConfig{
		Provider: "gemini",
		APIKey:   "test-key",
		Model:    "text-embedding-004",
	})
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.IsType(t, &GeminiClient{}, client)
}

func TestNewEmbedderOpenAI(t *testing.T) {
	client, err := NewEmbedder(context.Background(), config.EmbeddingConfig{
		Provider: "openai",
		APIKey:   "test-key",
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)
}

func TestNewEmbedderOllamaUsesOpenAICompatibleClient(t *testing.T) {
	client, err := NewEmbedder(context.Background(), config.EmbeddingConfig{
		Provider: "ollama",
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)
}

func TestNewEmbedderUnknownProvider(t *testing.T) {
	_, err := NewEmbedder(context.Background(), config.EmbeddingConfig{Provider: "cohere"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported embedding provider")
}
