package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey string, embeddingModel string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if embeddingModel == "" {
		embeddingModel = "text-embedding-004"
	}
	return &GeminiClient{
		client: client,
		model:  embeddingModel,
	}, nil
}

func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	embedModel := c.client.EmbeddingModel(c.model)
	res, err := embedModel.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if res.Embedding != nil && len(res.Embedding.Values) > 0 {
		return res.Embedding.Values, nil
	}
	return nil, fmt.Errorf("no embedding values")
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
