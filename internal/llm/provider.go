package llm

import (
	"context"
	"log"
	"strings"
)

// Provider is the embedding entry point the re-ranker uses. It prefers the
// remote client and degrades to the term-frequency fallback on any remote
// failure, so callers never observe an embedding error for non-empty text.
// Empty or whitespace-only text yields a nil vector, meaning "no signal";
// callers treat that the same as a failed embedding.
type Provider struct {
	Remote   EmbedderClient // nil when no remote model is configured
	Fallback EmbedderClient
}

func NewProvider(remote EmbedderClient) *Provider {
	return &Provider{
		Remote:   remote,
		Fallback: TermFrequencyEmbedder{},
	}
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if p.Remote != nil {
		vec, err := p.Remote.Embed(ctx, text)
		if err == nil && len(vec) > 0 {
			return vec, nil
		}
		if err != nil {
			log.Printf("Warning: remote embedding failed, using term-frequency fallback: %v", err)
		}
	}
	return p.Fallback.Embed(ctx, text)
}
