package llm

import (
	"context"
)

// EmbedderClient produces a numeric vector for a piece of text. Remote
// clients (Gemini, OpenAI-compatible) and the offline term-frequency
// fallback all satisfy it.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
