package core

import (
	"context"
	"io"

	"github.com/agenthands/veracity/internal/cache"
	"github.com/agenthands/veracity/internal/config"
	"github.com/agenthands/veracity/internal/core/rank"
	"github.com/agenthands/veracity/internal/llm"
	"github.com/agenthands/veracity/internal/quota"
	"github.com/agenthands/veracity/internal/search"
	"github.com/agenthands/veracity/internal/store"
)

// NewFromConfig wires the full engine from configuration: storage backend,
// quota manager and result cache, search client, embedding provider,
// re-ranker. It is the one place that enumerates every dependency, and the
// only constructor that can fail; once it returns, retrieval never does.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Retriever, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stores, err := store.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}

	qm := quota.New(cfg.Search.DailyLimit, stores.Quota)
	rc := cache.New(stores.Cache)

	client, err := search.NewClient(ctx, cfg.Search.APIKey, cfg.Search.EngineID, qm, rc, search.Options{
		Timeout:      cfg.Search.Timeout(),
		RetryBackoff: cfg.Search.Backoff(),
		QPS:          cfg.Search.QPS,
		Endpoint:     cfg.Search.Endpoint,
	})
	if err != nil {
		stores.Close()
		return nil, err
	}

	remote, err := llm.NewEmbedder(ctx, cfg.Embedding)
	if err != nil {
		stores.Close()
		return nil, err
	}

	r, err := NewRetriever(client, rank.New(llm.NewProvider(remote)), Options{
		TopK:            cfg.Retrieval.TopK,
		ResultsPerQuery: cfg.Retrieval.ResultsPerQuery,
		BatchWorkers:    cfg.Concurrency.BatchWorkers,
	})
	if err != nil {
		if closer, ok := remote.(io.Closer); ok {
			closer.Close()
		}
		stores.Close()
		return nil, err
	}

	r.closers = append(r.closers, stores.Close)
	if closer, ok := remote.(io.Closer); ok {
		r.closers = append(r.closers, closer.Close)
	}
	return r, nil
}
