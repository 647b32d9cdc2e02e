package core

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/agenthands/veracity/internal/core/model"
	"github.com/agenthands/veracity/internal/core/rank"
	"github.com/agenthands/veracity/internal/search"
)

// Searcher is the slice of the search client the engine depends on. Tests
// substitute a stub.
type Searcher interface {
	Search(ctx context.Context, query string, numResults int, mode search.Mode) []model.SearchHit
}

// Options tunes the engine's defaults and its batch worker pool.
type Options struct {
	TopK            int // evidence items returned per query (default 5)
	ResultsPerQuery int // raw hits requested per search (default 10)
	BatchWorkers    int // concurrent workers for BatchRetrieve (default 4)
}

// Retriever runs the evidence pipeline: search, re-rank, truncate to the
// requested depth, reduce to Evidence records. Every stage degrades to fewer
// (or zero) results instead of an error; a claim that finds nothing must not
// stall the verification pipeline around it.
type Retriever struct {
	Search Searcher
	Ranker *rank.Ranker

	// BatchProgress, when set, is invoked after each batch query completes.
	// The CLI hooks a progress bar into it.
	BatchProgress func(query string, found int)

	topK            int
	resultsPerQuery int

	pool    *ants.Pool
	closers []func() error
}

// NewRetriever wires an engine from an already-built searcher and ranker.
func NewRetriever(searcher Searcher, ranker *rank.Ranker, opts Options) (*Retriever, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}
	if ranker == nil {
		return nil, errors.New("ranker is required")
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.ResultsPerQuery <= 0 {
		opts.ResultsPerQuery = 10
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = 4
	}

	pool, err := ants.NewPool(opts.BatchWorkers, ants.WithPanicHandler(func(p any) {
		log.Printf("Error: batch retrieval worker panic: %v", p)
	}))
	if err != nil {
		return nil, err
	}

	return &Retriever{
		Search:          searcher,
		Ranker:          ranker,
		topK:            opts.TopK,
		resultsPerQuery: opts.ResultsPerQuery,
		pool:            pool,
	}, nil
}

// Retrieve returns the topK best evidence records for query. Zero values for
// topK and searchResults take the engine defaults.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK, searchResults int) []model.Evidence {
	return r.retrieve(ctx, query, topK, searchResults, search.ModeSync)
}

func (r *Retriever) retrieve(ctx context.Context, query string, topK, searchResults int, mode search.Mode) []model.Evidence {
	if topK <= 0 {
		topK = r.topK
	}
	if searchResults <= 0 {
		searchResults = r.resultsPerQuery
	}

	log.Printf("Retrieving evidence for query: %s", query)

	hits := r.Search.Search(ctx, query, searchResults, mode)
	if len(hits) == 0 {
		log.Printf("Warning: no search results for query: %s", query)
		return nil
	}

	ranked := r.Ranker.Rerank(ctx, query, hits)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	evidence := make([]model.Evidence, len(ranked))
	for i, h := range ranked {
		evidence[i] = model.EvidenceFromHit(h)
	}
	log.Printf("Retrieved %d evidence documents for query: %s", len(evidence), query)
	return evidence
}

// BatchRetrieve fetches evidence for every query concurrently and maps each
// query to its evidence list. A query whose worker fails in any way (search
// refusal, ranking failure, even a panic) keeps an empty list; one bad query
// never aborts the batch.
func (r *Retriever) BatchRetrieve(ctx context.Context, queries []string, topK int) map[string][]model.Evidence {
	// Pre-seeding with empty lists makes "failed" and "found nothing"
	// indistinguishable to the caller, which is the contract: every query
	// has an answer, possibly empty. Repeated queries collapse to one
	// retrieval. Workers write into results while submission is still in
	// progress, so submission walks the key snapshot, never the live map.
	results := make(map[string][]model.Evidence, len(queries))
	unique := make([]string, 0, len(queries))
	for _, q := range queries {
		if _, ok := results[q]; ok {
			continue
		}
		results[q] = []model.Evidence{}
		unique = append(unique, q)
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, q := range unique {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			evidence := r.retrieve(ctx, q, topK, r.resultsPerQuery, search.ModeAsync)
			if len(evidence) > 0 {
				mu.Lock()
				results[q] = evidence
				mu.Unlock()
			}
			if r.BatchProgress != nil {
				r.BatchProgress(q, len(evidence))
			}
		}
		if err := r.pool.Submit(task); err != nil {
			wg.Done()
			log.Printf("Error: failed to schedule retrieval for %q: %v", q, err)
		}
	}
	wg.Wait()
	return results
}

// Close releases the worker pool and any clients the engine owns (embedding
// client, state database). Safe to call once after use.
func (r *Retriever) Close() error {
	r.pool.Release()
	var firstErr error
	for _, fn := range r.closers {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
