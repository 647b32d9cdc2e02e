package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/agenthands/veracity/internal/core/model"
	"github.com/agenthands/veracity/internal/search"
)

type SearchCall struct {
	Query string
	Num   int
	Mode  search.Mode
}

// MockSearcher serves canned hits per query and records every call. Batch
// workers call it concurrently, hence the mutex.
type MockSearcher struct {
	mu      sync.Mutex
	Hits    map[string][]model.SearchHit
	Calls   []SearchCall
	PanicOn string
}

func (m *MockSearcher) Search(ctx context.Context, query string, numResults int, mode search.Mode) []model.SearchHit {
	m.mu.Lock()
	m.Calls = append(m.Calls, SearchCall{Query: query, Num: numResults, Mode: mode})
	m.mu.Unlock()
	if m.PanicOn != "" && query == m.PanicOn {
		panic("searcher blew up")
	}
	return m.Hits[query]
}

func (m *MockSearcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockEmbedder returns canned vectors per text; unknown text fails, which
// exercises the keep-at-zero path of the ranker.
type MockEmbedder struct {
	mu      sync.Mutex
	Vectors map[string][]float32
	Calls   int
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("no vector for %q", text)
}

func (m *MockEmbedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
