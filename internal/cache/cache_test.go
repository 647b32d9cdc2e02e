package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/veracity/internal/core/model"
	"github.com/agenthands/veracity/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func someHits() []model.SearchHit {
	return []model.SearchHit{
		{Title: "NASA Climate", Link: "https://climate.nasa.gov/evidence", Snippet: "evidence for rapid climate change", DisplayLink: "climate.nasa.gov", Source: "google_custom_search"},
		{Title: "IPCC Report", Link: "https://www.ipcc.ch/report", Snippet: "assessment of climate science", DisplayLink: "www.ipcc.ch", Source: "google_custom_search"},
	}
}

func TestPutThenGet(t *testing.T) {
	c := New(store.NewMemoryStore())

	_, ok := c.Get("sync::climate change::10")
	assert.False(t, ok)

	c.Put("sync::climate change::10", someHits())

	hits, ok := c.Get("sync::climate change::10")
	require.True(t, ok)
	assert.Equal(t, someHits(), hits)
	assert.Equal(t, 1, c.Len())
}

func TestEmptyResultSetIsAGenuineHit(t *testing.T) {
	c := New(store.NewMemoryStore())

	// A real round trip that found nothing is still worth caching: it must
	// not be confused with "never searched".
	c.Put("sync::obscure query::10", []model.SearchHit{})

	hits, ok := c.Get("sync::obscure query::10")
	assert.True(t, ok)
	assert.Empty(t, hits)
}

func TestPutOverwrites(t *testing.T) {
	c := New(store.NewMemoryStore())

	c.Put("sync::q::10", someHits())
	c.Put("sync::q::10", someHits()[:1])

	hits, ok := c.Get("sync::q::10")
	require.True(t, ok)
	assert.Len(t, hits, 1)
}

func TestDistinctKeysDoNotCollide(t *testing.T) {
	c := New(store.NewMemoryStore())

	c.Put("sync::q::10", someHits())

	_, ok := c.Get("async::q::10")
	assert.False(t, ok, "mode is part of the key")
	_, ok = c.Get("sync::q::5")
	assert.False(t, ok, "result count is part of the key")
	_, ok = c.Get("sync::Q::10")
	assert.False(t, ok, "query text is part of the key verbatim")
}

func TestDateRolloverDiscardsEverything(t *testing.T) {
	c := New(store.NewMemoryStore())
	c.Now = fixedClock(time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC))

	c.Put("sync::q::10", someHits())
	_, ok := c.Get("sync::q::10")
	require.True(t, ok)

	c.Now = fixedClock(time.Date(2025, 6, 2, 0, 0, 1, 0, time.UTC))
	_, ok = c.Get("sync::q::10")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestStateSurvivesRestart(t *testing.T) {
	st := store.NewMemoryStore()

	c1 := New(st)
	c1.Put("sync::q::10", someHits())

	c2 := New(st)
	hits, ok := c2.Get("sync::q::10")
	require.True(t, ok)
	assert.Equal(t, someHits(), hits)
}

func TestStaleStateIsDiscardedOnFirstAccess(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(State{
		Date: "2020-01-01",
		Data: map[string][]model.SearchHit{"sync::old::10": someHits()},
	}))

	c := New(st)
	_, ok := c.Get("sync::old::10")
	assert.False(t, ok)
}

func TestPersistFailureKeepsServingFromMemory(t *testing.T) {
	st := store.NewMemoryStore()
	st.SaveErr = errors.New("disk full")

	c := New(st)
	c.Put("sync::q::10", someHits())

	hits, ok := c.Get("sync::q::10")
	assert.True(t, ok)
	assert.Len(t, hits, 2)
}

func TestCorruptStateStartsFresh(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save([]int{1, 2, 3}))

	c := New(st)
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("sync::q::10")
	assert.False(t, ok)
}
