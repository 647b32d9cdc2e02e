package quota

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/veracity/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestConsumeCountsUp(t *testing.T) {
	m := New(5, store.NewMemoryStore())

	for i := 0; i < 3; i++ {
		require.True(t, m.CanConsume(1))
		m.Consume(1)
	}

	_, used, limit := m.Snapshot()
	assert.Equal(t, 3, used)
	assert.Equal(t, 5, limit)
}

func TestLimitBoundaryIsInclusive(t *testing.T) {
	m := New(2, store.NewMemoryStore())

	m.Consume(1)
	assert.True(t, m.CanConsume(1), "second call still fits")
	m.Consume(1)
	assert.False(t, m.CanConsume(1), "third call exceeds the budget")
}

func TestZeroLimitMeansUnlimited(t *testing.T) {
	m := New(0, store.NewMemoryStore())

	for i := 0; i < 500; i++ {
		require.True(t, m.CanConsume(1))
		m.Consume(1)
	}
	assert.True(t, m.CanConsume(1))

	// Nothing is tracked when enforcement is off.
	_, used, limit := m.Snapshot()
	assert.Equal(t, 0, used)
	assert.Equal(t, 0, limit)
}

func TestDateRolloverResetsCount(t *testing.T) {
	m := New(2, store.NewMemoryStore())
	m.Now = fixedClock(time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC))

	m.Consume(1)
	m.Consume(1)
	assert.False(t, m.CanConsume(1))

	// Ten minutes later it is June 2nd and the budget is fresh.
	m.Now = fixedClock(time.Date(2025, 6, 2, 0, 0, 1, 0, time.UTC))
	assert.True(t, m.CanConsume(1))

	date, used, _ := m.Snapshot()
	assert.Equal(t, "2025-06-02", date)
	assert.Equal(t, 0, used)
}

func TestRolloverUsesUTCNotLocalTime(t *testing.T) {
	m := New(10, store.NewMemoryStore())

	// 09:30 on June 2nd in UTC+10 is still 23:30 June 1st in UTC, and the
	// quota day follows UTC.
	loc := time.FixedZone("UTC+10", 10*3600)
	m.Now = fixedClock(time.Date(2025, 6, 2, 9, 30, 0, 0, loc))

	date, _, _ := m.Snapshot()
	assert.Equal(t, "2025-06-01", date)
}

func TestStateSurvivesRestart(t *testing.T) {
	st := store.NewMemoryStore()

	m1 := New(10, st)
	m1.Consume(4)

	m2 := New(10, st)
	_, used, _ := m2.Snapshot()
	assert.Equal(t, 4, used)
}

func TestPersistFailureKeepsCounting(t *testing.T) {
	st := store.NewMemoryStore()
	st.SaveErr = errors.New("disk full")

	m := New(3, st)
	m.Consume(1)
	m.Consume(1)
	m.Consume(1)

	// The in-memory count is still authoritative.
	assert.False(t, m.CanConsume(1))
}

func TestCorruptStateStartsFresh(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save("definitely not a quota document"))

	m := New(5, st)
	_, used, _ := m.Snapshot()
	assert.Equal(t, 0, used)
	assert.True(t, m.CanConsume(5))
}

func TestStaleStoredDateIsDiscarded(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(State{Date: "2020-01-01", Used: 99}))

	m := New(10, st)
	assert.True(t, m.CanConsume(1), "yesterday's count must not burn today's budget")

	_, used, _ := m.Snapshot()
	assert.Equal(t, 0, used)
}
