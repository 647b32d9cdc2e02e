package quota

import (
	"log"
	"sync"
	"time"

	"github.com/agenthands/veracity/internal/store"
)

// State is the persisted quota document: the UTC day it belongs to and how
// many search calls were consumed on that day.
type State struct {
	Date string `json:"date"`
	Used int    `json:"used"`
}

// Manager enforces a daily budget of outbound search calls. The count resets
// implicitly when the UTC date changes; no background timer is involved.
//
// CanConsume and Consume are not atomic as a pair: concurrent callers that
// both pass the check can push the count slightly past the limit, and
// separate processes sharing a store can race through last-writer-wins saves.
// The budget protects billing, not correctness, so soft enforcement is enough.
type Manager struct {
	limit int
	store store.Store

	mu    sync.Mutex
	state State

	// Now supplies the clock the current UTC date is derived from. Tests
	// override it to exercise date rollover.
	Now func() time.Time
}

// New loads any persisted quota state and returns a manager enforcing limit
// calls per UTC day. A limit <= 0 disables enforcement entirely.
func New(limit int, st store.Store) *Manager {
	m := &Manager{
		limit: limit,
		store: st,
		Now:   time.Now,
	}
	var s State
	ok, err := st.Load(&s)
	if err != nil {
		log.Printf("Warning: failed to load quota state: %v", err)
	}
	if ok {
		m.state = s
	}
	return m
}

func (m *Manager) today() string {
	return m.Now().UTC().Format("2006-01-02")
}

// refresh resets the count when the stored date is stale. Callers hold mu.
// The reset itself is not persisted until the next Consume.
func (m *Manager) refresh() {
	if today := m.today(); m.state.Date != today {
		m.state = State{Date: today}
	}
}

// CanConsume reports whether n more calls fit in today's budget.
func (m *Manager) CanConsume(n int) bool {
	if m.limit <= 0 {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh()
	return m.state.Used+n <= m.limit
}

// Consume records n calls against today's budget and persists the new count.
// A failed save is logged and ignored: the in-memory count stays
// authoritative, and losing the write only risks under-counting after a
// restart.
func (m *Manager) Consume(n int) {
	if m.limit <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh()
	m.state.Used += n
	if err := m.store.Save(m.state); err != nil {
		log.Printf("Warning: failed to persist quota state: %v", err)
	}
}

// Snapshot returns the current UTC day, the calls consumed on it and the
// configured limit (0 or negative meaning unlimited).
func (m *Manager) Snapshot() (date string, used, limit int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh()
	return m.state.Date, m.state.Used, m.limit
}
