package cache

import (
	"sync"
	"time"
)

// Memo is a small in-memory cache for lightweight ad hoc memoization.
// It holds a fixed maximum number of entries with a per-entry TTL and
// evicts the oldest entry when full. It is deliberately simpler than the
// persisted AnalysisCache: no invalidation by document id, no
// durability, just a bounded shortcut for repeated cheap lookups.
type Memo struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	entries    map[string]memoEntry
	order      []string // insertion order for eviction
	now        func() time.Time
}

type memoEntry struct {
	value     any
	expiresAt time.Time
}

// NewMemo creates a Memo holding at most maxEntries values, each valid
// for ttl after insertion.
func NewMemo(maxEntries int, ttl time.Duration) *Memo {
	if maxEntries <= 0 {
		maxEntries = 128
	}
	return &Memo{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]memoEntry),
		now:        time.Now,
	}
}

// Get returns the value for key if present and not expired.
func (m *Memo) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && m.now().After(entry.expiresAt) {
		m.remove(key)
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key, evicting the oldest entry when the cache
// is full.
func (m *Memo) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		for len(m.entries) >= m.maxEntries && len(m.order) > 0 {
			m.remove(m.order[0])
		}
		m.order = append(m.order, key)
	}
	m.entries[key] = memoEntry{
		value:     value,
		expiresAt: m.now().Add(m.ttl),
	}
}

// Len returns the number of live entries.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// remove deletes key under the held lock.
func (m *Memo) remove(key string) {
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
