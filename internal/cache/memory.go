package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process Store bounded by entry count. The oldest entry is
// evicted first.
type Memory struct {
	mu    sync.Mutex
	items map[string]entry
	order []string
	limit int
	ttl   time.Duration
	now   func() time.Time
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithMemoryTTL expires entries after ttl. Zero keeps them until evicted.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) {
		m.ttl = ttl
	}
}

// NewMemory holds at most limit entries; limit <= 0 means 256.
func NewMemory(limit int, opts ...MemoryOption) *Memory {
	if limit <= 0 {
		limit = 256
	}
	m := &Memory{items: map[string]entry{}, limit: limit, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.remove(key)
		return nil, ErrMiss
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores a copy of value.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := entry{value: append([]byte(nil), value...)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	if _, ok := m.items[key]; ok {
		m.remove(key)
	}
	for len(m.order) >= m.limit {
		m.remove(m.order[0])
	}
	m.items[key] = e
	m.order = append(m.order, key)
	return nil
}

// Len reports the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) remove(key string) {
	delete(m.items, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
