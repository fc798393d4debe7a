package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memEntry struct {
	payload []byte
	expires time.Time
}

// Memory keeps JSON-encoded entries in process so callers never share slices
// with the cache.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	entries  map[string]memEntry
	versions map[string]int64
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, entries: map[string]memEntry{}, versions: map[string]int64{}}
}

func (m *Memory) Get(_ context.Context, table string, dst any) (bool, error) {
	m.mu.Lock()
	e, ok := m.entries[key(table)]
	if ok && m.ttl > 0 && m.now().After(e.expires) {
		delete(m.entries, key(table))
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.payload, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Version(_ context.Context, table string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[table], nil
}

func (m *Memory) Set(_ context.Context, table string, version int64, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.versions[table] != version {
		return nil
	}
	m.entries[key(table)] = memEntry{payload: payload, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, tables ...string) error {
	m.mu.Lock()
	for _, t := range tables {
		delete(m.entries, key(t))
		m.versions[t]++
	}
	m.mu.Unlock()
	return nil
}
