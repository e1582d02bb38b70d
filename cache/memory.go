package cache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

type MemoryStore struct {
	entries *xsync.MapOf[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: xsync.NewMapOf[memoryEntry](), now: time.Now}
}

func (m *MemoryStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	e, ok := m.entries.Load(string(key))
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.entries.Delete(string(key))
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries.Store(string(key), e)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, keys ...Key) error {
	for _, k := range keys {
		m.entries.Delete(string(k))
	}
	return nil
}

func (m *MemoryStore) Len() int {
	n := 0
	m.entries.Range(func(string, memoryEntry) bool {
		n++
		return true
	})
	return n
}
