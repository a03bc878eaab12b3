package cache

import (
	"context"
	"sync"
	"time"
)

// entry pairs a payload with its capture time.
type entry struct {
	value      any
	capturedAt time.Time
}

// MemoryStore implements Store with an in-process map. Expired entries are
// evicted lazily on lookup rather than by a background sweeper; a dashboard
// touches every key it cares about, so stale entries do not accumulate.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	ttl time.Duration
	now func() time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithTTL overrides the retention window.
func WithTTL(ttl time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if ttl > 0 {
			ms.ttl = ttl
		}
	}
}

// WithClock injects the time source. Tests use this to cross the retention
// boundary without sleeping.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// NewMemoryStore creates an in-memory store with a 12 hour retention window
// unless overridden.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

func (ms *MemoryStore) Get(ctx context.Context, key string) (any, bool, error) {
	ms.mu.RLock()
	e, ok := ms.entries[key]
	ms.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if ms.now().Sub(e.capturedAt) >= ms.ttl {
		ms.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// overwritten the entry with a fresh payload meanwhile.
		if cur, ok := ms.entries[key]; ok && cur.capturedAt.Equal(e.capturedAt) {
			delete(ms.entries, key)
		}
		ms.mu.Unlock()
		return nil, false, nil
	}

	return e.value, true, nil
}

func (ms *MemoryStore) Set(ctx context.Context, key string, value any) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries[key] = entry{value: value, capturedAt: ms.now()}
	return nil
}

func (ms *MemoryStore) Delete(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.entries, key)
	return nil
}

func (ms *MemoryStore) Clear(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries = make(map[string]entry)
	return nil
}

// Len returns the number of live entries, counting ones not yet evicted.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.entries)
}
