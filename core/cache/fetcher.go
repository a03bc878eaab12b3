package cache

import (
	"context"
	"encoding/json"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Producer fetches a fresh payload from the backend.
type Producer[T any] func(ctx context.Context) (T, error)

// Fetcher binds one cache key to a producer so a dashboard widget can request
// data without implementing its own staleness policy. Each widget owns its
// fetcher; the store behind them is shared.
//
// The zero value is not usable; construct with NewFetcher.
type Fetcher[T any] struct {
	store    Store
	key      string
	producer Producer[T]

	// coalesce, when set, deduplicates concurrent producer calls for the
	// same key across fetchers sharing the group.
	coalesce *singleflight.Group

	mu      sync.RWMutex
	data    T
	loading bool
	err     error
}

// FetcherOption configures a Fetcher.
type FetcherOption[T any] func(*Fetcher[T])

// WithCoalescing shares a singleflight group between fetchers so concurrent
// cache misses for the same key invoke the producer once. Off by default:
// independent fetchers otherwise fetch independently.
func WithCoalescing[T any](group *singleflight.Group) FetcherOption[T] {
	return func(f *Fetcher[T]) {
		f.coalesce = group
	}
}

// NewFetcher creates a fetch-with-cache binding. fallback is adopted as the
// initial value and remains in place when a fetch fails.
func NewFetcher[T any](store Store, key string, producer Producer[T], fallback T, opts ...FetcherOption[T]) *Fetcher[T] {
	f := &Fetcher[T]{
		store:    store,
		key:      key,
		producer: producer,
		data:     fallback,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load resolves the binding's value. Unless force is set, a fresh cache entry
// is adopted without invoking the producer or entering the loading state. On
// a miss or forced refresh the producer runs; its result is stored and
// adopted on success, while on failure the error is recorded and the
// previously adopted value stays in place.
func (f *Fetcher[T]) Load(ctx context.Context, force bool) (T, error) {
	if !force {
		if v, found, err := f.store.Get(ctx, f.key); err == nil && found {
			if t, ok := coerce[T](v); ok {
				f.adopt(t, nil)
				return t, nil
			}
			// Payload of an unexpected shape is as good as a miss.
			_ = f.store.Delete(ctx, f.key)
		}
	}

	f.setLoading(true)
	defer f.setLoading(false)

	t, err := f.produce(ctx)
	if err != nil {
		f.setErr(err)
		return f.Data(), err
	}

	if err := f.store.Set(ctx, f.key, t); err != nil {
		// A write failure only loses memoization, not the fetched data.
		f.adopt(t, nil)
		return t, nil
	}
	f.adopt(t, nil)
	return t, nil
}

func (f *Fetcher[T]) produce(ctx context.Context) (T, error) {
	if f.coalesce == nil {
		return f.producer(ctx)
	}

	v, err, _ := f.coalesce.Do(f.key, func() (any, error) {
		return f.producer(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Data returns the currently adopted value.
func (f *Fetcher[T]) Data() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data
}

// IsLoading reports whether a producer call is in flight.
func (f *Fetcher[T]) IsLoading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

// Err returns the error from the most recent failed load, or nil.
func (f *Fetcher[T]) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

// Key returns the cache key this fetcher is bound to.
func (f *Fetcher[T]) Key() string {
	return f.key
}

func (f *Fetcher[T]) adopt(t T, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = t
	f.err = err
}

func (f *Fetcher[T]) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *Fetcher[T]) setLoading(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = v
	if v {
		f.err = nil
	}
}

// coerce converts a cached payload back to T. In-memory stores hand back the
// original value; byte-oriented stores (Redis) hand back raw JSON which is
// decoded into T.
func coerce[T any](v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}

	var raw []byte
	switch b := v.(type) {
	case json.RawMessage:
		raw = b
	case []byte:
		raw = b
	default:
		var zero T
		return zero, false
	}

	var t T
	if err := json.Unmarshal(raw, &t); err != nil {
		var zero T
		return zero, false
	}
	return t, true
}
