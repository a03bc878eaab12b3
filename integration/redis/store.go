package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ebfdash/studentapi/core/cache"
)

// Store implements cache.Store on Redis. Payloads are JSON-encoded and the
// retention window is enforced server-side through key expiry, so entries
// age out even if no client ever reads them again.
//
// Get hands back raw JSON; the cache fetcher decodes it into the caller's
// payload type.
type Store struct {
	client *goredis.Client
	ttl    time.Duration
	prefix string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreTTL overrides the retention window.
func WithStoreTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithKeyPrefix namespaces cache keys; defaults to "widget:".
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewStore creates a Redis-backed cache store with a 12 hour retention
// window unless overridden.
func NewStore(client *goredis.Client, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		ttl:    cache.DefaultTTL,
		prefix: "widget:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (any, bool, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis cache get %q: %w", key, err)
	}
	return json.RawMessage(b), true, nil
}

func (s *Store) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis cache encode %q: %w", key, err)
	}
	if err := s.client.Set(ctx, s.prefix+key, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis cache set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis cache delete %q: %w", key, err)
	}
	return nil
}

// Clear drops every entry under the store's prefix using SCAN so the
// keyspace is never blocked by a KEYS call.
func (s *Store) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis cache clear: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis cache clear: %w", err)
	}
	return nil
}
