// Package redis provides Redis client initialization with connection
// verification, plus a Redis-backed implementation of the widget data cache.
//
// Connect validates the connection URL, dials with exponential backoff, and
// pings before returning the client:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//	})
//
// Store adapts the client to cache.Store, JSON-encoding payloads and letting
// Redis enforce the retention window through key expiry. Use it in place of
// the in-memory store when several dashboard processes should share one
// cache:
//
//	store := redis.NewStore(client)
//	widget := cache.NewFetcher(store, "stats:event:summary", producer, fallback)
//
// Both redis:// and rediss:// URL schemes are supported.
package redis
