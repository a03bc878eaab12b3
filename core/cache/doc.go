// Package cache provides the time-boxed response cache that shields the EBF
// backend from redundant polling by independent dashboard widgets.
//
// Two pieces work together. Store is a TTL key-value store (12 hour retention
// by default) with in-memory and Redis-backed implementations; it is injected
// into consumers rather than held as package state so tests get isolated
// instances. Fetcher is a generic fetch-with-cache binding: each widget pairs
// a cache key with a producer function and the binding handles cache consult,
// populate, loading state, and error capture.
//
//	store := cache.NewMemoryStore()
//	widget := cache.NewFetcher(store, "stats:event:summary",
//		func(ctx context.Context) (*client.EventSummary, error) {
//			return api.EventSummary(ctx)
//		},
//		nil,
//	)
//
//	summary, err := widget.Load(ctx, false) // cache hit skips the network
//	summary, err = widget.Load(ctx, true)   // force refresh always fetches
//
// Fetchers are independent; two widgets missing on the same key concurrently
// will each invoke their producer. Opt into request coalescing by sharing a
// singleflight group via WithCoalescing when that duplication matters.
package cache
