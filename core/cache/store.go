package cache

import (
	"context"
	"time"
)

// DefaultTTL is the retention window after which a cached dashboard payload
// is treated as stale and discarded.
const DefaultTTL = 12 * time.Hour

// Store is a TTL key-value store for memoized API responses. Entries older
// than the store's retention window are treated as absent.
//
// Implementations must be safe for concurrent use; last writer to a key wins.
type Store interface {
	// Get returns the payload for key, or found=false when the key is
	// missing or its entry has outlived the retention window.
	Get(ctx context.Context, key string) (value any, found bool, err error)
	// Set unconditionally overwrites the entry for key.
	Set(ctx context.Context, key string, value any) error
	// Delete drops one entry.
	Delete(ctx context.Context, key string) error
	// Clear drops all entries. Used for a manual "refresh everything" action.
	Clear(ctx context.Context) error
}
