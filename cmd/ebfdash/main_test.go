package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebfdash/studentapi/core/cache"
	"github.com/ebfdash/studentapi/core/client"
)

func newNullServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/token" {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"access_token": "access-1",
				"token_type":   "bearer",
				"expires_in":   3600,
			}))
			return
		}
		// A backend with no data yet answers JSON null.
		require.NoError(t, json.NewEncoder(w).Encode(nil))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPrintDashboard_NullSummary(t *testing.T) {
	t.Parallel()

	srv := newNullServer(t)
	c := client.New(srv.URL, client.WithoutStoredSession())
	ctx := context.Background()
	_, err := c.Login(ctx, client.Credentials{Username: "staff", Password: "secret"})
	require.NoError(t, err)

	// A byte-oriented cache backend can hand back a stored JSON null,
	// which decodes to a nil summary with no error.
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "event:summary", json.RawMessage("null")))

	err = printDashboard(ctx, c, store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event summary unavailable")
}
