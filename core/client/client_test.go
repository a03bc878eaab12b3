package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebfdash/studentapi/core/client"
	"github.com/ebfdash/studentapi/core/session"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func writeToken(t *testing.T, w http.ResponseWriter, access, refresh string, expiresIn int) {
	t.Helper()
	body := map[string]any{
		"access_token": access,
		"token_type":   "bearer",
	}
	if refresh != "" {
		body["refresh_token"] = refresh
	}
	if expiresIn > 0 {
		body["expires_in"] = expiresIn
	}
	writeJSON(t, w, http.StatusOK, body)
}

func writeAPIError(t *testing.T, w http.ResponseWriter, status int, code, message string) {
	t.Helper()
	writeJSON(t, w, status, map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials establish an authenticated persisted session", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/token", r.URL.Path)
			require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			require.Empty(t, r.Header.Get("Authorization"), "login must not carry a bearer token")

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "password", r.PostForm.Get("grant_type"))
			assert.Equal(t, "staff", r.PostForm.Get("username"))
			assert.Equal(t, "secret", r.PostForm.Get("password"))

			writeToken(t, w, "access-1", "refresh-1", 3600)
		}))
		defer srv.Close()

		storage := session.NewMemoryStorage()
		c := client.New(srv.URL,
			client.WithoutStoredSession(),
			client.WithStorage(storage),
			client.WithClock(func() time.Time { return now }),
		)

		tr, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "access-1", tr.AccessToken)

		assert.True(t, c.IsAuthenticated())
		require.NotNil(t, c.CurrentUser())
		assert.Equal(t, "staff", c.CurrentUser().Username)

		stored, err := storage.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "access-1", stored.AccessToken)
		assert.Equal(t, "refresh-1", stored.RefreshToken)
		assert.Equal(t, "staff", stored.User.Username)
		assert.True(t, stored.ExpiresAt.Equal(now.Add(time.Hour)))
	})

	t.Run("missing expires_in defaults to one hour", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeToken(t, w, "access-1", "", 0)
		}))
		defer srv.Close()

		storage := session.NewMemoryStorage()
		c := client.New(srv.URL,
			client.WithoutStoredSession(),
			client.WithStorage(storage),
			client.WithClock(func() time.Time { return now }),
		)

		_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
		require.NoError(t, err)

		stored, err := storage.Load(context.Background())
		require.NoError(t, err)
		assert.True(t, stored.ExpiresAt.Equal(now.Add(time.Hour)))
	})

	t.Run("invalid credentials leave the session fully cleared", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeAPIError(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "wrong username or password")
		}))
		defer srv.Close()

		storage := session.NewMemoryStorage()
		c := client.New(srv.URL, client.WithoutStoredSession(), client.WithStorage(storage))

		_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "nope"})
		require.Error(t, err)

		var apiErr *client.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)

		assert.False(t, c.IsAuthenticated())
		assert.Empty(t, c.AccessToken())
		_, err = storage.Load(context.Background())
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestClient_Logout(t *testing.T) {
	t.Parallel()

	var serverHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/token" {
			writeToken(t, w, "access-1", "refresh-1", 3600)
			return
		}
		serverHits.Add(1)
	}))
	defer srv.Close()

	storage := session.NewMemoryStorage()
	c := client.New(srv.URL, client.WithoutStoredSession(), client.WithStorage(storage))

	_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
	require.NoError(t, err)

	hitsAfterLogin := serverHits.Load()
	c.Logout(context.Background())

	assert.False(t, c.IsAuthenticated())
	assert.Nil(t, c.CurrentUser())
	assert.Equal(t, hitsAfterLogin, serverHits.Load(), "logout is local-only and never contacts the server")

	_, err = storage.Load(context.Background())
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestClient_ProtectedCallWithoutSession(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithoutStoredSession())

	_, err := c.EventSummary(context.Background())
	var apiErr *client.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, client.CodeNotAuthenticated, apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Zero(t, hits.Load(), "must fail fast before any network call")
}

func TestClient_ProactiveRefresh(t *testing.T) {
	t.Parallel()

	t.Run("expiry four minutes away triggers exactly one refresh before the domain request", func(t *testing.T) {
		t.Parallel()

		var refreshCalls, domainCalls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/token":
				require.NoError(t, r.ParseForm())
				if r.PostForm.Get("grant_type") == "refresh_token" {
					refreshCalls.Add(1)
					assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))
					writeToken(t, w, "access-2", "refresh-2", 3600)
					return
				}
				writeToken(t, w, "access-1", "refresh-1", 240)
			case "/stats/event/summary":
				domainCalls.Add(1)
				assert.Equal(t, "Bearer access-2", r.Header.Get("Authorization"),
					"domain request must carry the refreshed token")
				writeJSON(t, w, http.StatusOK, map[string]any{"event_name": "EBF"})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		c := client.New(srv.URL, client.WithoutStoredSession())

		_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
		require.NoError(t, err)

		summary, err := c.EventSummary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "EBF", summary.EventName)
		assert.Equal(t, int32(1), refreshCalls.Load())
		assert.Equal(t, int32(1), domainCalls.Load())
	})

	t.Run("proactive refresh failure is swallowed and the still-valid token serves", func(t *testing.T) {
		t.Parallel()

		var domainCalls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/token":
				require.NoError(t, r.ParseForm())
				if r.PostForm.Get("grant_type") == "refresh_token" {
					writeAPIError(t, w, http.StatusUnauthorized, "INVALID_GRANT", "refresh token revoked")
					return
				}
				writeToken(t, w, "access-1", "refresh-1", 240)
			case "/stats/event/summary":
				domainCalls.Add(1)
				if r.Header.Get("Authorization") != "Bearer access-1" {
					writeAPIError(t, w, http.StatusUnauthorized, "NOT_AUTHENTICATED", "missing bearer token")
					return
				}
				writeJSON(t, w, http.StatusOK, map[string]any{"event_name": "EBF"})
			}
		}))
		defer srv.Close()

		c := client.New(srv.URL, client.WithoutStoredSession())

		_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
		require.NoError(t, err)

		// The refresh token proved dead, but the access token has four
		// minutes of validity left and must keep serving.
		summary, err := c.EventSummary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "EBF", summary.EventName)
		assert.Equal(t, int32(1), domainCalls.Load())
		assert.Equal(t, "access-1", c.AccessToken())
		assert.True(t, c.IsAuthenticated())

		// Only the refresh token was dropped.
		var apiErr *client.Error
		require.ErrorAs(t, c.RefreshToken(context.Background()), &apiErr)
		assert.Equal(t, client.CodeNoRefreshToken, apiErr.Code)
	})
}

func TestClient_SingleFlightRefresh(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("grant_type") == "refresh_token" {
			refreshCalls.Add(1)
			<-release
			writeToken(t, w, "access-2", "refresh-2", 3600)
			return
		}
		writeToken(t, w, "access-1", "refresh-1", 3600)
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithoutStoredSession())

	_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.RefreshToken(context.Background())
		}(i)
	}

	// Let every caller reach the in-flight refresh before it settles.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), refreshCalls.Load(), "concurrent callers must share one refresh request")
	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, "access-2", c.AccessToken())
}

func TestClient_RetryOn401(t *testing.T) {
	t.Parallel()

	t.Run("successful retry after refresh returns the retried response", func(t *testing.T) {
		t.Parallel()

		var domainCalls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/token":
				require.NoError(t, r.ParseForm())
				if r.PostForm.Get("grant_type") == "refresh_token" {
					writeToken(t, w, "access-2", "", 3600)
					return
				}
				writeToken(t, w, "access-1", "refresh-1", 3600)
			case "/stats/event/summary":
				switch domainCalls.Add(1) {
				case 1:
					assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
					writeAPIError(t, w, http.StatusUnauthorized, "TOKEN_EXPIRED", "token expired")
				default:
					assert.Equal(t, "Bearer access-2", r.Header.Get("Authorization"),
						"retry must carry the refreshed token")
					writeJSON(t, w, http.StatusOK, map[string]any{"event_name": "EBF", "total_days": 7})
				}
			}
		}))
		defer srv.Close()

		c := client.New(srv.URL, client.WithoutStoredSession())

		_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
		require.NoError(t, err)

		summary, err := c.EventSummary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, summary.TotalDays)
		assert.Equal(t, int32(2), domainCalls.Load())
		assert.True(t, c.IsAuthenticated())
	})

	t.Run("retry that also 401s is not retried again and clears the session", func(t *testing.T) {
		t.Parallel()

		var domainCalls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/token":
				require.NoError(t, r.ParseForm())
				if r.PostForm.Get("grant_type") == "refresh_token" {
					writeToken(t, w, "access-2", "", 3600)
					return
				}
				writeToken(t, w, "access-1", "refresh-1", 3600)
			case "/stats/event/summary":
				domainCalls.Add(1)
				writeAPIError(t, w, http.StatusUnauthorized, "TOKEN_REVOKED", "token revoked")
			}
		}))
		defer srv.Close()

		storage := session.NewMemoryStorage()
		c := client.New(srv.URL, client.WithoutStoredSession(), client.WithStorage(storage))

		_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
		require.NoError(t, err)

		_, err = c.EventSummary(context.Background())
		var apiErr *client.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "TOKEN_REVOKED", apiErr.Code)

		assert.Equal(t, int32(2), domainCalls.Load(), "exactly one retry, never a second")
		assert.False(t, c.IsAuthenticated())
	})

	t.Run("unrecoverable 401 clears session and durable storage", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/token":
				require.NoError(t, r.ParseForm())
				if r.PostForm.Get("grant_type") == "refresh_token" {
					writeAPIError(t, w, http.StatusUnauthorized, "INVALID_GRANT", "refresh token revoked")
					return
				}
				writeToken(t, w, "access-1", "refresh-1", 3600)
			case "/stats/event/summary":
				writeAPIError(t, w, http.StatusUnauthorized, "TOKEN_REVOKED", "token revoked")
			}
		}))
		defer srv.Close()

		storage := session.NewMemoryStorage()
		c := client.New(srv.URL, client.WithoutStoredSession(), client.WithStorage(storage))

		_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
		require.NoError(t, err)

		_, err = c.EventSummary(context.Background())
		require.Error(t, err)

		assert.False(t, c.IsAuthenticated())
		_, err = storage.Load(context.Background())
		assert.ErrorIs(t, err, session.ErrNotFound, "durable storage must hold no session keys")
	})
}

func TestClient_RefreshWithoutToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeToken(t, w, "access-1", "", 3600) // no refresh token issued
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithoutStoredSession())

	_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
	require.NoError(t, err)

	err = c.RefreshToken(context.Background())
	var apiErr *client.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, client.CodeNoRefreshToken, apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_RefreshRotation(t *testing.T) {
	t.Parallel()

	t.Run("refresh token replaced only when the server returns one", func(t *testing.T) {
		t.Parallel()

		var refreshCalls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			if r.PostForm.Get("grant_type") == "refresh_token" {
				switch refreshCalls.Add(1) {
				case 1:
					assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))
					writeToken(t, w, "access-2", "", 3600) // keeps old refresh token
				default:
					assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"),
						"old refresh token must survive a rotation-less refresh")
					writeToken(t, w, "access-3", "refresh-2", 3600)
				}
				return
			}
			writeToken(t, w, "access-1", "refresh-1", 3600)
		}))
		defer srv.Close()

		storage := session.NewMemoryStorage()
		c := client.New(srv.URL, client.WithoutStoredSession(), client.WithStorage(storage))

		_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
		require.NoError(t, err)

		require.NoError(t, c.RefreshToken(context.Background()))
		require.NoError(t, c.RefreshToken(context.Background()))

		stored, err := storage.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "access-3", stored.AccessToken)
		assert.Equal(t, "refresh-2", stored.RefreshToken)
	})
}

func TestClient_SessionHydration(t *testing.T) {
	t.Parallel()

	t.Run("hydrates a stored valid session", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage()
		sess := session.Session{
			AccessToken:  "stored-access",
			RefreshToken: "stored-refresh",
			User:         &session.User{Username: "staff"},
			ExpiresAt:    time.Now().Add(time.Hour),
		}
		require.NoError(t, storage.Save(context.Background(), sess))

		c := client.New("http://localhost:1", client.WithStorage(storage))

		assert.True(t, c.IsAuthenticated())
		assert.Equal(t, "stored-access", c.AccessToken())
		require.NotNil(t, c.CurrentUser())
		assert.Equal(t, "staff", c.CurrentUser().Username)
	})

	t.Run("discards an expired stored session with no refresh token", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage()
		sess := session.Session{
			AccessToken: "stored-access",
			User:        &session.User{Username: "staff"},
			ExpiresAt:   time.Now().Add(-time.Hour),
		}
		require.NoError(t, storage.Save(context.Background(), sess))

		c := client.New("http://localhost:1", client.WithStorage(storage))

		assert.False(t, c.IsAuthenticated())
		assert.Empty(t, c.AccessToken())
		_, err := storage.Load(context.Background())
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("keeps an expired stored session that can still refresh", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage()
		sess := session.Session{
			AccessToken:  "stored-access",
			RefreshToken: "stored-refresh",
			User:         &session.User{Username: "staff"},
			ExpiresAt:    time.Now().Add(-time.Hour),
		}
		require.NoError(t, storage.Save(context.Background(), sess))

		c := client.New("http://localhost:1", client.WithStorage(storage))

		// Expired, so not authenticated, but the refresh token is kept.
		assert.False(t, c.IsAuthenticated())
		assert.Equal(t, "stored-access", c.AccessToken())
	})

	t.Run("hydration disabled starts unauthenticated", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage()
		require.NoError(t, storage.Save(context.Background(), session.Session{
			AccessToken: "stored-access",
			User:        &session.User{Username: "staff"},
			ExpiresAt:   time.Now().Add(time.Hour),
		}))

		c := client.New("http://localhost:1", client.WithStorage(storage), client.WithoutStoredSession())

		assert.False(t, c.IsAuthenticated())
	})
}

func TestClient_ErrorContract(t *testing.T) {
	t.Parallel()

	login := func(t *testing.T, c *client.Client) {
		t.Helper()
		_, err := c.Login(context.Background(), client.Credentials{Username: "staff", Password: "secret"})
		require.NoError(t, err)
	}

	t.Run("server error codes pass through verbatim", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/token" {
				writeToken(t, w, "access-1", "", 3600)
				return
			}
			writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
				"error": map[string]any{
					"code":    "VALIDATION_ERROR",
					"message": "age out of range",
					"details": map[string]any{"field": "age", "value": 99},
				},
			})
		}))
		defer srv.Close()

		c := client.New(srv.URL, client.WithoutStoredSession())
		login(t, c)

		_, err := c.RegisterStudent(context.Background(), client.CreateStudentRequest{Name: "Ana", Age: 99})
		var apiErr *client.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
		assert.Equal(t, "age out of range", apiErr.Message)
		assert.Equal(t, "age", apiErr.Details["field"])
	})

	t.Run("unparseable error body becomes UNKNOWN_ERROR with the HTTP status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/token" {
				writeToken(t, w, "access-1", "", 3600)
				return
			}
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, "<html>upstream exploded</html>")
		}))
		defer srv.Close()

		c := client.New(srv.URL, client.WithoutStoredSession())
		login(t, c)

		_, err := c.Classes(context.Background())
		var apiErr *client.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, client.CodeUnknownError, apiErr.Code)
	})

	t.Run("transport failure becomes NETWORK_ERROR", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeToken(t, w, "access-1", "", 3600)
		}))
		c := client.New(srv.URL, client.WithoutStoredSession())
		login(t, c)
		srv.Close() // subsequent calls hit a dead server

		_, err := c.Classes(context.Background())
		var apiErr *client.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, client.CodeNetworkError, apiErr.Code)
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	})

	t.Run("204 yields an empty success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/token" {
				writeToken(t, w, "access-1", "", 3600)
				return
			}
			require.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := client.New(srv.URL, client.WithoutStoredSession())
		login(t, c)

		assert.NoError(t, c.DeleteStudent(context.Background(), "s1"))
	})
}
