package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ebfdash/studentapi/core/session"
	"github.com/ebfdash/studentapi/pkg/logger"
)

// DefaultBaseURL is the production EBF backend.
const DefaultBaseURL = "https://ebf-api.onrender.com"

// Client is the authenticated API client for the EBF backend. It owns the
// bearer-token lifecycle: login, proactive refresh before expiry,
// single-flight refresh coordination, retry-once on 401, and mirroring the
// session into durable storage so a new client instance can rehydrate it.
//
// All domain operations funnel through one authenticated-request primitive;
// they are safe for concurrent use from multiple goroutines.
type Client struct {
	baseURL        string
	defaultHeaders http.Header
	httpClient     *http.Client
	storage        session.Storage
	log            *slog.Logger
	now            func() time.Time
	hydrate        bool

	mu   sync.RWMutex
	sess session.Session

	// refreshGroup serializes token refreshes: concurrent callers await the
	// single in-flight refresh instead of issuing parallel grant requests.
	refreshGroup singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithStorage sets the durable session storage. Defaults to in-memory
// storage, which does not survive the process.
func WithStorage(s session.Storage) Option {
	return func(c *Client) {
		if s != nil {
			c.storage = s
		}
	}
}

// WithLogger sets the logger for internal operations. Defaults to discard.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock injects the time source used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDefaultHeaders merges headers sent with every request.
func WithDefaultHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, vs := range h {
			for _, v := range vs {
				c.defaultHeaders.Set(k, v)
			}
		}
	}
}

// WithoutStoredSession disables session hydration from storage at
// construction time.
func WithoutStoredSession() Option {
	return func(c *Client) {
		c.hydrate = false
	}
}

// New creates a client for the backend at baseURL (DefaultBaseURL when
// empty). Unless disabled via WithoutStoredSession, a previously persisted
// session is hydrated from storage so the client may start already
// authenticated.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		defaultHeaders: http.Header{"Content-Type": []string{"application/json"}},
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		storage:        session.NewMemoryStorage(),
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:            time.Now,
		hydrate:        true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.hydrate {
		c.loadStoredSession(context.Background())
	}
	return c
}

// Credentials are the password-grant inputs for Login. Scope, ClientID and
// ClientSecret may be blank.
type Credentials struct {
	Username     string
	Password     string
	Scope        string
	ClientID     string
	ClientSecret string
}

// TokenResponse is the OAuth2 token endpoint response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Login exchanges credentials for a bearer token via the password grant and
// stores the resulting session in memory and durable storage. On any failure
// the entire session is cleared before the error is returned, so no partial
// state survives a failed login.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)
	form.Set("scope", creds.Scope)
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)

	var tr TokenResponse
	if err := c.do(ctx, requestParams{
		method:   http.MethodPost,
		path:     "/auth/token",
		form:     form,
		headers:  http.Header{"Accept": []string{"application/json"}},
		skipAuth: true,
	}, &tr); err != nil {
		c.clearSession(ctx)
		return nil, err
	}

	sess := session.New(tr.AccessToken, tr.RefreshToken, &session.User{Username: creds.Username}, tr.ExpiresIn, c.now())
	c.setSession(ctx, sess)

	c.log.InfoContext(ctx, "logged in", slog.String("username", creds.Username), logger.Component("client"))
	return &tr, nil
}

// Logout clears the session locally, in memory and in durable storage. The
// server is never contacted.
func (c *Client) Logout(ctx context.Context) {
	c.clearSession(ctx)
	c.log.InfoContext(ctx, "logged out", logger.Component("client"))
}

// RefreshToken forces a token refresh. Most callers never need this; the
// request primitive refreshes transparently.
func (c *Client) RefreshToken(ctx context.Context) error {
	return c.refreshToken(ctx)
}

// refreshToken refreshes the access token, deduplicating concurrent attempts
// through the singleflight group: only one refresh request is ever in flight
// per client, and every waiting caller observes its outcome.
func (c *Client) refreshToken(ctx context.Context) error {
	c.mu.RLock()
	canRefresh := c.sess.CanRefresh()
	c.mu.RUnlock()

	if !canRefresh {
		return errNoRefreshToken()
	}

	_, err, _ := c.refreshGroup.Do("token-refresh", func() (any, error) {
		return nil, c.performRefresh(ctx)
	})
	return err
}

func (c *Client) performRefresh(ctx context.Context) error {
	c.mu.RLock()
	refresh := c.sess.RefreshToken
	c.mu.RUnlock()

	if refresh == "" {
		return errNoRefreshToken()
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refresh)

	var tr TokenResponse
	if err := c.do(ctx, requestParams{
		method:   http.MethodPost,
		path:     "/auth/token",
		form:     form,
		headers:  http.Header{"Accept": []string{"application/json"}},
		skipAuth: true,
	}, &tr); err != nil {
		c.log.WarnContext(ctx, "token refresh failed", logger.Error(err), logger.Component("client"))
		c.dropDeadRefreshToken(ctx)
		return errTokenRefreshFailed()
	}

	c.mu.Lock()
	c.sess.AccessToken = tr.AccessToken
	c.sess.ExpiresAt = session.Expiry(tr.ExpiresIn, c.now())
	if tr.RefreshToken != "" {
		c.sess.RefreshToken = tr.RefreshToken
	}
	sess := c.sess
	c.mu.Unlock()

	c.persist(ctx, sess)
	return nil
}

// IsAuthenticated reports whether the client holds a non-expired token.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess.IsAuthenticated(c.now())
}

// CurrentUser returns the resolved user for the session, or nil.
func (c *Client) CurrentUser() *session.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sess.User == nil {
		return nil
	}
	u := *c.sess.User
	return &u
}

// AccessToken returns the current bearer token, or empty.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess.AccessToken
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL switches the backend, useful for changing environments.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// SetDefaultHeaders merges headers into the defaults sent with every request.
func (c *Client) SetDefaultHeaders(h http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, vs := range h {
		for _, v := range vs {
			c.defaultHeaders.Set(k, v)
		}
	}
}

// setSession replaces the in-memory session and mirrors it to storage.
func (c *Client) setSession(ctx context.Context, sess session.Session) {
	c.mu.Lock()
	c.sess = sess
	c.mu.Unlock()
	c.persist(ctx, sess)
}

// dropDeadRefreshToken reacts to a rejected refresh grant. An access token
// that is still inside its lifetime keeps serving; only the refresh token has
// proven dead, so only it is dropped. An already expired session has nothing
// left worth keeping and is cleared entirely.
func (c *Client) dropDeadRefreshToken(ctx context.Context) {
	c.mu.Lock()
	if !c.sess.IsAuthenticated(c.now()) {
		c.mu.Unlock()
		c.clearSession(ctx)
		return
	}
	c.sess.RefreshToken = ""
	sess := c.sess
	c.mu.Unlock()
	c.persist(ctx, sess)
}

// clearSession nulls the in-memory session and erases durable storage.
// Storage failures are logged, not propagated: the in-memory clear is the
// part that must never fail.
func (c *Client) clearSession(ctx context.Context) {
	c.mu.Lock()
	c.sess = session.Session{}
	c.mu.Unlock()

	if err := c.storage.Clear(ctx); err != nil {
		c.log.WarnContext(ctx, "failed to clear stored session", logger.Error(err), logger.Component("client"))
	}
}

func (c *Client) persist(ctx context.Context, sess session.Session) {
	if err := c.storage.Save(ctx, sess); err != nil {
		c.log.WarnContext(ctx, "failed to persist session", logger.Error(err), logger.Component("client"))
	}
}

// loadStoredSession hydrates a previously persisted session. Missing data is
// ignored; corrupt data is cleared; an already expired session with no
// refresh token is discarded since nothing can revive it.
func (c *Client) loadStoredSession(ctx context.Context) {
	sess, err := c.storage.Load(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			c.log.WarnContext(ctx, "failed to load stored session", logger.Error(err), logger.Component("client"))
			c.clearSession(ctx)
		}
		return
	}

	if sess.IsExpired(c.now()) && !sess.CanRefresh() {
		c.clearSession(ctx)
		return
	}

	c.mu.Lock()
	c.sess = sess
	c.mu.Unlock()

	c.log.DebugContext(ctx, "session hydrated from storage",
		slog.String("state", session.Evaluate(sess, c.now()).String()),
		logger.Component("client"))
}
