package session

import (
	"time"
)

// RefreshWindow is how close to expiry a session may get before a proactive
// token refresh should be attempted.
const RefreshWindow = 5 * time.Minute

// User holds the identity resolved for an authenticated session. Only the
// username is guaranteed; id and role are filled when the backend supplies them.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// Session is the bearer-token session held by an API client. The zero value
// means "no session". A non-empty AccessToken always comes with a non-zero
// ExpiresAt; constructors enforce this invariant.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
	ExpiresAt    time.Time
}

// New creates a session from a token grant. expiresIn is the server-declared
// token lifetime in seconds; non-positive values fall back to one hour.
func New(accessToken, refreshToken string, user *User, expiresIn int, now time.Time) Session {
	return Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
		ExpiresAt:    Expiry(expiresIn, now),
	}
}

// Expiry converts a server-declared token lifetime in seconds into an
// absolute expiry, defaulting to one hour when the server omits it.
func Expiry(expiresIn int, now time.Time) time.Time {
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	return now.Add(time.Duration(expiresIn) * time.Second)
}

// IsZero reports whether no session is held at all.
func (s Session) IsZero() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.User == nil && s.ExpiresAt.IsZero()
}

// IsAuthenticated reports whether the session holds a token that is still
// valid at the given instant.
func (s Session) IsAuthenticated(now time.Time) bool {
	return s.AccessToken != "" && now.Before(s.ExpiresAt)
}

// IsExpired reports whether the token lifetime has elapsed. A session without
// an expiry is treated as expired.
func (s Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt.IsZero() || !now.Before(s.ExpiresAt)
}

// NeedsRefresh reports whether the expiry falls within the proactive refresh
// window. Sessions without an expiry never need a refresh; they are not
// authenticated in the first place.
func (s Session) NeedsRefresh(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !s.ExpiresAt.After(now.Add(RefreshWindow))
}

// CanRefresh reports whether a refresh token is available.
func (s Session) CanRefresh() bool {
	return s.RefreshToken != ""
}

// State classifies a session for the authenticated-request decision tree.
type State int

const (
	// StateNoSession means no token is held; protected calls must fail fast.
	StateNoSession State = iota
	// StateValid means the token is usable and not near expiry.
	StateValid
	// StateNeedsRefresh means the token is still valid but inside the
	// refresh window; a proactive refresh should be attempted.
	StateNeedsRefresh
	// StateExpired means a token is held but its lifetime has elapsed.
	StateExpired
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateNoSession:
		return "no_session"
	case StateValid:
		return "valid"
	case StateNeedsRefresh:
		return "needs_refresh"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Evaluate returns the session state at the given instant. It is a pure
// function so the request gating logic can be tested without any transport.
func Evaluate(s Session, now time.Time) State {
	switch {
	case s.AccessToken == "":
		return StateNoSession
	case s.IsExpired(now):
		return StateExpired
	case s.NeedsRefresh(now):
		return StateNeedsRefresh
	default:
		return StateValid
	}
}
