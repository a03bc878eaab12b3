// Package session models the bearer-token session used by the EBF API client
// and its persistence across client instances.
//
// The package separates two concerns that are easy to tangle together: the
// pure session state (token, user, expiry, and the predicates the request
// gating logic needs) and the durable storage adapter that mirrors that state
// so a freshly constructed client can pick up where a previous one left off.
//
// # Session state
//
// Session is a plain value. Its predicates take the current time explicitly,
// which keeps every expiry rule testable without sleeping:
//
//	sess := session.New(token, refresh, &session.User{Username: "staff"}, 3600, time.Now())
//	sess.IsAuthenticated(time.Now()) // true
//	sess.NeedsRefresh(time.Now())    // true within 5 minutes of expiry
//
// Evaluate classifies a session into one of four states (no session, valid,
// needs refresh, expired) as a pure function, so the client's decision tree
// around proactive refresh is testable without any HTTP transport.
//
// # Storage
//
// Storage persists four string slots: access token, refresh token, serialized
// user, and an RFC 3339 expiry. FileStorage is the production implementation;
// MemoryStorage backs tests. Load reports ErrNotFound for missing or partial
// data, so callers never observe a half-hydrated session.
package session
