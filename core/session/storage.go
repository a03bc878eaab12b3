package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// Storage persists a session across client instances. Implementations store
// four independent string slots: access token, refresh token, serialized user
// and an RFC 3339 expiry timestamp.
//
// Load returns ErrNotFound when nothing usable is stored. Concurrent writers
// are not coordinated; last write wins.
type Storage interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// storedSession is the serialized form shared by storage implementations.
type storedSession struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         string `json:"user,omitempty"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}

func encodeSession(s Session) (storedSession, error) {
	out := storedSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
	if s.User != nil {
		b, err := json.Marshal(s.User)
		if err != nil {
			return storedSession{}, errors.Join(ErrSaveSession, err)
		}
		out.User = string(b)
	}
	if !s.ExpiresAt.IsZero() {
		out.ExpiresAt = s.ExpiresAt.Format(time.RFC3339)
	}
	return out, nil
}

func decodeSession(raw storedSession) (Session, error) {
	// A stored session is usable only when token, user and expiry are all
	// present; partial writes are treated as absent.
	if raw.AccessToken == "" || raw.User == "" || raw.ExpiresAt == "" {
		return Session{}, ErrNotFound
	}

	var user User
	if err := json.Unmarshal([]byte(raw.User), &user); err != nil {
		return Session{}, errors.Join(ErrCorruptSession, err)
	}
	expiresAt, err := time.Parse(time.RFC3339, raw.ExpiresAt)
	if err != nil {
		return Session{}, errors.Join(ErrCorruptSession, err)
	}

	return Session{
		AccessToken:  raw.AccessToken,
		RefreshToken: raw.RefreshToken,
		User:         &user,
		ExpiresAt:    expiresAt,
	}, nil
}

// MemoryStorage keeps the session in process memory. Intended for tests and
// ephemeral clients that should not leave tokens on disk.
type MemoryStorage struct {
	mu     sync.RWMutex
	raw    storedSession
	stored bool
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(ctx context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.stored {
		return Session{}, ErrNotFound
	}
	return decodeSession(m.raw)
}

func (m *MemoryStorage) Save(ctx context.Context, s Session) error {
	raw, err := encodeSession(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
	m.stored = true
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = storedSession{}
	m.stored = false
	return nil
}
