package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage persists the session as a JSON file, the durable-storage
// equivalent of a browser's local storage. The file is written with 0600
// permissions since it holds bearer credentials.
//
// Writes go through a temp file followed by a rename so readers never observe
// a half-written session. Multiple processes sharing one file race with
// last-write-wins semantics.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at the given path. The parent
// directory is created on first save if it does not exist.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultSessionPath returns the conventional session file location under the
// user config directory, falling back to the working directory when the
// config dir cannot be resolved.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".ebf-session.json"
	}
	return filepath.Join(dir, "ebfdash", "session.json")
}

func (f *FileStorage) Load(ctx context.Context) (Session, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, ErrNotFound
		}
		return Session{}, errors.Join(ErrCorruptSession, err)
	}

	var raw storedSession
	if err := json.Unmarshal(b, &raw); err != nil {
		return Session{}, errors.Join(ErrCorruptSession, err)
	}
	return decodeSession(raw)
}

func (f *FileStorage) Save(ctx context.Context, s Session) error {
	raw, err := encodeSession(s)
	if err != nil {
		return err
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return errors.Join(ErrSaveSession, err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Join(ErrSaveSession, err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Join(ErrSaveSession, err)
	}
	return nil
}

func (f *FileStorage) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(ErrClearSession, err)
	}
	return nil
}
