package session

import "errors"

var (
	// ErrNotFound is returned by Storage.Load when no session is stored.
	ErrNotFound = errors.New("no stored session")
	// ErrCorruptSession is returned when stored session data cannot be decoded.
	ErrCorruptSession = errors.New("stored session data is corrupt")
	// ErrSaveSession is returned when persisting a session fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrClearSession is returned when clearing stored session data fails.
	ErrClearSession = errors.New("failed to clear session")
)
