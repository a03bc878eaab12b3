package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Client-side error codes. Server-declared codes pass through verbatim.
const (
	// CodeNoRefreshToken means a refresh was attempted with no refresh
	// token available.
	CodeNoRefreshToken = "NO_REFRESH_TOKEN"
	// CodeTokenRefreshFailed means the token endpoint rejected the refresh
	// token or the refresh request failed.
	CodeTokenRefreshFailed = "TOKEN_REFRESH_FAILED"
	// CodeNotAuthenticated means a protected call was attempted with no
	// valid session and no way to refresh.
	CodeNotAuthenticated = "NOT_AUTHENTICATED"
	// CodeUnknownError means a non-2xx response body could not be parsed
	// as the structured error shape.
	CodeUnknownError = "UNKNOWN_ERROR"
	// CodeNetworkError means a transport-level failure (DNS, connectivity,
	// body read) outside the structured error contract.
	CodeNetworkError = "NETWORK_ERROR"
)

// Error is the structured error surfaced for every failed API operation. It
// mirrors the backend's error payload contract and implements the error
// interface.
type Error struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context, e.g. field and value
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsAuth reports whether the error denies access, meaning the caller should
// send the user back to the login entry point.
func (e *Error) IsAuth() bool {
	return e.Status == http.StatusUnauthorized
}

// IsAuthError reports whether err is an access-denied API error, unwrapping
// as needed.
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsAuth()
}

func errNoRefreshToken() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeNoRefreshToken,
		Message: "no refresh token available",
	}
}

func errTokenRefreshFailed() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeTokenRefreshFailed,
		Message: "failed to refresh authentication token",
	}
}

func errNotAuthenticated() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeNotAuthenticated,
		Message: "authentication required, please login first",
	}
}

func errUnknown(status int) *Error {
	return &Error{
		Status:  status,
		Code:    CodeUnknownError,
		Message: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)),
	}
}

func errNetwork(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeNetworkError,
		Message: err.Error(),
	}
}
