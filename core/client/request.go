package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/ebfdash/studentapi/pkg/logger"
)

// requestParams describes one API request for the do primitive.
type requestParams struct {
	method  string
	path    string
	query   url.Values
	body    any         // JSON-encoded when non-nil
	form    url.Values  // form-encoded body; used only by the token endpoint
	headers http.Header // per-call overrides merged over the defaults

	// skipAuth bypasses the authentication gate. Only login and refresh
	// use it; they cannot require a session that does not exist yet.
	skipAuth bool
}

// do is the authenticated request primitive every domain method funnels
// through. It applies the token lifecycle around a single HTTP exchange:
//
//  1. Fail fast with NOT_AUTHENTICATED when no session is held at all.
//  2. Proactively refresh when the expiry falls inside the refresh window; a
//     failure here is logged and swallowed, and the request proceeds bearing
//     the current token, which may still be valid for a few more minutes.
//  3. On a 401, refresh once and retry the original request once.
//  4. Parse non-2xx bodies as the structured error contract, substituting
//     UNKNOWN_ERROR when the body is not parseable, and clear the session on
//     any remaining 401.
//  5. Treat 204 as an empty success; decode JSON otherwise.
//  6. Wrap transport-level failures as NETWORK_ERROR.
func (c *Client) do(ctx context.Context, p requestParams, out any) error {
	if !p.skipAuth {
		if c.AccessToken() == "" {
			return errNotAuthenticated()
		}
		c.maybeProactiveRefresh(ctx)
	}

	body, contentType, err := encodeBody(p)
	if err != nil {
		return errNetwork(err)
	}

	requestID := uuid.NewString()

	resp, err := c.send(ctx, p, body, contentType, requestID)
	if err != nil {
		return asDomainError(err)
	}
	defer resp.Body.Close()

	if isSuccess(resp.StatusCode) {
		return decodeSuccess(resp, out)
	}

	// Reactive path: one refresh, one retry. Errors here are not swallowed
	// the way the proactive path's are; a failed refresh falls through to
	// standard error handling below.
	if resp.StatusCode == http.StatusUnauthorized && !p.skipAuth && c.canRefresh() {
		if refreshErr := c.refreshToken(ctx); refreshErr != nil {
			c.log.WarnContext(ctx, "refresh after 401 failed",
				logger.Error(refreshErr), logger.RequestID(requestID), logger.Component("client"))
		} else {
			retry, retryErr := c.send(ctx, p, body, contentType, requestID)
			if retryErr == nil {
				if isSuccess(retry.StatusCode) {
					defer retry.Body.Close()
					return decodeSuccess(retry, out)
				}
				// The retry failed too; report the original response.
				retry.Body.Close()
			}
		}
	}

	apiErr := parseAPIError(resp)
	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession(ctx)
	}

	c.log.DebugContext(ctx, "request failed",
		slog.String("method", p.method), slog.String("path", p.path),
		logger.Status(apiErr.Status), logger.RequestID(requestID))
	return apiErr
}

// maybeProactiveRefresh refreshes the token when the expiry falls inside the
// refresh window, including a session that has already lapsed, since a good
// refresh token can still revive it. Failures are swallowed: a still-valid
// access token survives the failed refresh and the caller's request proceeds
// on it.
func (c *Client) maybeProactiveRefresh(ctx context.Context) {
	c.mu.RLock()
	sess := c.sess
	c.mu.RUnlock()

	if !sess.NeedsRefresh(c.now()) || !sess.CanRefresh() {
		return
	}

	if err := c.refreshToken(ctx); err != nil {
		c.log.WarnContext(ctx, "proactive token refresh failed, continuing with current token",
			logger.Error(err), logger.Component("client"))
	}
}

func (c *Client) canRefresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess.CanRefresh()
}

// send issues one HTTP exchange. The body is handed over as bytes so the 401
// retry can resend it; the bearer token is read at send time, which is what
// lets the retry pick up a token replaced by the refresh in between.
func (c *Client) send(ctx context.Context, p requestParams, body []byte, contentType, requestID string) (*http.Response, error) {
	c.mu.RLock()
	u := c.baseURL + p.path
	headers := c.defaultHeaders.Clone()
	token := c.sess.AccessToken
	c.mu.RUnlock()

	if len(p.query) > 0 {
		u += "?" + p.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, u, reader)
	if err != nil {
		return nil, err
	}

	if headers == nil {
		headers = http.Header{}
	}
	for k, vs := range p.headers {
		headers.Del(k)
		for _, v := range vs {
			headers.Add(k, v)
		}
	}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}
	if !p.skipAuth && token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}
	headers.Set("X-Request-ID", requestID)
	req.Header = headers

	return c.httpClient.Do(req)
}

// encodeBody renders the request body and reports the content type it
// dictates, if any.
func encodeBody(p requestParams) ([]byte, string, error) {
	switch {
	case p.form != nil:
		return []byte(p.form.Encode()), "application/x-www-form-urlencoded", nil
	case p.body != nil:
		b, err := json.Marshal(p.body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return b, "application/json", nil
	default:
		return nil, "", nil
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// decodeSuccess parses a 2xx response. 204 yields an empty result with no
// body parse attempted.
func decodeSuccess(resp *http.Response, out any) error {
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errNetwork(fmt.Errorf("decode response body: %w", err))
	}
	return nil
}

// parseAPIError reads a non-2xx body as the structured error contract,
// substituting a synthetic unknown error when the body does not conform.
func parseAPIError(resp *http.Response) *Error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errUnknown(resp.StatusCode)
	}

	var envelope struct {
		Error Error `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Code == "" {
		return errUnknown(resp.StatusCode)
	}

	apiErr := envelope.Error
	apiErr.Status = resp.StatusCode
	return &apiErr
}

// asDomainError passes through structured errors and wraps anything else,
// typically transport failures, as NETWORK_ERROR.
func asDomainError(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}
	return errNetwork(err)
}
