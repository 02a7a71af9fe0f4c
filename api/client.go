// Package api is the network boundary to the Bensco backend: login, token
// refresh, password reset, and the authenticated resource endpoints, all
// sharing one transport with transparent refresh-and-retry on 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/benscoapp/collector-sdk/config"
)

// TokenStore supplies bearer credentials for outgoing requests and absorbs
// rotated tokens. session.Store satisfies it.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	UpdateAccessToken(ctx context.Context, accessToken string) error
	Clear(ctx context.Context) error
	DeviceID(ctx context.Context) (string, error)
}

// Client talks to the backend REST API. All failures are returned as typed
// values; nothing panics across this boundary.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenStore
	refresh    singleflight.Group
	logger     *zerolog.Logger
}

// NewClient creates a Client bound to the configured base URL and timeout.
func NewClient(cfg *config.Config, tokens TokenStore, logger *zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		tokens:     tokens,
		logger:     logger,
	}
}

// do sends an authenticated request and decodes the JSON response into out.
// A 401 triggers exactly one refresh and one retry with the new access
// token; a second 401 invalidates the session. The connectivity flag is
// never consulted here: the request outcome is decided by the transport.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	access, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, method, path, body, access)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)

		access, err = c.RefreshAccessToken(ctx)
		if err != nil {
			return err
		}

		resp, err = c.send(ctx, method, path, body, access)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)
			return c.expireSession(ctx, nil)
		}
	}

	return decodeResponse(resp, out)
}

// RefreshAccessToken mints a new access token with the stored refresh token
// and persists it. Concurrent callers share a single in-flight refresh, so a
// burst of 401s rotates the token once. A server-side rejection (or a
// missing refresh token) invalidates the stored session; a transport error
// propagates without touching it.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		refreshToken, err := c.tokens.RefreshToken(ctx)
		if err != nil {
			return nil, err
		}
		if refreshToken == "" {
			return nil, ErrNoRefreshToken
		}

		resp, err := c.send(ctx, http.MethodPost, "/auth/token/refresh/", refreshRequest{Refresh: refreshToken}, "")
		if err != nil {
			return nil, err
		}

		var out refreshResponse
		if err := decodeResponse(resp, &out); err != nil {
			return nil, err
		}

		if err := c.tokens.UpdateAccessToken(ctx, out.Access); err != nil {
			return nil, err
		}
		return out.Access, nil
	})
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) || errors.Is(err, ErrNoRefreshToken) {
			return "", c.expireSession(ctx, err)
		}
		return "", err
	}

	return v.(string), nil
}

// expireSession clears the stored session and reports ErrSessionExpired.
func (c *Client) expireSession(ctx context.Context, cause error) error {
	if cause != nil {
		c.logger.Warn().Err(cause).Msg("token refresh rejected; session invalidated")
	} else {
		c.logger.Warn().Msg("request rejected again after refresh; session invalidated")
	}

	if err := c.tokens.Clear(ctx); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear session after invalidation")
	}

	return ErrSessionExpired
}

// send marshals the body and issues one HTTP request. The body is rebuilt on
// every call so the retry after a refresh reuses none of the consumed
// reader.
func (c *Client) send(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id, err := c.tokens.DeviceID(ctx); err == nil && id != "" {
		req.Header.Set("X-Device-ID", id)
	}

	return c.httpClient.Do(req)
}

// decodeResponse consumes the body, decoding errors into *Error and success
// payloads into out (which may be nil for 204-style responses).
func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &Error{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		if apiErr.Detail == "" {
			apiErr.Detail = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
