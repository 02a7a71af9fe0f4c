package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired means a refresh was rejected or a retried request
	// came back 401 again; the stored session has been invalidated and the
	// caller must log the user out.
	ErrSessionExpired = errors.New("api: session expired")

	// ErrNoRefreshToken is returned when a refresh is attempted with no
	// refresh token in storage.
	ErrNoRefreshToken = errors.New("api: no refresh token available")
)

// Error is a backend-reported failure decoded from the {detail, code} body.
type Error struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
	Code       string `json:"code,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Detail, e.StatusCode)
}

// AuthenticationFailed reports whether the error is a server-confirmed
// credential rejection. Only these count toward the lockout policy; an
// unreachable server is not a wrong password.
func (e *Error) AuthenticationFailed() bool {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}
