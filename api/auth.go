package api

import (
	"context"
	"net/http"

	"github.com/benscoapp/collector-sdk/model"
)

// LoginRequest defines the login form payload.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the token pair and profile returned on successful login.
type LoginResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    *model.User `json:"user,omitempty"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

type passwordResetRequest struct {
	EmailOrUsername string `json:"email_or_username"`
}

// Login exchanges credentials for a token pair and profile. Unauthenticated;
// it never enters the refresh-and-retry path.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := c.send(ctx, http.MethodPost, "/auth/login/", LoginRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPasswordReset asks the backend to notify an administrator that this
// collector needs a password reset. Local session state is untouched.
func (c *Client) RequestPasswordReset(ctx context.Context, identifier string) error {
	resp, err := c.send(ctx, http.MethodPost, "/auth/collector-password-reset-request/",
		passwordResetRequest{EmailOrUsername: identifier}, "")
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}
