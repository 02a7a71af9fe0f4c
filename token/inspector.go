// Package token inspects backend-issued JWTs without verifying signatures.
// The device never holds the signing secret, so tokens are decoded for their
// registered claims only; the backend stays the authority on validity.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Inspector decodes registered claims from backend-issued tokens.
type Inspector struct {
	parser *jwt.Parser
}

// NewInspector creates a new Inspector instance.
func NewInspector() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// ExpiresAt returns the exp claim of the given token. A zero time means the
// token carries no expiry claim.
func (i *Inspector) ExpiresAt(tokenStr string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenStr, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the token expires within the given leeway.
// Opaque or claim-less tokens report false and fall through to the 401
// handling on the request path.
func (i *Inspector) Expired(tokenStr string, leeway time.Duration) bool {
	exp, err := i.ExpiresAt(tokenStr)
	if err != nil || exp.IsZero() {
		return false
	}
	return time.Now().Add(leeway).After(exp)
}
