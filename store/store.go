// Package store defines the namespaced key-value persistence consumed by the
// session layer. Implementations: file.Client (sealed on-disk store) and
// memory.Client (tests and ephemeral preview builds).
package store

import (
	"context"
	"errors"
)

// Keys used by the session layer. Prefixed so the host application can share
// the same store directory without collisions.
const (
	KeyAccessToken  = "collector.auth_token"
	KeyRefreshToken = "collector.refresh_token"
	KeyUserData     = "collector.user_data"
	KeyCredentials  = "collector.credentials"
	KeyRememberMe   = "collector.remember_me"
	KeyDeviceID     = "collector.device_id"
)

// ErrKeyNotFound is returned by Get for keys that were never set or have
// been deleted.
var ErrKeyNotFound = errors.New("store: key not found")

// Store is a durable string key-value store. SetMany and Delete are atomic:
// a concurrent reader observes either none or all of the batch, never a
// partially applied one.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
