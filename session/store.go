// Package session persists the authenticated session, remembered
// credentials, and the device identifier in the device key-value store.
package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/benscoapp/collector-sdk/model"
	"github.com/benscoapp/collector-sdk/store"
)

var (
	// ErrNoCachedSession is returned by AttemptOfflineLogin when nothing
	// usable is stored; the user must be told to connect online.
	ErrNoCachedSession = errors.New("session: no cached session on this device")

	// ErrIncompleteSession is returned by Save for sessions missing the
	// token or the user profile.
	ErrIncompleteSession = errors.New("session: refusing to save a session without token and user")
)

// Store reads and writes the session tuple, remembered credentials, and the
// device identifier. All multi-key writes go through the underlying store's
// atomic batch, so a concurrent reader never observes a half-written
// session.
type Store struct {
	kv     store.Store
	logger *zerolog.Logger
}

// NewStore creates a new Store instance on top of the given key-value store.
func NewStore(kv store.Store, logger *zerolog.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Save persists the full session tuple in one batch.
func (s *Store) Save(ctx context.Context, sess *model.Session) error {
	if !sess.Valid() {
		return ErrIncompleteSession
	}

	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}

	return s.kv.SetMany(ctx, map[string]string{
		store.KeyAccessToken:  sess.AccessToken,
		store.KeyRefreshToken: sess.RefreshToken,
		store.KeyUserData:     string(userJSON),
	})
}

// Load returns the cached session, or nil when nothing usable is stored. A
// token without a profile is treated as absent rather than surfaced as a
// half-authenticated session.
func (s *Store) Load(ctx context.Context) (*model.Session, error) {
	access, err := s.kv.Get(ctx, store.KeyAccessToken)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	userRaw, err := s.kv.Get(ctx, store.KeyUserData)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		s.logger.Warn().Err(err).Msg("discarding unreadable cached user profile")
		return nil, nil
	}

	refresh, err := s.kv.Get(ctx, store.KeyRefreshToken)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return nil, err
	}

	return &model.Session{AccessToken: access, RefreshToken: refresh, User: &user}, nil
}

// Clear removes the session tuple. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, store.KeyAccessToken, store.KeyRefreshToken, store.KeyUserData)
}

// AccessToken returns the cached access token, empty when logged out.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.getOrEmpty(ctx, store.KeyAccessToken)
}

// RefreshToken returns the cached refresh token, empty when logged out.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.getOrEmpty(ctx, store.KeyRefreshToken)
}

// UpdateAccessToken replaces only the access token after a refresh; the
// refresh token and user profile are retained.
func (s *Store) UpdateAccessToken(ctx context.Context, accessToken string) error {
	return s.kv.Set(ctx, store.KeyAccessToken, accessToken)
}

// AttemptOfflineLogin restores the cached identity without contacting the
// server. Any previously cached session is trusted implicitly while
// offline: the device was already trusted by a prior online login.
func (s *Store) AttemptOfflineLogin(ctx context.Context) (*model.Session, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.Valid() {
		return nil, ErrNoCachedSession
	}
	return sess, nil
}

// SaveCredentials stores the remember-me pair, replacing any previous one.
func (s *Store) SaveCredentials(ctx context.Context, email, password string) error {
	raw, err := json.Marshal(model.RememberedCredentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	return s.kv.SetMany(ctx, map[string]string{
		store.KeyCredentials: string(raw),
		store.KeyRememberMe:  "true",
	})
}

// LoadCredentials returns the remembered pair, or nil when the user never
// opted in or withdrew consent.
func (s *Store) LoadCredentials(ctx context.Context) (*model.RememberedCredentials, error) {
	flag, err := s.kv.Get(ctx, store.KeyRememberMe)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if flag != "true" {
		return nil, nil
	}

	raw, err := s.kv.Get(ctx, store.KeyCredentials)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var creds model.RememberedCredentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// ClearCredentials withdraws remember-me consent. Idempotent.
func (s *Store) ClearCredentials(ctx context.Context) error {
	return s.kv.Delete(ctx, store.KeyCredentials, store.KeyRememberMe)
}

// DeviceID returns the stable identifier for this installation, creating it
// on first use.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	id, err := s.kv.Get(ctx, store.KeyDeviceID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, store.ErrKeyNotFound) {
		return "", err
	}

	id = uuid.NewString()
	if err := s.kv.Set(ctx, store.KeyDeviceID, id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) getOrEmpty(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", nil
	}
	return v, err
}
