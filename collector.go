// Package collector assembles the SDK: configuration, sealed device
// storage, the backend API client, and the auth use case, wired the way the
// host application consumes them.
package collector

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/benscoapp/collector-sdk/api"
	"github.com/benscoapp/collector-sdk/auth"
	"github.com/benscoapp/collector-sdk/config"
	"github.com/benscoapp/collector-sdk/connectivity"
	"github.com/benscoapp/collector-sdk/lockout"
	"github.com/benscoapp/collector-sdk/session"
	"github.com/benscoapp/collector-sdk/store"
	"github.com/benscoapp/collector-sdk/store/file"
)

// SDK is the assembled client the mobile shell binds to.
type SDK struct {
	Auth         auth.AuthUsecase
	API          *api.Client
	Sessions     *session.Store
	Connectivity *connectivity.Monitor
	Lockout      *lockout.Policy

	kv store.Store
}

// New builds the SDK from the given configuration. The file-backed keystore
// is opened under cfg.StorageDir and sealed with cfg.StorageSecret; opening
// fails rather than wiping state when the secret does not match.
func New(cfg *config.Config, logger *zerolog.Logger) (*SDK, error) {
	kv, err := file.New(cfg.StorageDir, cfg.StorageSecret)
	if err != nil {
		return nil, err
	}
	return assemble(cfg, kv, logger)
}

// NewWithStore builds the SDK on a caller-supplied store, used by preview
// builds and tests that must not touch the device keystore.
func NewWithStore(cfg *config.Config, kv store.Store, logger *zerolog.Logger) (*SDK, error) {
	return assemble(cfg, kv, logger)
}

func assemble(cfg *config.Config, kv store.Store, logger *zerolog.Logger) (*SDK, error) {
	validator, err := auth.NewValidator()
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(kv, logger)
	policy := lockout.NewPolicy(cfg.MaxLoginAttempts, cfg.LockoutCooldown)
	monitor := connectivity.NewMonitor(connectivity.Online)
	client := api.NewClient(cfg, sessions, logger)

	return &SDK{
		Auth:         auth.NewAuthUsecase(client, sessions, policy, monitor, validator, logger),
		API:          client,
		Sessions:     sessions,
		Connectivity: monitor,
		Lockout:      policy,
		kv:           kv,
	}, nil
}

// Close cancels the lockout countdown and releases the keystore.
func (s *SDK) Close(ctx context.Context) error {
	s.Lockout.Cancel()
	return s.kv.Close()
}
