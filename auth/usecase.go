// Package auth drives the login, logout, and session lifecycle flows: it
// validates input, enforces the lockout policy, routes submissions through
// the online gateway or the cached-session fallback, and maps every result
// to a tagged Outcome for the UI layer.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/benscoapp/collector-sdk/api"
	"github.com/benscoapp/collector-sdk/connectivity"
	"github.com/benscoapp/collector-sdk/lockout"
	"github.com/benscoapp/collector-sdk/model"
	"github.com/benscoapp/collector-sdk/session"
	"github.com/benscoapp/collector-sdk/token"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) Outcome
	OfflineLogin(ctx context.Context) Outcome
	Logout(ctx context.Context) error
	Bootstrap(ctx context.Context) Outcome
	RefreshSession(ctx context.Context) Outcome
	RequestPasswordReset(ctx context.Context, identifier string) Outcome
	SavedCredentials(ctx context.Context) (*model.RememberedCredentials, error)
	Lockout() *lockout.Policy
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email      string
	Password   string
	RememberMe bool
}

// Gateway is the network boundary consumed by the usecase. api.Client
// satisfies it.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	RefreshAccessToken(ctx context.Context) (string, error)
	RequestPasswordReset(ctx context.Context, identifier string) error
}

// User-facing messages for outcomes the backend supplies no detail for.
const (
	msgGenericFailure     = "Something went wrong. Please try again."
	msgNetworkUnavailable = "Cannot reach the server. Check your connection and try again."
	msgAccountLocked      = "Too many failed attempts. Your account has been temporarily locked."
	msgSessionExpired     = "Your session has expired. Please sign in again."
	msgNoCachedSession    = "No cached login found. Connect to the internet to sign in."
	msgResetRequested     = "Password reset request sent. An administrator will contact you."
)

// expiryLeeway is how close to expiry a cached access token may be before
// Bootstrap refreshes it proactively.
const expiryLeeway = 30 * time.Second

type authUsecase struct {
	gateway   Gateway
	sessions  *session.Store
	policy    *lockout.Policy
	monitor   *connectivity.Monitor
	validator *Validator
	inspector *token.Inspector
	logger    *zerolog.Logger
}

// NewAuthUsecase creates a new AuthUsecase instance.
func NewAuthUsecase(
	gateway Gateway,
	sessions *session.Store,
	policy *lockout.Policy,
	monitor *connectivity.Monitor,
	validator *Validator,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		gateway:   gateway,
		sessions:  sessions,
		policy:    policy,
		monitor:   monitor,
		validator: validator,
		inspector: token.NewInspector(),
		logger:    logger,
	}
}

// Login runs one submission through validation, the lockout gate, and the
// connectivity-chosen path, strictly in that order. The connectivity flag
// is read once here; a flip mid-request does not re-route the attempt.
func (u *authUsecase) Login(ctx context.Context, params LoginParams) Outcome {
	if ie := u.validator.ValidateCredentials(params.Email, params.Password); ie != nil {
		return Outcome{Status: StatusInvalidInput, Reason: ie.Reason, Message: ie.Message}
	}

	if u.policy.IsLocked() {
		return Outcome{
			Status:            StatusAccountLocked,
			RetryAfterSeconds: u.policy.RemainingSeconds(),
			Message:           msgAccountLocked,
		}
	}

	if u.monitor.Status() == connectivity.Offline {
		return u.OfflineLogin(ctx)
	}

	resp, err := u.gateway.Login(ctx, params.Email, params.Password)
	if err != nil {
		return u.failedLogin(err)
	}

	sess := &model.Session{AccessToken: resp.Access, RefreshToken: resp.Refresh, User: resp.User}
	if !sess.Valid() {
		u.logger.Error().Msg("login response missing token or user profile")
		return Outcome{Status: StatusFailed, Message: msgGenericFailure}
	}

	if err := u.sessions.Save(ctx, sess); err != nil {
		u.logger.Error().Err(err).Msg("failed to persist session")
		return Outcome{Status: StatusFailed, Message: msgGenericFailure}
	}

	if params.RememberMe {
		if err := u.sessions.SaveCredentials(ctx, params.Email, params.Password); err != nil {
			u.logger.Warn().Err(err).Msg("failed to save remembered credentials")
		}
	} else if err := u.sessions.ClearCredentials(ctx); err != nil {
		u.logger.Warn().Err(err).Msg("failed to clear remembered credentials")
	}

	u.policy.RecordSuccess()
	return Outcome{Status: StatusSuccess, Session: sess}
}

// failedLogin sorts a login error into the outcome taxonomy. Only
// server-confirmed credential rejections count toward lockout; an
// unreachable server is not a wrong password.
func (u *authUsecase) failedLogin(err error) Outcome {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if !apiErr.AuthenticationFailed() {
			return Outcome{Status: StatusFailed, Message: apiErr.Detail}
		}

		res := u.policy.RecordFailure()
		if res.Locked {
			return Outcome{
				Status:            StatusAccountLocked,
				RetryAfterSeconds: u.policy.RemainingSeconds(),
				Message:           msgAccountLocked,
			}
		}
		return Outcome{
			Status:            StatusAuthenticationFailed,
			AttemptsRemaining: res.AttemptsRemaining,
			Message:           apiErr.Detail,
		}
	}

	u.logger.Warn().Err(err).Msg("login request failed in transit")
	return Outcome{Status: StatusNetworkUnavailable, Message: msgNetworkUnavailable}
}

// OfflineLogin restores the cached identity without contacting the server.
func (u *authUsecase) OfflineLogin(ctx context.Context) Outcome {
	sess, err := u.sessions.AttemptOfflineLogin(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoCachedSession) {
			return Outcome{Status: StatusNoCachedSession, Message: msgNoCachedSession}
		}
		u.logger.Error().Err(err).Msg("offline login failed")
		return Outcome{Status: StatusFailed, Message: msgGenericFailure}
	}

	return Outcome{Status: StatusSuccess, Session: sess, Offline: true}
}

// Logout clears the session and withdraws remember-me consent. Idempotent;
// safe to call when already logged out.
func (u *authUsecase) Logout(ctx context.Context) error {
	if err := u.sessions.Clear(ctx); err != nil {
		return err
	}
	return u.sessions.ClearCredentials(ctx)
}

// Bootstrap restores the cached session at app start. When the cached
// access token is already expired and the device is online, it refreshes
// before handing the session to the UI; offline it hands over the cached
// identity as-is.
func (u *authUsecase) Bootstrap(ctx context.Context) Outcome {
	sess, err := u.sessions.Load(ctx)
	if err != nil {
		u.logger.Error().Err(err).Msg("failed to load cached session")
		return Outcome{Status: StatusFailed, Message: msgGenericFailure}
	}
	if !sess.Valid() {
		return Outcome{Status: StatusNoCachedSession, Message: msgNoCachedSession}
	}

	offline := u.monitor.Status() == connectivity.Offline
	if !offline && u.inspector.Expired(sess.AccessToken, expiryLeeway) {
		return u.RefreshSession(ctx)
	}

	return Outcome{Status: StatusSuccess, Session: sess, Offline: offline}
}

// RefreshSession rotates the access token with the stored refresh token. A
// rejected refresh has already invalidated storage by the time the outcome
// is reported.
func (u *authUsecase) RefreshSession(ctx context.Context) Outcome {
	if _, err := u.gateway.RefreshAccessToken(ctx); err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return Outcome{Status: StatusSessionExpired, Message: msgSessionExpired}
		}
		u.logger.Warn().Err(err).Msg("token refresh failed in transit")
		return Outcome{Status: StatusNetworkUnavailable, Message: msgNetworkUnavailable}
	}

	sess, err := u.sessions.Load(ctx)
	if err != nil || !sess.Valid() {
		u.logger.Error().Err(err).Msg("session unreadable after refresh")
		return Outcome{Status: StatusFailed, Message: msgGenericFailure}
	}

	return Outcome{Status: StatusSuccess, Session: sess}
}

// RequestPasswordReset asks the backend to notify an administrator. Local
// session state is untouched either way.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, identifier string) Outcome {
	if err := u.gateway.RequestPasswordReset(ctx, identifier); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return Outcome{Status: StatusFailed, Message: apiErr.Detail}
		}
		return Outcome{Status: StatusNetworkUnavailable, Message: msgNetworkUnavailable}
	}

	return Outcome{Status: StatusSuccess, Message: msgResetRequested}
}

// SavedCredentials returns the remembered pair for pre-filling the form,
// or nil when the user never opted in.
func (u *authUsecase) SavedCredentials(ctx context.Context) (*model.RememberedCredentials, error) {
	return u.sessions.LoadCredentials(ctx)
}

// Lockout exposes the policy so the owning screen can render the countdown
// and cancel it on unmount.
func (u *authUsecase) Lockout() *lockout.Policy {
	return u.policy
}
