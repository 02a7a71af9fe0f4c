package auth

import "github.com/benscoapp/collector-sdk/model"

// OutcomeStatus tags an auth result for the UI layer.
type OutcomeStatus int

const (
	StatusSuccess OutcomeStatus = iota
	StatusInvalidInput
	StatusAuthenticationFailed
	StatusAccountLocked
	StatusNetworkUnavailable
	StatusSessionExpired
	StatusNoCachedSession
	StatusFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidInput:
		return "invalid_input"
	case StatusAuthenticationFailed:
		return "authentication_failed"
	case StatusAccountLocked:
		return "account_locked"
	case StatusNetworkUnavailable:
		return "network_unavailable"
	case StatusSessionExpired:
		return "session_expired"
	case StatusNoCachedSession:
		return "no_cached_session"
	default:
		return "failed"
	}
}

// Outcome is the single value every auth operation hands back to the UI
// layer. No errors cross this boundary; the screen only maps an Outcome to
// a message and a follow-up action.
type Outcome struct {
	Status  OutcomeStatus
	Session *model.Session // set on success
	Offline bool           // success came from the cached session
	Message string         // user-facing description of the result

	Reason            InvalidInputReason // set for StatusInvalidInput
	AttemptsRemaining int                // set for StatusAuthenticationFailed
	RetryAfterSeconds int                // set for StatusAccountLocked
}
