package model

// Session represents the authenticated state of this device: the token pair
// plus the user profile they were minted for. Created on successful login or
// offline restore, mutated by refresh (access token replaced, refresh token
// and user retained), destroyed on logout or unrecoverable refresh failure.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// Valid reports whether the session can back an authenticated request. A
// session with an access token but no user profile is never considered
// valid; storage enforces the same invariant on write.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && s.User != nil
}
