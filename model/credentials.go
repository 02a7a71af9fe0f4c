package model

// RememberedCredentials is the opt-in email/password pair kept for the
// "remember me" checkbox. Owned exclusively by the session store; it never
// leaves the device.
type RememberedCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
