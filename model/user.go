package model

// User represents the field worker profile returned by the backend at login.
type User struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	UniqueCode         string `json:"unique_code"`
	MustChangePassword bool   `json:"must_change_password"`
}
