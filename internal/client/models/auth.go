package models

// Credentials carry an email/password pair for login or registration.
// The server distinguishes intent by endpoint, not payload shape.
// Never persisted; lives only for the duration of one transport call.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the payload the backend returns on successful register,
// login, or refresh. Its presence is authoritative: it fully replaces any
// previously stored session.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         User   `json:"user"`
}
