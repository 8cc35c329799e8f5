package domain

import "time"

// Session carries the API bearer token explicitly into every remote call.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

// Valid reports whether the session can authorise a request at now. A zero
// ExpiresAt means the token carries no expiry.
func (s Session) Valid(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
