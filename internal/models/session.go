package models

import "time"

// SessionUser is the logged-in customer kept in the session cookie
type SessionUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role,omitempty"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the access token has passed its expiry
func (u *SessionUser) Expired(now time.Time) bool {
	return !u.ExpiresAt.IsZero() && !now.Before(u.ExpiresAt)
}

// DisplayName returns the user's name, falling back to the email
func (u *SessionUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Flash is a one-shot toast message
type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}
