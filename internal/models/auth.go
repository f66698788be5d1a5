package models

import "time"

// Principal is the authenticated caller handed explicitly to every service call.
type Principal struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// Session is the server-side record keyed by an opaque token.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Principal projects the session onto the caller identity.
func (s *Session) Principal() *Principal {
	if s == nil {
		return nil
	}
	return &Principal{UserID: s.UserID, Email: s.Email, Name: s.Name, Role: s.Role}
}

// Identity is a credential record owned by the identity provider.
type Identity struct {
	UID          string    `json:"uid,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
