package models

import "time"

// AdminUser is a dashboard account. PasswordHash is a bcrypt hash.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is an authenticated admin, decoded from a signed token.
type Session struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionEvent is published whenever an admin signs in or out.
type SessionEvent struct {
	Email    string
	SignedIn bool
	At       time.Time
}
