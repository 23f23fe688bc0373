package models

import (
	"time"
)

// Session is a server-issued login session
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Role      Role      `json:"role" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

// Identity returns the caller identity bound to the session
func (s *Session) Identity() Identity {
	return Identity{UserID: s.UserID, Role: s.Role}
}
