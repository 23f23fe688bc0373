package models

import (
	"time"
)

// Role is the coarse capability class of a user
type Role string

const (
	RoleWriter   Role = "WRITER"
	RoleReviewer Role = "REVIEWER"
	RoleAdmin    Role = "ADMIN"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[Role]bool{
	RoleWriter:   true,
	RoleReviewer: true,
	RoleAdmin:    true,
}

// SelfServiceRoles are the roles a user may pick when registering
var SelfServiceRoles = map[Role]bool{
	RoleWriter:   true,
	RoleReviewer: true,
}

// User represents a registered account
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Identity is the authenticated caller as seen by the workflow
type Identity struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// RegisterRequest is the payload for account creation
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// LoginRequest is the payload for session creation
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PublicUser is the user shape returned to clients
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	SessionID string     `json:"sessionId"`
	User      PublicUser `json:"user"`
}

// Public strips credentials from a user
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}
