package models

import (
	"time"
)

// Role represents the role of a user in the system
type Role string

const (
	RoleManager   Role = "manager"
	RoleAssociate Role = "associate"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[Role]bool{
	RoleManager:   true,
	RoleAssociate: true,
}

// User represents a user in the system
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsManager reports whether the user holds the manager role
func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}

// Caller identifies who is issuing a request
type Caller struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// IsManager reports whether the caller acts as a manager
func (c Caller) IsManager() bool {
	return c.Role == RoleManager
}

// CallerOf builds the caller identity of a stored user
func CallerOf(u *User) Caller {
	return Caller{UserID: u.ID, Role: u.Role}
}

// LoginRequest is the body of a login call
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is returned on successful login
type LoginResult struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
