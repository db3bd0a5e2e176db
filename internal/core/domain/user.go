package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the fixed set of actor roles in the system.
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleProjectManager Role = "ProjectManager"
	RoleTeamMember     Role = "TeamMember"
	RoleClient         Role = "Client"
)

// UserStatus gates whether an account can authenticate.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrTooManyAttempts     = errors.New("too many failed login attempts")
	ErrMissingRefreshToken = errors.New("refresh token required")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrStaleRefreshToken   = errors.New("refresh token no longer valid")
	ErrForbidden           = errors.New("access forbidden")
)

// User models an authenticated actor. RefreshToken holds the single valid
// refresh token for the user; empty means no active session.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	Phone        string     `json:"phone,omitempty"`
	Photo        string     `json:"photo,omitempty"`
	RefreshToken string     `json:"-"`
	ProjectIDs   []string   `json:"projects,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NormalizeEmail case-folds and trims an address so lookups are stable
// regardless of how it was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleTeamMember, RoleClient:
		return true
	}
	return false
}

// RoleAllowed is the single capability check used by both the route guard
// middleware and anything else gating behaviour on role.
func RoleAllowed(actual Role, allowed ...Role) bool {
	for _, r := range allowed {
		if actual == r {
			return true
		}
	}
	return false
}

// Toggle flips the status between active and inactive.
func (s UserStatus) Toggle() UserStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}
