package ports

import (
	"context"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

// LoginResult is what a successful login hands back to the client: both
// tokens plus the user with sensitive fields redacted.
type LoginResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Phone    string
}

// UpdateUserInput carries the profile fields a user update may change. Empty
// fields are left untouched.
type UpdateUserInput struct {
	Name  string
	Phone string
	Photo string
	Role  domain.Role
}

// SessionService owns the authentication lifecycle: credential checks, token
// issuance, rotation, and server-side revocation. It also carries the user
// account CRUD that rides on the same repository.
type SessionService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Refresh exchanges a valid, currently-stored refresh token for a new
	// access token. The refresh token itself is not rotated.
	Refresh(ctx context.Context, presented string) (string, error)
	// Logout clears the stored refresh token; calling it twice is not an error.
	Logout(ctx context.Context, userID string) error
	ToggleActive(ctx context.Context, userID string) (domain.UserStatus, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
