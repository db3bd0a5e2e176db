package ports

import (
	"context"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

// UserRepository is the persistence port for users. The stored refresh token
// lives on the user record so any server instance can validate or rotate it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, userID string) error

	// SetRefreshToken overwrites the stored refresh token; empty clears it.
	SetRefreshToken(ctx context.Context, userID, token string) error
	SetStatus(ctx context.Context, userID string, status domain.UserStatus) error
	SetPasswordHash(ctx context.Context, userID, hash string) error
	// UpdateProfile overwrites name, phone, photo, and role for the user.
	UpdateProfile(ctx context.Context, user *domain.User) error
}
