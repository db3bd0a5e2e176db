package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/ports"
	"github.com/Vt221001/employee-management/internal/core/token"
)

// LoginThrottle abstracts the failed-attempt lockout store (Redis).
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// SessionService orchestrates login, logout, and refresh, persisting the
// current refresh token per user so that at most one refresh token is valid
// for a user at any instant.
type SessionService struct {
	users    ports.UserRepository
	access   *token.Codec
	refresh  *token.Codec
	throttle LoginThrottle
	log      zerolog.Logger
}

func NewSessionService(
	users ports.UserRepository,
	access, refresh *token.Codec,
	throttle LoginThrottle,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		users:    users,
		access:   access,
		refresh:  refresh,
		throttle: throttle,
		log:      log,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Role == "" {
		in.Role = domain.RoleTeamMember
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		Role:         in.Role,
		Status:       domain.StatusActive,
		Phone:        in.Phone,
	}

	return s.users.Create(ctx, user)
}

// Login validates credentials and starts a session. The inactive check runs
// before the password comparison: an inactive account is unusable regardless
// of credential validity. A successful login overwrites the stored refresh
// token, immediately invalidating any prior session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			// Throttle store trouble must not lock everyone out.
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Collapsed so a caller cannot tell which part was wrong.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if user.Status == domain.StatusInactive {
		return nil, domain.ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.throttle != nil {
			if terr := s.throttle.RecordFailure(ctx, email); terr != nil {
				s.log.Warn().Err(terr).Msg("failed to record login failure")
			}
		}
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.access.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.refresh.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	// Last write wins under concurrent logins for the same user; the losing
	// client discovers it on its next refresh attempt.
	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	if s.throttle != nil {
		if terr := s.throttle.Reset(ctx, email); terr != nil {
			s.log.Warn().Err(terr).Msg("failed to reset login throttle")
		}
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	redacted := *user
	redacted.PasswordHash = ""
	redacted.RefreshToken = ""

	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &redacted,
	}, nil
}

// Refresh exchanges a presented refresh token for a new access token. The
// presented token must byte-match the single token stored on the user record:
// a cryptographically valid token superseded by a newer login, or cleared by
// logout, is rejected as stale.
func (s *SessionService) Refresh(ctx context.Context, presented string) (string, error) {
	if presented == "" {
		return "", domain.ErrMissingRefreshToken
	}

	claims, err := s.refresh.Verify(presented)
	if err != nil {
		return "", domain.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("refresh: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(presented)) != 1 {
		s.log.Info().Str("user_id", user.ID).Msg("stale refresh token rejected")
		return "", domain.ErrStaleRefreshToken
	}

	// Only the access token is reissued; the refresh token stays valid until
	// logout, the next login, or its own expiry.
	accessToken, err := s.access.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return accessToken, nil
}

// Logout clears the stored refresh token unconditionally. Unknown users and
// repeated calls are not errors.
func (s *SessionService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	if err := s.users.SetRefreshToken(ctx, userID, ""); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// ToggleActive flips a user between active and inactive. Already-issued
// access tokens stay valid until expiry; only subsequent logins are blocked.
func (s *SessionService) ToggleActive(ctx context.Context, userID string) (domain.UserStatus, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	next := user.Status.Toggle()
	if err := s.users.SetStatus(ctx, userID, next); err != nil {
		return "", fmt.Errorf("toggle status: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("status", string(next)).Msg("user status toggled")
	return next, nil
}

// ChangePassword verifies the old password before storing a new hash.
func (s *SessionService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.SetPasswordHash(ctx, userID, string(hash))
}

// GetUser returns a single user with credentials redacted.
func (s *SessionService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	user.RefreshToken = ""
	return user, nil
}

// UpdateUser merges the non-empty input fields into the user's profile and
// returns the updated record redacted. Email and password are never touched
// here; those have their own flows.
func (s *SessionService) UpdateUser(ctx context.Context, userID string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Photo != "" {
		user.Photo = in.Photo
	}
	if in.Role != "" {
		if !domain.ValidRole(in.Role) {
			return nil, domain.ErrInvalidCredentials
		}
		user.Role = in.Role
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("user profile updated")

	user.PasswordHash = ""
	user.RefreshToken = ""
	return user, nil
}

// DeleteUser removes the account. Deleting also drops the stored refresh
// token with the record, so the session dies with the user.
func (s *SessionService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}

// ListUsers returns all users with credentials redacted.
func (s *SessionService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PasswordHash = ""
		u.RefreshToken = ""
	}
	return users, nil
}
