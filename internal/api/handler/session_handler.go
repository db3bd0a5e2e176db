package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vt221001/employee-management/internal/api/metrics"
	"github.com/Vt221001/employee-management/internal/api/middleware"
	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/ports"
)

// SessionHandler exposes the authentication lifecycle over HTTP.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin ProjectManager TeamMember Client"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type logoutRequest struct {
	UserID string `json:"userId"`
}

type refreshRequest struct {
	IncomingRefreshToken string `json:"incomingRefreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/user-register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, user, "User created successfully")
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/user-login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, result, "User logged in successfully")
}

// Logout clears the stored refresh token. Always returns 200; logging out
// twice is not an error.
//
// @Summary      Logout
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      logoutRequest  true  "User to log out"
// @Success      200   {object}  apiResponse
// @Router       /api/user-logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.sessions.Logout(c.Request().Context(), req.UserID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "User logged out successfully")
}

// Refresh exchanges a stored refresh token for a new access token.
//
// @Summary      Refresh access token
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Current refresh token"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/user-refresh-token [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	accessToken, err := h.sessions.Refresh(c.Request().Context(), req.IncomingRefreshToken)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues(refreshOutcome(err)).Inc()
		return err
	}

	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, map[string]string{"accessToken": accessToken},
		"Access token refreshed successfully")
}

// ToggleActive flips a user between active and inactive.
//
// @Summary      Toggle user active status
// @Tags         session
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  apiResponse
// @Failure      404     {object}  map[string]any
// @Router       /api/user-activate-toggle/{userId} [get]
func (h *SessionHandler) ToggleActive(c echo.Context) error {
	status, err := h.sessions.ToggleActive(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}

	msg := "User inactivated"
	if status == domain.StatusActive {
		msg = "User activated"
	}
	return respond(c, http.StatusOK, map[string]string{"status": string(status)}, msg)
}

// ChangePassword verifies the old password and stores a new one. Only the
// account owner or an admin may change a user's password.
//
// @Summary      Change password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        userId  path      string                 true  "User id"
// @Param        body    body      changePasswordRequest  true  "Old and new password"
// @Success      200     {object}  apiResponse
// @Failure      401     {object}  map[string]any
// @Failure      403     {object}  map[string]any
// @Router       /api/change-user-password/{userId} [put]
func (h *SessionHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := requireSelfOrAdmin(c, c.Param("userId")); err != nil {
		return err
	}

	if err := h.sessions.ChangePassword(c.Request().Context(), c.Param("userId"), req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "Password changed")
}

// requireSelfOrAdmin rejects requests targeting another user's account unless
// the caller is an admin.
func requireSelfOrAdmin(c echo.Context, userID string) error {
	callerID, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(domain.Role)
	if callerID != userID && !domain.RoleAllowed(role, domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	return nil
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Photo string `json:"photo"`
	Role  string `json:"role" validate:"omitempty,oneof=Admin ProjectManager TeamMember Client"`
}

// GetUser returns a single user with credentials redacted.
//
// @Summary      Get a user
// @Tags         session
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  apiResponse
// @Failure      404     {object}  map[string]any
// @Router       /api/single-user/{userId} [get]
func (h *SessionHandler) GetUser(c echo.Context) error {
	user, err := h.sessions.GetUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "User fetched")
}

// UpdateUser merges the submitted profile fields into the user. Only the
// account owner or an admin may update a profile.
//
// @Summary      Update a user
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        userId  path      string             true  "User id"
// @Param        body    body      updateUserRequest  true  "Profile fields to change"
// @Success      200     {object}  apiResponse
// @Failure      403     {object}  map[string]any
// @Failure      404     {object}  map[string]any
// @Router       /api/update-user/{userId} [put]
func (h *SessionHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := requireSelfOrAdmin(c, c.Param("userId")); err != nil {
		return err
	}
	// Only an admin may change a role; a self-update cannot escalate.
	if req.Role != "" {
		if role, _ := c.Get(middleware.CtxRole).(domain.Role); !domain.RoleAllowed(role, domain.RoleAdmin) {
			return domain.ErrForbidden
		}
	}

	user, err := h.sessions.UpdateUser(c.Request().Context(), c.Param("userId"), ports.UpdateUserInput{
		Name:  req.Name,
		Phone: req.Phone,
		Photo: req.Photo,
		Role:  domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "User updated")
}

// DeleteUser removes the account.
//
// @Summary      Delete a user
// @Tags         session
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  apiResponse
// @Failure      404     {object}  map[string]any
// @Router       /api/delete-user/{userId} [delete]
func (h *SessionHandler) DeleteUser(c echo.Context) error {
	if err := h.sessions.DeleteUser(c.Request().Context(), c.Param("userId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "User deleted")
}

// ListUsers returns all users with credentials redacted.
//
// @Summary      List users
// @Tags         session
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /api/all-users [get]
func (h *SessionHandler) ListUsers(c echo.Context) error {
	users, err := h.sessions.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, users, "All users fetched")
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "invalid_credentials"
	}
}

func refreshOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrStaleRefreshToken):
		return "stale"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "invalid"
	}
}
