package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Success: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The login path never
	// produces ErrUserNotFound: the session service collapses it into
	// ErrInvalidCredentials so callers cannot tell which part was wrong.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrAccountInactive):
		return http.StatusForbidden, "Your account is inactive. Please contact the admin."
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many failed login attempts. Try again later."
	case errors.Is(err, domain.ErrMissingRefreshToken):
		return http.StatusBadRequest, "Please provide a refresh token"
	case errors.Is(err, domain.ErrInvalidRefreshToken), errors.Is(err, domain.ErrStaleRefreshToken):
		return http.StatusUnauthorized, "Invalid refresh token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access forbidden"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Email already exists"
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "Project not found"
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "Task not found"
	case errors.Is(err, domain.ErrNotProjectMember):
		return http.StatusBadRequest, "User is not part of the project"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal Server Error"
}
