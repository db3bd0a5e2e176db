package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Vt221001/employee-management/internal/core/token"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
	CtxName   = "name"
)

// Auth verifies the bearer access token and injects its claims into context.
func Auth(access *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := access.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxName, claims.Name)

			return next(c)
		}
	}
}
