package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

// RequireRoles gates a route on the authenticated role. The actual check is
// domain.RoleAllowed, the same capability function used outside HTTP.
func RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(domain.Role)
			if !domain.RoleAllowed(role, allowed...) {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("role (%s) is not allowed to access this resource", role))
			}
			return next(c)
		}
	}
}
