package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole guards a route with a role check. It runs downstream of Auth
// and reads the role the gate resolved from the store, so the decision
// reflects the account's current role rather than any token claim.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
