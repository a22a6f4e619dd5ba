package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accountsys/accounts-api/internal/api/metrics"
	"github.com/accountsys/accounts-api/internal/core/domain"
	"github.com/accountsys/accounts-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth is the gate in front of every protected route. It extracts a bearer
// token (Authorization header or auth cookie, verified identically),
// validates it, re-resolves the subject against the user store, and injects
// the account's id and current role into the request context.
//
// Resolving the subject on every request means a deleted account is rejected
// immediately and a role change takes effect on the next request, even
// though the token itself stays signed-valid until expiry.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.GateRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication token")
			}

			subject, err := tokens.Verify(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired_token"
				}
				metrics.GateRejectionsTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), subject)
			if err != nil {
				metrics.GateRejectionsTotal.WithLabelValues("unknown_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxRole, user.Role)

			return next(c)
		}
	}
}

// extractToken pulls the bearer token from the Authorization header, falling
// back to the auth cookie when no header is present. A header with the wrong
// scheme is malformed, not a cue to try the cookie.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return ""
		}
		return parts[1]
	}

	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
