package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AuthCookieName is the cookie carrying the bearer token for browser
// callers. The gate accepts it interchangeably with the Authorization
// header.
const AuthCookieName = "auth-token"

// SetAuthCookie issues the auth cookie, expiring together with the token.
func SetAuthCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie removes the auth cookie from the client.
func ClearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
