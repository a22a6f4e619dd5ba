package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accountsys/accounts-api/internal/api/middleware"
)

// ctxIdentity extracts the account id and role injected by the Auth gate.
// An empty id means the gate did not run for this route; reject rather than
// proceed with an anonymous actor.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, role, nil
}
