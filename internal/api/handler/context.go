package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing user id means the
// middleware did not run (or the token carried no subject), so the
// request cannot be attributed to anyone.
func ctxIdentity(c echo.Context) (userID string, roles []string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roles, _ = c.Get("roles").([]string)
	return userID, roles, nil
}
