package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/library-system/internal/core/domain"
)

// ctxPrincipal extracts the auth claims injected by the Auth middleware
// and fast-fails before any service call: a missing or unknown role
// means the middleware did not run or the token carries garbage, and a
// missing subject makes ownership checks impossible.
func ctxPrincipal(c echo.Context) (userID string, role domain.Role, err error) {
	raw, _ := c.Get("role").(string)
	role, ok := domain.ParseRole(raw)
	if !ok {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	return userID, role, nil
}
