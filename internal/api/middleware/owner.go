package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Owner enforces that the authenticated account is the one addressed by the
// :id path parameter. Mutations on another user's account answer 403.
// Must run after Auth.
func Owner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountID, _ := c.Get("account_id").(string)
			if accountID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if c.Param(param) != accountID {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "cannot edit other users data"})
			}
			return next(c)
		}
	}
}
