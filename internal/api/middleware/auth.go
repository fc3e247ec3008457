package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinema-app/shop-api/internal/core/domain"
)

// SessionResolver maps a bearer session key to its account.
type SessionResolver interface {
	Resolve(ctx context.Context, key string) (*domain.Account, error)
}

// Auth validates the opaque bearer token against the session store and
// injects the account into context.
func Auth(sessions SessionResolver) echo.MiddlewareFunc {
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

			account, err := sessions.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("account", account)
			c.Set("account_id", account.ID)
			c.Set("username", account.Username)

			return next(c)
		}
	}
}
