package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

// ctxAccount extracts the account injected by the Auth middleware. Its
// presence proves the middleware ran; a handler behind Auth that cannot find
// it rejects with 401 rather than proceed unauthenticated.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account, _ := c.Get("account").(*domain.Account)
	if account == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return account, nil
}

// queryDeletedFilter parses the administrative ?deleted= parameter shared by
// all list and detail endpoints.
func queryDeletedFilter(c echo.Context) (ports.DeletedFilter, error) {
	f := ports.DeletedFilter(c.QueryParam("deleted"))
	if !f.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "deleted must be one of: only, all")
	}
	return f, nil
}
