package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casa-moreno/catalog-system/internal/api/middleware"
	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any service call: its presence proves the middleware ran.
// Services still receive the principal explicitly and make their own
// authorization decisions.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	principal, _ := c.Get(middleware.PrincipalKey).(*domain.Principal)
	if principal == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
