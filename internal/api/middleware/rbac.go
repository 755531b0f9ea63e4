package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

// RequireProfile guards a route group by profile. The admin-or-owner rule
// cannot be decided at the routing layer (it needs the resource owner) and is
// enforced inside the services instead.
func RequireProfile(allowedProfiles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedProfiles))
	for _, p := range allowedProfiles {
		allowed[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, _ := c.Get(PrincipalKey).(*domain.Principal)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[principal.Profile]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
