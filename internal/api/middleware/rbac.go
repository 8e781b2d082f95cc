package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/raceops/race-weekend-api/internal/core/authz"
	"github.com/raceops/race-weekend-api/internal/core/domain"
)

// RequireCapability enforces a role capability on a route group. Ownership
// capabilities need the resource loaded first and are enforced in the service
// layer instead.
func RequireCapability(cap authz.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ContextKeyClaims).(domain.Claims)
			if decision := authz.Authorize(claims, cap); !decision.Allowed {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
