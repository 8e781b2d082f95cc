package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/raceops/race-weekend-api/internal/api/middleware"
	"github.com/raceops/race-weekend-api/internal/core/domain"
)

// ctxClaims extracts the verified claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a populated subject and
// role prove the middleware ran.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, _ := c.Get(middleware.ContextKeyClaims).(domain.Claims)
	if claims.UserID == "" || claims.Role == "" {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
