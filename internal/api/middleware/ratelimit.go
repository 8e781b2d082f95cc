package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/raceops/race-weekend-api/internal/api/metrics"
	"github.com/raceops/race-weekend-api/internal/core/ports"
)

// RateLimit counts the request against the caller's fixed-window budget for
// the endpoint class. The X-RateLimit-* headers are attached on every
// response, allowed or not; rejected requests additionally get Retry-After
// and terminate with 429. Runs after Auth so the identity key is the user ID;
// the client address is the fallback for unauthenticated routes.
func RateLimit(limiter ports.RateLimiter, endpointClass string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identityKey := identityKey(c)

			result := limiter.Check(c.Request().Context(), identityKey, endpointClass)
			if result.Degraded {
				metrics.RateLimitDegradedTotal.Inc()
			}

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			header.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

			if !result.Allowed {
				metrics.RateLimitDecisionsTotal.WithLabelValues(endpointClass, "rejected").Inc()
				retryAfter := result.ResetAt - time.Now().Unix()
				if retryAfter < 0 {
					retryAfter = 0
				}
				header.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}

			metrics.RateLimitDecisionsTotal.WithLabelValues(endpointClass, "allowed").Inc()
			return next(c)
		}
	}
}

func identityKey(c echo.Context) string {
	if userID, ok := c.Get(ContextKeyUserID).(string); ok && userID != "" {
		return "user:" + userID
	}
	return "ip:" + c.RealIP()
}
