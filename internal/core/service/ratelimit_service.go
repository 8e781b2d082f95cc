package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/raceops/race-weekend-api/internal/core/ports"
)

const defaultWindow = time.Minute

// RateLimitConfig carries the per-endpoint-class policies.
type RateLimitConfig struct {
	// Limits maps an endpoint class to its maximum calls per window.
	Limits map[string]int
	// Window is the fixed-window duration shared by all classes.
	Window time.Duration
	// FailOpen allows requests when the counter store is unreachable.
	// When false the policy fails closed and denies instead.
	FailOpen bool
}

// RateLimitService enforces fixed-window request limits per
// (identity key, endpoint class). Counting is delegated to a CounterStore so
// that multiple instances share one set of counters; per-key increments are
// atomic in the store, never read-then-write here.
type RateLimitService struct {
	store  ports.CounterStore
	config RateLimitConfig
	logger zerolog.Logger
	now    func() time.Time
}

func NewRateLimitService(store ports.CounterStore, config RateLimitConfig, logger zerolog.Logger) *RateLimitService {
	if config.Window <= 0 {
		config.Window = defaultWindow
	}
	return &RateLimitService{store: store, config: config, logger: logger, now: time.Now}
}

// Check atomically counts the request against the current window and reports
// whether it may proceed. ResetAt is the window's end regardless of the
// decision. Counters for past windows are never read; the store's own entry
// expiry reclaims them.
func (s *RateLimitService) Check(ctx context.Context, identityKey, endpointClass string) ports.RateLimitResult {
	limit := s.config.Limits[endpointClass]

	windowSecs := int64(s.config.Window / time.Second)
	now := s.now().Unix()
	windowStart := now - now%windowSecs
	resetAt := windowStart + windowSecs

	key := fmt.Sprintf("ratelimit:%s:%s:%d", identityKey, endpointClass, windowStart)

	count, err := s.store.Incr(ctx, key, s.config.Window)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("identity_key", identityKey).
			Str("endpoint_class", endpointClass).
			Bool("fail_open", s.config.FailOpen).
			Msg("counter store unreachable, rate limiting degraded")

		return ports.RateLimitResult{
			Allowed:   s.config.FailOpen,
			Limit:     limit,
			Remaining: remainingOnFailure(s.config.FailOpen, limit),
			ResetAt:   resetAt,
			Degraded:  true,
		}
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return ports.RateLimitResult{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// remainingOnFailure reports a full window under fail-open rather than a
// fabricated count, and zero under fail-closed.
func remainingOnFailure(failOpen bool, limit int) int {
	if failOpen {
		return limit
	}
	return 0
}
