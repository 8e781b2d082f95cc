package ports

import (
	"context"
	"time"
)

// Endpoint classes sharing one rate-limit policy each.
const (
	ClassTaskRead  = "task-read"
	ClassTaskWrite = "task-write"
)

// CounterStore is the counting capability the rate limiter depends on.
// Incr must atomically increment the counter behind key, creating it with the
// given TTL when absent, and return the post-increment count. Implementations
// must be safe for concurrent use from many request-handling goroutines.
type CounterStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimitResult is the outcome of a single rate-limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   int64 // unix timestamp (seconds) of the current window's end
	// Degraded marks a decision taken while the counter store was
	// unreachable (fail-open or fail-closed policy applied).
	Degraded bool
}

// RateLimiter decides whether a request identified by identityKey may proceed
// under the endpoint class's fixed-window policy.
type RateLimiter interface {
	Check(ctx context.Context, identityKey, endpointClass string) RateLimitResult
}
