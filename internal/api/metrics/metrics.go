// Package metrics defines and registers all custom Prometheus metrics for the
// race weekend checklist API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry on first import; the
// router exposes them through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "raceweekend"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts tokens rejected during verification.
// Label:
//   - reason: "expired", "signature", or "malformed"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of access tokens rejected, labelled by reason.",
	},
	[]string{"reason"},
)

// ── Rate limit metrics ────────────────────────────────────────────────────────

// RateLimitDecisionsTotal counts rate-limit checks.
// Labels:
//   - class: the endpoint class (e.g. "task-write")
//   - result: "allowed" or "rejected"
var RateLimitDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_decisions_total",
		Help:      "Total number of rate-limit decisions, labelled by class and result.",
	},
	[]string{"class", "result"},
)

// RateLimitDegradedTotal counts checks taken while the counter store was
// unreachable (fail-open or fail-closed policy applied).
var RateLimitDegradedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_degraded_total",
		Help:      "Total number of rate-limit decisions taken in degraded mode.",
	},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created checklist tasks.
// Label:
//   - category: "prep", "pit", "safety", "travel", or "tech"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of checklist tasks created, by category.",
	},
	[]string{"category"},
)

// TaskCacheTotal counts task-listing cache lookups.
// Label:
//   - result: "hit" or "miss"
var TaskCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_cache_total",
		Help:      "Total number of task listing cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Reminder metrics ──────────────────────────────────────────────────────────

// RemindersQueuedTotal counts reminders accepted for delivery.
var RemindersQueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_queued_total",
		Help:      "Total number of task reminders queued for delivery.",
	},
)

// ReminderQueueDepth tracks the current number of reminders waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReminderQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reminder_queue_depth",
		Help:      "Current number of reminders pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
