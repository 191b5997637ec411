// Package metrics defines and registers all custom Prometheus metrics for the
// booking front-end. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookingweb"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts signup attempts.
// Label:
//   - result: "success" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logouts. Logout always succeeds locally, so there is
// no result label.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts.",
	},
)

// SessionCacheTotal counts profile cache lookups.
// Label:
//   - result: "hit" or "miss"
var SessionCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_cache_total",
		Help:      "Total number of session cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures round trips to the booking backend.
// Label:
//   - operation: logical backend call (e.g. "login", "list_shops")
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of REST calls to the booking backend.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// BackendErrorsTotal counts failed backend calls.
// Label:
//   - operation: logical backend call
var BackendErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_errors_total",
		Help:      "Total number of failed REST calls to the booking backend.",
	},
	[]string{"operation"},
)
