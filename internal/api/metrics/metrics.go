// Package metrics defines all custom Prometheus metrics for the employee
// management API. It is the single source of truth for metric names, labels,
// and help strings; promauto registers everything with the default registry
// at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_mgmt"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// RefreshesTotal counts access-token refresh attempts by outcome.
// Label:
//   - result: "success", "invalid", "stale", "not_found"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of access token refresh attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// ── Realtime metrics ──────────────────────────────────────────────────────────

// RealtimeConnections tracks currently open websocket connections.
var RealtimeConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_connections",
		Help:      "Number of currently open realtime connections.",
	},
)

// NotificationsPublishedTotal counts publish calls regardless of delivery.
var NotificationsPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of notifications published to the hub.",
	},
)

// NotificationsDeliveredTotal counts per-connection deliveries.
var NotificationsDeliveredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notification deliveries to live connections.",
	},
)

// NotificationsDroppedTotal counts undelivered notifications.
// Label:
//   - reason: "no_subscriber", "queue_full", "encode_failed"
var NotificationsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped without delivery.",
	},
	[]string{"reason"},
)
