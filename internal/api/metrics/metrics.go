// Package metrics defines and registers all custom Prometheus metrics for the
// catalog backend. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "ok", "denied", or "oauth"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password-reset lifecycle events.
// Label:
//   - stage: "requested", "consumed", "invalid", or "expired"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password-reset lifecycle events, by stage.",
	},
	[]string{"stage"},
)

// ── Scraper gateway metrics ───────────────────────────────────────────────────

// ScraperCallsTotal counts calls through the resilient gateway.
// Label:
//   - result: "ok", "connection_failure", or "circuit_open"
var ScraperCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scraper_calls_total",
		Help:      "Total number of scraper gateway calls, by result.",
	},
	[]string{"result"},
)

// CircuitState reports the breaker state per external dependency.
// Values: 0 = closed, 1 = open, 2 = half-open.
// Label:
//   - dependency: breaker name (e.g. "mercado-livre-scraper")
var CircuitState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_state",
		Help:      "Circuit breaker state per dependency (0 closed, 1 open, 2 half-open).",
	},
	[]string{"dependency"},
)

// ── Sync task metrics ─────────────────────────────────────────────────────────

// SyncTasksTotal counts coordinated tasks reaching a terminal state.
// Label:
//   - outcome: "completed" or "failed"
var SyncTasksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_tasks_total",
		Help:      "Total number of sync tasks that reached a terminal state.",
	},
	[]string{"outcome"},
)

// SyncTasksInflight tracks registry entries that have not been claimed by a
// poll yet. Growth with no polls is the unswept-task accumulation risk.
var SyncTasksInflight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sync_tasks_inflight",
		Help:      "Current number of sync tasks in the registry.",
	},
)
