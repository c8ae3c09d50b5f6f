// Package metrics defines and registers all custom Prometheus metrics for the
// CRM service. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; the /metrics endpoint exposes them next to the HTTP metrics
// collected by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// Result label values shared by the counters below.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// ── Data access metrics ───────────────────────────────────────────────────────

// ClientOperationsTotal counts data access calls on the clients table.
// Labels:
//   - operation: list, get, create, update, delete, search
//   - result: "ok", "not_found" (get only) or "error"
var ClientOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_operations_total",
		Help:      "Total number of client data access operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ClientOperationDuration measures the store round trip of a client operation.
var ClientOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "client_operation_duration_seconds",
		Help:      "Duration of client data access operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDecisionsTotal counts authorization decisions.
// Labels:
//   - resource: the protected resource, or "role" for role gates
//   - action: the requested action, or the comma-joined allowed roles
//   - decision: "allow" or "deny"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of authorization decisions, by resource, action and decision.",
	},
	[]string{"resource", "action", "decision"},
)

// SessionValidationsTotal counts session gate outcomes.
// Label:
//   - result: "valid", "missing", "invalid" or "revoked"
var SessionValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_validations_total",
		Help:      "Total number of session validations, labelled by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)
