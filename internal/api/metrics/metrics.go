// Package metrics defines and registers all custom Prometheus metrics
// for the crypto data API. It is the single source of truth for metric
// names, labels, and help strings. Registration happens at import time
// via promauto; the /metrics endpoint exposes the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cryptoapi"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts accounts created through the registration gate.
// Label:
//   - role: initial role of the new account ("user" or "admin")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by initial role.",
	},
	[]string{"role"},
)

// GuardRejectionsTotal counts requests rejected by the auth guard chain.
// Label:
//   - reason: "unauthenticated", "inactive", or "insufficient_role"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the auth guard chain.",
	},
	[]string{"reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditRecordsTotal counts audit records successfully persisted.
var AuditRecordsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of audit records written.",
	},
)

// AuditWriteFailuresTotal counts audit records that could not be
// persisted. These failures never surface to the caller; the counter is
// the main signal that the audit trail has gaps.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit records dropped due to write failures.",
	},
)
