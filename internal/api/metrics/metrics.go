// Package metrics defines and registers all custom Prometheus metrics for
// the commerce backend. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commerce"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsCreatedTotal counts fresh anonymous sessions synthesized by the
// session manager.
// Label:
//   - namespace: "user" or "admin"
var SessionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of fresh anonymous sessions created.",
	},
	[]string{"namespace"},
)

// SessionsHealedTotal counts structurally invalid session records the
// sanitizer discarded on read.
// Label:
//   - namespace: "user" or "admin"
var SessionsHealedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_healed_total",
		Help:      "Total number of corrupt session records discarded on read.",
	},
	[]string{"namespace"},
)

// SessionSaveErrorsTotal counts failed session persistence attempts during
// response finalization.
var SessionSaveErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_save_errors_total",
		Help:      "Total number of session store write failures at finalization.",
	},
	[]string{"namespace"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - namespace: "user" or "admin"
//   - result: "success", "invalid_credentials", "wrong_namespace"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by namespace and result.",
	},
	[]string{"namespace", "result"},
)

// SignupsTotal counts successful signups.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups.",
	},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsSubmittedTotal counts bank-transfer payment submissions.
var PaymentsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_submitted_total",
		Help:      "Total number of bank-transfer payment submissions.",
	},
)

// PaymentsReviewedTotal counts admin review decisions.
// Label:
//   - decision: "verified" or "rejected"
var PaymentsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_reviewed_total",
		Help:      "Total number of payment review decisions, by outcome.",
	},
	[]string{"decision"},
)

// AuditQueueDepth tracks the current number of audit entries waiting in
// each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
