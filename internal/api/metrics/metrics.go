// Package metrics defines and registers all custom Prometheus metrics for the
// shop API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shop"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created" or a short failure reason ("password_mismatch", "duplicate", "invalid")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ActivationsTotal counts token redemption attempts.
// Label:
//   - result: "activated", "not_found", or "expired"
var ActivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activations_total",
		Help:      "Total number of activation attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts session issuance attempts.
// Labels:
//   - method: "password" or "token"
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// EmailsTotal counts activation email deliveries.
// Label:
//   - result: "sent", "skipped" (already delivered for this token), or "error"
var EmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activation_emails_total",
		Help:      "Total number of activation email delivery attempts, by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the current number of emails waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of activation emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
