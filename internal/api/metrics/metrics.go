// Package metrics defines and registers all custom Prometheus metrics for
// the MindMate API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mindmate"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successful email registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful account registrations.",
	},
)

// LoginsTotal counts successful logins.
// Label:
//   - method: "password" or "otp"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins, by method.",
	},
	[]string{"method"},
)

// OTPSentTotal counts one-time codes issued.
// Label:
//   - channel: "sms" or "development" (code echoed in the response)
var OTPSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_sent_total",
		Help:      "Total number of one-time codes issued, by delivery channel.",
	},
	[]string{"channel"},
)

// OTPVerifiedTotal counts verification attempts.
// Label:
//   - result: "accepted" or "rejected"
var OTPVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verified_total",
		Help:      "Total number of one-time code verification attempts, by result.",
	},
	[]string{"result"},
)

// ── Assistant metrics ─────────────────────────────────────────────────────────

// ChatRequestsTotal counts chat turns.
// Labels:
//   - provider: the AI provider serving the turn (e.g. "openai", "grok")
//   - result: "ok" or "error"
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of chat turns, by provider and result.",
	},
	[]string{"provider", "result"},
)

// ChatDuration measures end-to-end chat turn latency including streaming.
var ChatDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chat_duration_seconds",
		Help:      "Duration of a chat turn from request to stream completion.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"provider"},
)

// ── Productivity metrics ──────────────────────────────────────────────────────

// TasksCreatedTotal counts created tasks by priority.
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// GoalsCreatedTotal counts created goals.
var GoalsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goals_created_total",
		Help:      "Total number of goals created.",
	},
)
