// Package metrics defines and registers all custom Prometheus metrics for
// the account gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "account_gateway"

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "allowed", "denied", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// DispatchDecisionsTotal counts allowed dispatch outcomes.
// Label:
//   - action: the terminal action (e.g. "redirect", "admin_user_list")
var DispatchDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_decisions_total",
		Help:      "Total number of allowed dispatch decisions, by action.",
	},
	[]string{"action"},
)

// DenialsTotal counts denied logins by their fixed reason.
// Label:
//   - reason: "not_authenticated", "not_assigned", "license_invalid", "role_undefined"
var DenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "denials_total",
		Help:      "Total number of denied logins, by reason.",
	},
	[]string{"reason"},
)

// RedirectTokensIssuedTotal counts signed webapp handoff URLs generated.
var RedirectTokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redirect_tokens_issued_total",
		Help:      "Total number of signed redirect URLs issued to SKT users.",
	},
)

// QuotaRejectionsTotal counts company writes rejected by a quota constraint.
// Label:
//   - field: the violated pair and side (e.g. "users.created")
var QuotaRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_rejections_total",
		Help:      "Total number of company edits rejected by a quota bound.",
	},
	[]string{"field"},
)
