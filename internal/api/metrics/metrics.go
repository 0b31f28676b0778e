// Package metrics defines and registers the custom Prometheus metrics for the
// item registry. It is the single source of truth for metric names, labels
// and help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "item_registry"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate" or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ItemActionsTotal counts item mutations dispatched through POST /.
// Labels:
//   - action: "add", "edit" or "delete"
//   - result: "success" or "denied"
var ItemActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_actions_total",
		Help:      "Total number of item mutations, by action and result.",
	},
	[]string{"action", "result"},
)

// UserActionsTotal counts directory mutations dispatched through POST /users.
// Labels:
//   - action: "edit_role", "edit_name", "change_password" or "delete"
//   - result: "success" or "denied"
var UserActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_actions_total",
		Help:      "Total number of user management actions, by action and result.",
	},
	[]string{"action", "result"},
)

// SessionsOpenedTotal counts sessions established by successful logins.
var SessionsOpenedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_opened_total",
		Help:      "Total number of sessions opened.",
	},
)

// SessionsClosedTotal counts sessions destroyed by logout.
var SessionsClosedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_closed_total",
		Help:      "Total number of sessions closed by logout.",
	},
)
