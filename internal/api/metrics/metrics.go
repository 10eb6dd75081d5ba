// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings. Metrics are registered with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// SignupsTotal counts created accounts.
// Label:
//   - source: "referred" (signup carried a valid referral code) or "organic"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by referral source.",
	},
	[]string{"source"},
)

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

// CreatorRequestsTotal counts user → creator role transitions.
var CreatorRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "creator_requests_total",
		Help:      "Total number of creator status requests accepted.",
	},
)

// CreatorApprovalsTotal counts admin approvals.
var CreatorApprovalsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "creator_approvals_total",
		Help:      "Total number of creator approvals granted by admins.",
	},
)

// ProductsCreatedTotal counts new catalog listings.
// Label:
//   - type: product category tag (e.g. "bot", "website")
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products added to the catalog, by type.",
	},
	[]string{"type"},
)
