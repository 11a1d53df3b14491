// Package metrics defines and registers the custom Prometheus metrics
// for the restaurant API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register themselves with the
// default registry on import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurant_api"

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "created", "duplicate_email", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
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

// RestaurantsCreatedTotal counts newly created restaurants.
var RestaurantsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restaurants_created_total",
		Help:      "Total number of restaurants created.",
	},
)

// RestaurantMutationsDenied counts mutations rejected by the ownership
// policy.
// Label:
//   - operation: "update" or "delete"
var RestaurantMutationsDenied = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restaurant_mutations_denied_total",
		Help:      "Total number of update/delete attempts denied by the access policy.",
	},
	[]string{"operation"},
)
