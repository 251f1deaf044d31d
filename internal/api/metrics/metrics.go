// Package metrics defines all custom Prometheus metrics for the virtual pets
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "virtualpets"

// SignupsTotal counts registration attempts.
// Label:
//   - result: "success" or "failure"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up attempts, labelled by result.",
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
		Help:      "Total number of log-in attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts JWTs handed out on sign-up and log-in.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of JWTs issued.",
	},
)

// PetsCreatedTotal counts newly created pets.
// Label:
//   - type: the pet type (e.g. "SAN_BERNARDO")
var PetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pets_created_total",
		Help:      "Total number of pets created, by pet type.",
	},
	[]string{"type"},
)

// PetCacheTotal counts pet cache lookups.
// Label:
//   - result: "hit" or "miss"
var PetCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pet_cache_total",
		Help:      "Total number of pet cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
