// Package metrics defines the Prometheus metrics emitted by the storefront
// client. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry on
// first import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eshop_client"

// RequestsTotal counts backend calls made by the action functions.
// Labels:
//   - action: the action name (e.g. "get_product", "login")
//   - outcome: "ok" or "error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend requests, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// RequestDuration measures end-to-end latency of a single backend call.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of backend requests, by action.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// CacheLookupsTotal counts query-cache lookups.
// Label:
//   - result: "hit" (fresh), "stale" (served stale, revalidating) or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of query cache lookups, by result.",
	},
	[]string{"result"},
)

// CacheInvalidationsTotal counts entries marked for refetch after writes.
var CacheInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache entries invalidated by mutations.",
	},
)

// AuthOperationsTotal counts session operations.
// Labels:
//   - operation: "login", "register", "check_status" or "logout"
//   - outcome: "ok" or "failed"
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of session operations, by outcome.",
	},
	[]string{"operation", "outcome"},
)
