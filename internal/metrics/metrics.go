// Package metrics defines and registers all custom Prometheus metrics for the
// nocturnal API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed by the HTTP server under /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nocturnal"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts users inserted through the API.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// UsersDeletedTotal counts documents actually removed by user deletes.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user documents deleted.",
	},
)

// ── Message metrics ───────────────────────────────────────────────────────────

// MessagesCreatedTotal counts messages inserted through the API.
var MessagesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_created_total",
		Help:      "Total number of messages created.",
	},
)

// IdempotentReplaysTotal counts create requests answered from the idempotency store.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests replayed from an Idempotency-Key.",
	},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOperationDuration measures one round trip to the document store.
// Labels:
//   - collection: "users" or "messages"
//   - operation: "find_by_id", "find_by_username", "insert", "delete"
//   - outcome: "ok" or "error"
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of document store operations issued by the services.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"collection", "operation", "outcome"},
)

// ObserveStore records the duration of a store call that started at start.
func ObserveStore(collection, operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreOperationDuration.WithLabelValues(collection, operation, outcome).Observe(time.Since(start).Seconds())
}
