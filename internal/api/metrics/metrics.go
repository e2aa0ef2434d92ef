// Package metrics defines and registers all custom Prometheus metrics for
// the NC Issues API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ncissues"

// LoginsTotal counts login attempts by identity space and outcome.
// Labels:
//   - kind: "member", "admin", or "public" (registration counts as a login)
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by identity kind and result.",
	},
	[]string{"kind", "result"},
)

// BillsTrackedTotal counts successful bill-tracking subscriptions.
var BillsTrackedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bills_tracked_total",
		Help:      "Total number of bills tracked by members.",
	},
)

// BillsManagedTotal counts admin bill mutations.
// Label:
//   - action: "create", "update", or "delete"
var BillsManagedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bills_managed_total",
		Help:      "Total number of admin bill mutations, by action.",
	},
	[]string{"action"},
)

// CommentsCreatedTotal counts posted comments.
// Label:
//   - thread: "bill" or "issue"
var CommentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments posted, by thread type.",
	},
	[]string{"thread"},
)

// ShareCardsRenderedTotal counts Open Graph card renders.
// Labels:
//   - kind: "issue", "comment", or "share"
//   - cache: "hit" or "miss"
var ShareCardsRenderedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "share_cards_rendered_total",
		Help:      "Total number of social-preview cards served, by kind and cache result.",
	},
	[]string{"kind", "cache"},
)

// ActivityQueueDepth tracks pending entries in the async activity recorder.
var ActivityQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries waiting to be persisted.",
	},
)

// ActivityDroppedTotal counts activity entries discarded because the queue
// was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity entries dropped due to a full queue.",
	},
)
