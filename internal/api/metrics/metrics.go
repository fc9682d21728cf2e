// Package metrics defines the catalog's custom Prometheus collectors. HTTP
// request metrics come from the echoprometheus middleware; these cover the
// business events behind them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductMutationsTotal counts successful product writes.
// Label:
//   - action: "create", "update" or "delete"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of products created, updated or deleted.",
	},
	[]string{"action"},
)

// ProductValidationFailuresTotal counts product form submissions rejected by validation.
var ProductValidationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_validation_failures_total",
		Help:      "Total number of product forms re-rendered because of validation errors.",
	},
)

// ── Export metrics ────────────────────────────────────────────────────────────

// ExportsTotal counts export responses.
// Labels:
//   - format: "xml" or "json"
//   - scope: "all" or "by_id"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of catalog exports served, by format and scope.",
	},
	[]string{"format", "scope"},
)

// ExportedProducts observes how many products a single export contained.
var ExportedProducts = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "exported_products",
		Help:      "Number of products serialized per export response.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 6), // 1, 4, 16, 64, 256, 1024
	},
	[]string{"format"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsTotal counts account activity.
// Labels:
//   - event: "register", "login" or "logout"
//   - result: "success" or "failure"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of register, login and logout attempts, by result.",
	},
	[]string{"event", "result"},
)
