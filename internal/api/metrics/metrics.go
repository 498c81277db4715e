// Package metrics defines and registers all custom Prometheus metrics for the
// custody calendar API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init and
// are exposed on /metrics next to the echoprometheus request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "custody"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - action: "register" or "login"
//   - result: "ok", "invalid", "conflict", "unauthorized", "throttled", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register/login attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Document metrics ──────────────────────────────────────────────────────────

// DocumentLoadsTotal counts document reads.
// Label:
//   - result: "ok" or "error"
var DocumentLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_loads_total",
		Help:      "Total number of custody document loads, by result.",
	},
	[]string{"result"},
)

// DocumentSavesTotal counts wholesale document replacements.
// Label:
//   - result: "ok", "invalid" or "error"
var DocumentSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_saves_total",
		Help:      "Total number of custody document saves, by result.",
	},
	[]string{"result"},
)

// DocumentSaveDuration measures how long a save takes including validation
// and notification.
var DocumentSaveDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "document_save_duration_seconds",
		Help:      "Duration of custody document saves.",
		Buckets:   prometheus.DefBuckets,
	},
)

// DocumentEntries tracks the size of saved documents (non-empty days).
var DocumentEntries = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "document_entries",
		Help:      "Number of entries in saved custody documents.",
		Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000, 2500},
	},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsGeneratedTotal counts generated reports.
// Labels:
//   - kind: "month", "quarter" or "year"
//   - format: "json" or "csv"
var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of custody reports generated, by kind and format.",
	},
	[]string{"kind", "format"},
)
