// Package metrics defines and registers all custom Prometheus metrics for the
// employee API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry via promauto at
// package init, before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ems"

// ── Employee metrics ──────────────────────────────────────────────────────────

// EmployeeMutationsTotal counts successful write operations on employees.
// Label:
//   - op: "create", "update", or "delete"
var EmployeeMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employee_mutations_total",
		Help:      "Total number of successful employee write operations, by operation.",
	},
	[]string{"op"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts that reached the credential check.
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

// ── Export metrics ────────────────────────────────────────────────────────────

// ExportsTotal counts completed export downloads.
// Label:
//   - format: "csv" or "excel"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of completed employee exports, by format.",
	},
	[]string{"format"},
)

// ExportDuration measures how long building a full export takes.
// Label:
//   - format: "csv" or "excel"
var ExportDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_duration_seconds",
		Help:      "Duration of employee export generation, from query to encoded bytes.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"format"},
)
