// Package metrics defines and registers all custom Prometheus metrics
// for the library system. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// ── Loan lifecycle metrics ────────────────────────────────────────────────────

// LoansRequestedTotal counts borrow requests that created a pending loan.
var LoansRequestedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_requested_total",
		Help:      "Total number of borrow requests accepted (pending loans created).",
	},
)

// LoansApprovedTotal counts loans transitioned to approved.
var LoansApprovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_approved_total",
		Help:      "Total number of loans approved.",
	},
)

// LoansReturnedTotal counts loans transitioned to returned.
var LoansReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_returned_total",
		Help:      "Total number of loans returned.",
	},
)

// LateFeeDays observes how many whole days late each return was.
// Zero for on-time returns, so the histogram's count doubles as a
// returns counter and its sum as total fee-days charged.
var LateFeeDays = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "late_fee_days",
		Help:      "Whole days past due per returned loan.",
		Buckets:   []float64{0, 1, 2, 3, 5, 7, 14, 30},
	},
)

// ── Auth and catalog metrics ──────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// BookSearchesTotal counts catalog search queries served.
var BookSearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "book_searches_total",
		Help:      "Total number of catalog search queries served.",
	},
)
