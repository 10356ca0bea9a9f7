// Package metrics exposes the engine's Prometheus instrumentation.
// Collectors are registered with the default registry at init and served by
// promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostingsTotal counts posting attempts by source module and outcome
	// (posted, duplicate, deferred, failed).
	PostingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_postings_total",
		Help: "Total ledger posting attempts by source module and outcome",
	}, []string{"source_module", "outcome"})

	// DeferredPostingsTotal counts postings deferred for a missing mapping, by
	// source module and the role that could not be resolved.
	DeferredPostingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_deferred_postings_total",
		Help: "Postings deferred due to a missing account mapping",
	}, []string{"source_module", "role"})

	// ReversalsTotal counts reversal requests by terminal outcome
	// (completed, failed, not_eligible).
	ReversalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_reversals_total",
		Help: "Total reversal requests by outcome",
	}, []string{"outcome"})

	// PostingDuration observes end-to-end posting latency.
	PostingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_posting_duration_seconds",
		Help:    "Posting engine latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	// VariancesDetected counts reconciliation variances exceeding epsilon.
	VariancesDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_reconciliation_variances_total",
		Help: "Float-vs-GL variances exceeding the reporting epsilon",
	})
)
