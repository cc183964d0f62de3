package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ledger entry metrics
	ledgerTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_total",
		Help: "Total number of settlement period transactions written",
	}, []string{
		"type",   // ORDER_INCOME, PENALTY, CORRECTION_IN, ...
		"status", // PENDING, COMPLETED, FAILED, CANCELED
		"action", // created, updated, canceled
	})

	// Period lifecycle metrics
	settlementPeriodTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_period_transitions_total",
		Help: "Total settlement period lifecycle transitions",
	}, []string{
		"transition", // opened, closed, recomputed, released
	})

	settlementReleasedAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_released_amount_total",
		Help: "Sum of released settlement amounts (net payable to shops)",
	})

	settlementCloseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_period_close_duration_seconds",
		Help:    "Time to aggregate and freeze a settlement period",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	// Rollover job metrics
	settlementRolloversTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_rollovers_total",
		Help: "Total due periods processed by the rollover job",
	}, []string{
		"result", // success, failed
	})

	// Outbox metrics
	ledgerOutboxDispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_outbox_dispatch_total",
		Help: "Ledger outbox events dispatched to the broker",
	}, []string{
		"event_type",
		"result", // sent, failed
	})

	// Connection pool gauges sampled by the database adapter
	dbPoolConnections = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "db_pool_connections",
		Help: "Database pool connections by state",
	}, []string{
		"state", // acquired, idle, max
	})
)

// RecordLedgerTransaction records a write to a ledger entry
func RecordLedgerTransaction(txnType, status, action string) {
	ledgerTransactionsTotal.WithLabelValues(txnType, status, action).Inc()
}

// RecordPeriodTransition records a settlement period lifecycle change
func RecordPeriodTransition(transition string) {
	settlementPeriodTransitionsTotal.WithLabelValues(transition).Inc()
}

// RecordPeriodRelease records the amount released by an approval.
// Negative nets (shop owes the platform) are not added to the counter.
func RecordPeriodRelease(amount float64) {
	RecordPeriodTransition("released")
	if amount > 0 {
		settlementReleasedAmount.Add(amount)
	}
}

// ObservePeriodClose records how long a close took
func ObservePeriodClose(seconds float64) {
	settlementCloseDuration.Observe(seconds)
}

// RecordRollover records one rollover attempt
func RecordRollover(result string) {
	settlementRolloversTotal.WithLabelValues(result).Inc()
}

// RecordOutboxDispatch records the outcome of publishing one outbox event
func RecordOutboxDispatch(eventType, result string) {
	ledgerOutboxDispatchTotal.WithLabelValues(eventType, result).Inc()
}

// ObserveDBPool matches database.PoolObserver
func ObserveDBPool(acquired, idle, total int32) {
	dbPoolConnections.WithLabelValues("acquired").Set(float64(acquired))
	dbPoolConnections.WithLabelValues("idle").Set(float64(idle))
	dbPoolConnections.WithLabelValues("max").Set(float64(total))
}
