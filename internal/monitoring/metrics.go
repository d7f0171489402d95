package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	settlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlements_total",
			Help: "Settlement attempts by outcome",
		},
		[]string{"outcome"},
	)

	checkoutSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Checkout session creations by status",
		},
		[]string{"status"},
	)

	settledAmountTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settled_amount_total",
			Help: "Total settled amount per currency",
		},
		[]string{"currency"},
	)

	settlementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "settlement_duration_seconds",
			Help:    "Duration of settlement calls",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
)

// Settlement outcomes.
const (
	OutcomeSettled    = "settled"
	OutcomeDuplicate  = "duplicate"
	OutcomeIncomplete = "incomplete"
	OutcomeDangling   = "dangling"
	OutcomeFailed     = "failed"
)

func ObserveSettlement(outcome string, d time.Duration) {
	settlementsTotal.WithLabelValues(outcome).Inc()
	settlementDuration.Observe(d.Seconds())
}

func ObserveCheckout(status string) {
	checkoutSessionsTotal.WithLabelValues(status).Inc()
}

func AddSettledAmount(currency string, amount float64) {
	settledAmountTotal.WithLabelValues(currency).Add(amount)
}
