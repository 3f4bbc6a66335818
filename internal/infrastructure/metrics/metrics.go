package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Accrual metrics
	AccrualRuns     prometheus.Counter
	AccrualDuration prometheus.Histogram
	DepositsAccrued prometheus.Counter

	// Deposit metrics
	DepositsCreated    prometheus.Counter
	WithdrawalsCreated prometheus.Counter
	WithdrawalAmount   prometheus.Histogram

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		AccrualRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "timedeposit_accrual_runs_total",
			Help: "Total number of balance accrual runs",
		}),
		AccrualDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "timedeposit_accrual_duration_seconds",
			Help:    "Duration of balance accrual runs",
			Buckets: prometheus.DefBuckets,
		}),
		DepositsAccrued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "timedeposit_deposits_accrued_total",
			Help: "Total number of deposit balances changed by accrual runs",
		}),
		DepositsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "timedeposit_deposits_created_total",
			Help: "Total number of time deposits created",
		}),
		WithdrawalsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "timedeposit_withdrawals_created_total",
			Help: "Total number of withdrawals created",
		}),
		WithdrawalAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "timedeposit_withdrawal_amount",
			Help:    "Withdrawal amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timedeposit_db_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation"},
		),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "timedeposit_cache_hits_total",
			Help: "Total number of deposit list cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "timedeposit_cache_misses_total",
			Help: "Total number of deposit list cache misses",
		}),
	}
}
