package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pawn_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pawn_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// StockSummarySyncTotal counts synchronizations by the data source they ended on
	StockSummarySyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pawn_stock_summary_sync_total",
			Help: "Stock summary synchronizations by data source",
		},
		[]string{"source"},
	)

	StockSummarySyncErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pawn_stock_summary_sync_errors_total",
			Help: "Stock summary synchronizations that failed to persist",
		},
	)

	StockSummaryLoans = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pawn_stock_summary_loans",
			Help: "Loans in the current stock summary snapshot by loan status",
		},
		[]string{"loan_status"},
	)

	OverdueTransitionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pawn_overdue_transitions_total",
			Help: "Loans moved from active to overdue by the sweep",
		},
	)

	BackupOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pawn_backup_operations_total",
			Help: "Backup exports and imports by outcome",
		},
		[]string{"action", "status"},
	)
)
