package conversation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dialogue engine metrics
var (
	// Saved transactions by capture method
	transactionsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duit_transactions_saved_total",
			Help: "Total number of transactions saved by capture method",
		},
		[]string{"method"}, // manual, scan
	)

	// Receipt scans by outcome
	receiptScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duit_receipt_scans_total",
			Help: "Total number of receipt scans by result",
		},
		[]string{"result"}, // ok, error
	)

	// Summary requests
	summaryRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "duit_summary_requests_total",
			Help: "Total number of summary requests",
		},
	)

	// OCR plus extraction duration per receipt
	extractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "duit_extraction_duration_seconds",
			Help:    "Duration of receipt OCR and field extraction in seconds",
			Buckets: []float64{0.5, 1.5, 2.5, 3.5, 5, 10},
		},
	)
)
