package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telegram transport metrics
var (
	// Processed commands by name
	commandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duit_commands_processed_total",
			Help: "Total number of processed commands by type",
		},
		[]string{"command"}, // start, menu, help, add, summary
	)

	// Processed messages by payload type
	messagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duit_messages_processed_total",
			Help: "Total number of processed messages by type",
		},
		[]string{"type"}, // text, photo
	)

	// Processed callback queries by data token
	callbacksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duit_callbacks_processed_total",
			Help: "Total number of processed callback queries by action",
		},
		[]string{"action"}, // add_manual, add_scan, back, save_transaction, etc
	)

	// Transport errors by type
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duit_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // download_file, send_message
	)
)
