package app

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vmkteam/appkit"

	"duit/pkg/services"
)

// registerMetrics is a function that initializes metrics and adds /metrics endpoint to echo.
// This endpoint exposes:
// - HTTP metrics (via appkit.HTTPMetrics)
// - Telegram transport metrics (auto-registered via promauto in pkg/telegram/metrics.go)
// - Conversation engine metrics (auto-registered via promauto in pkg/conversation/metrics.go)
func (a *App) registerMetrics() {
	// Add HTTP metrics middleware
	a.echo.Use(appkit.HTTPMetrics(appkit.DefaultServerName))

	// Expose all metrics via /metrics endpoint
	a.echo.Any("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// logPriorMetrics reads the last known counter values from Prometheus
// after a restart and logs them for operators. The counters at /metrics
// restart from zero; nothing is re-applied, Prometheus itself keeps the
// continuous series.
func (a *App) logPriorMetrics(ctx context.Context) {
	if a.cfg.Prometheus.URL == "" {
		return
	}

	pc, err := services.NewPrometheusClient(a.cfg.Prometheus.URL, a.Logger)
	if err != nil {
		a.Error(ctx, "failed to create prometheus client", "err", err)
		return
	}
	if err := pc.CheckHealth(ctx); err != nil {
		a.Error(ctx, "prometheus is not accessible, skipping metrics restore", "err", err)
		return
	}

	snapshot, err := pc.RestoreMetrics(ctx)
	if err != nil {
		a.Error(ctx, "failed to fetch metrics snapshot", "err", err)
		return
	}

	a.Print(ctx, "pre-restart metrics snapshot",
		"commands", snapshot.CommandsProcessed,
		"messages", snapshot.MessagesProcessed,
		"callbacks", snapshot.CallbacksProcessed,
		"transactions", snapshot.TransactionsSaved,
		"errors", snapshot.ErrorsTotal,
	)
}
