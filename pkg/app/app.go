package app

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmkteam/appkit"
	"github.com/vmkteam/embedlog"

	"duit/pkg/conversation"
	"duit/pkg/ledger"
	"duit/pkg/services"
	"duit/pkg/session"
	"duit/pkg/telegram"
)

type Config struct {
	Server struct {
		Host    string
		Port    int
		IsDevel bool
	}
	Telegram struct {
		Token string
		Debug bool
	}
	Sheets struct {
		SpreadsheetID   string
		CredentialsFile string
		CredentialsJSON string
	}
	Gemini struct {
		APIKey string
	}
	Prometheus struct {
		URL string
	}
	Session struct {
		MaxIdle    time.Duration
		SweepEvery time.Duration
	}
}

const (
	defaultSessionMaxIdle = 24 * time.Hour
	defaultSessionSweep   = time.Hour
)

type App struct {
	embedlog.Logger
	appName  string
	cfg      Config
	echo     *echo.Echo
	ledger   ledger.Ledger
	sessions *session.Store
	engine   *conversation.Engine
	tgBot    *telegram.Bot
}

func New(ctx context.Context, appName string, sl embedlog.Logger, cfg Config) (*App, error) {
	a := &App{
		appName: appName,
		cfg:     cfg,
		echo:    appkit.NewEcho(),
		Logger:  sl,
	}

	if cfg.Sheets.SpreadsheetID != "" {
		l, err := ledger.NewSheets(ctx, ledger.SheetsConfig{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			CredentialsJSON: cfg.Sheets.CredentialsJSON,
			CredentialsFile: cfg.Sheets.CredentialsFile,
		}, sl)
		if err != nil {
			return nil, err
		}
		a.ledger = l
	} else {
		// local development without a spreadsheet
		sl.Print(ctx, "no spreadsheet configured, using in-memory ledger")
		a.ledger = ledger.NewMemory()
	}

	var extractor services.Extractor
	if cfg.Gemini.APIKey != "" {
		g, err := services.NewGemini(ctx, cfg.Gemini.APIKey, sl)
		if err != nil {
			return nil, err
		}
		extractor = g
	} else {
		sl.Print(ctx, "no gemini api key configured, using pattern extractor")
		extractor = services.NewFallback(sl)
	}

	a.sessions = session.NewStore()
	a.engine = conversation.NewEngine(a.sessions, a.ledger, services.NewTesseract(sl), extractor, sl)

	if cfg.Telegram.Token != "" {
		tgBot, err := telegram.New(telegram.Config{
			Token: cfg.Telegram.Token,
			Debug: cfg.Telegram.Debug,
		}, a.engine, sl)
		if err != nil {
			return nil, err
		}
		a.tgBot = tgBot
	}

	return a, nil
}

// Run is a function that runs application.
func (a *App) Run(ctx context.Context) error {
	a.registerMetrics()
	a.registerHandlers()
	a.registerDebugHandlers()
	a.registerMetadata()
	a.logPriorMetrics(ctx)

	go a.runSessionSweeper(ctx)

	// Start Telegram bot if configured
	if a.tgBot != nil {
		go func() {
			if err := a.tgBot.Start(ctx); err != nil {
				a.Error(ctx, "telegram bot error", "err", err)
			}
		}()
	}

	return a.runHTTPServer(ctx, a.cfg.Server.Host, a.cfg.Server.Port)
}

// Shutdown is a function that gracefully stops HTTP server.
func (a *App) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop Telegram bot
	if a.tgBot != nil {
		a.tgBot.Stop(ctx)
	}

	return a.echo.Shutdown(ctx)
}

// runSessionSweeper periodically drops idle sessions so the store does
// not grow with every chat that ever talked to the bot.
func (a *App) runSessionSweeper(ctx context.Context) {
	maxIdle := a.cfg.Session.MaxIdle
	if maxIdle <= 0 {
		maxIdle = defaultSessionMaxIdle
	}
	sweep := a.cfg.Session.SweepEvery
	if sweep <= 0 {
		sweep = defaultSessionSweep
	}

	ticker := time.NewTicker(sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := a.sessions.EvictIdle(maxIdle); evicted > 0 {
				a.Print(ctx, "evicted idle sessions", "count", evicted, "left", a.sessions.Len())
			}
		}
	}
}

// registerMetadata is a function that registers meta info from service.
func (a *App) registerMetadata() {
	services := []appkit.ServiceMetadata{}
	if a.tgBot != nil {
		// Telegram bot runs asynchronously in a separate goroutine
		services = append(services, appkit.NewServiceMetadata("telegram-bot", appkit.MetadataServiceTypeAsync))
	}

	opts := appkit.MetadataOpts{
		HasPublicAPI:  false, // No public API, only Telegram bot
		HasPrivateAPI: false,
		Services:      services,
	}

	md := appkit.NewMetadataManager(opts)
	md.RegisterMetrics()

	a.echo.GET("/debug/metadata", md.Handler)
}
