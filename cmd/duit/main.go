package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"duit/pkg/app"

	"github.com/joho/godotenv"
	"github.com/vmkteam/embedlog"
)

const appName = "duit"

var (
	flVerbose = flag.Bool("verbose", false, "enable debug output")
	flJSON    = flag.Bool("json", false, "enable json output")
	flEnvFile = flag.String("env", ".env", "path to env file")
)

func main() {
	flag.Parse()

	// .env is optional, real deployments configure via environment
	if err := godotenv.Load(*flEnvFile); err != nil && !os.IsNotExist(err) {
		exitOnError(err)
	}

	sl := embedlog.NewLogger(*flVerbose, *flJSON)
	ctx := context.Background()

	cfg, err := configFromEnv()
	exitOnError(err)

	a, err := app.New(ctx, appName, sl, cfg)
	exitOnError(err)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		sl.Print(context.Background(), "shutting down", "app", appName)
		if err := a.Shutdown(5 * time.Second); err != nil {
			sl.Error(context.Background(), "shutdown error", "err", err)
		}
	}()

	if err := a.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitOnError(err)
	}
}

func configFromEnv() (app.Config, error) {
	var cfg app.Config

	cfg.Server.Host = envStr("SERVER_HOST", "0.0.0.0")
	port, err := envInt("SERVER_PORT", 8080)
	if err != nil {
		return cfg, err
	}
	cfg.Server.Port = port
	cfg.Server.IsDevel = envBool("SERVER_IS_DEVEL")

	cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	cfg.Telegram.Debug = envBool("TELEGRAM_DEBUG")

	cfg.Sheets.SpreadsheetID = os.Getenv("SPREADSHEET_ID")
	cfg.Sheets.CredentialsFile = envStr("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	cfg.Sheets.CredentialsJSON = os.Getenv("GOOGLE_CREDENTIALS_JSON")

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Prometheus.URL = os.Getenv("PROMETHEUS_URL")

	cfg.Session.MaxIdle, err = envDuration("SESSION_MAX_IDLE", 24*time.Hour)
	if err != nil {
		return cfg, err
	}
	cfg.Session.SweepEvery, err = envDuration("SESSION_SWEEP_EVERY", time.Hour)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
