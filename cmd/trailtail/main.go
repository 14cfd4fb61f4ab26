package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/trailtail/internal/adapter/driving/cli"
	"github.com/ericfisherdev/trailtail/internal/config"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Structured logging to stderr so command output stays clean.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Debug("config loaded",
		"api_base_url", cfg.APIBaseURL,
		"use_backend_api", cfg.UseBackendAPI,
		"request_timeout", cfg.RequestTimeout,
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
	)

	// 3. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Hand over to the command line; adapters are wired on first use.
	return cli.Execute(ctx, func(ctx context.Context, notifier driven.OfflineNotifier) (*cli.Services, error) {
		return wire(ctx, cfg, notifier)
	})
}
