package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/trailtail/internal/adapter/driven/backend"
	sqliteadapter "github.com/ericfisherdev/trailtail/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/trailtail/internal/adapter/driving/cli"
	httphandler "github.com/ericfisherdev/trailtail/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/trailtail/internal/adapter/driving/web"
	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/config"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

const shutdownTimeout = 10 * time.Second

// wire builds the adapters and services for one process. A nil notifier
// selects the web banner as the offline notice collaborator.
func wire(ctx context.Context, cfg *config.Config, notifier driven.OfflineNotifier) (*cli.Services, error) {
	logger := slog.Default()

	// 1. Open database (dual reader/writer with WAL mode) and migrate.
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, err
	}
	slog.Debug("database ready", "path", cfg.DBPath)

	// 2. Credential holder, restored from the persisted token.
	tokens := sqliteadapter.NewTokenRepo(db, cfg.SecretKey)
	session := application.NewSession(tokens, logger)
	restored := session.Restore(ctx)

	// 3. Offline notice collaborator.
	banner := webhandler.NewOfflineBanner(cfg.OfflineNoticeDuration, logger)
	if notifier == nil {
		notifier = banner
	}

	// 4. Request executor.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	exec := backend.NewExecutor(cfg.APIBaseURL, session,
		backend.WithTimeout(cfg.RequestTimeout),
		backend.WithEnabled(cfg.UseBackendAPI),
		backend.WithOfflineNotifier(notifier, cfg.CriticalPathPrefix),
		backend.WithMetrics(registry),
		backend.WithLogger(logger),
	)

	// 5. Domain services.
	routes := application.NewRouteService(exec, session, logger)
	narratives := application.NewNarrativeService(exec, logger)
	users := application.NewUserService(exec, session, logger)
	safety := application.NewSafetyService(exec, session, logger)
	encounters := application.NewEncounterService(exec, logger)

	serve := func(ctx context.Context) error {
		if restored {
			// Best effort; only the connection state is kept.
			go users.FetchProfile(ctx)
		}

		mux := http.NewServeMux()
		apiHandler := httphandler.NewHandler(routes, narratives, users, safety, encounters, session, cfg.UseBackendAPI, logger)
		httphandler.RegisterAPIRoutes(mux, apiHandler, registry)
		webHandler := webhandler.NewHandler(routes, narratives, users, session, banner, logger)
		webhandler.RegisterRoutes(mux, webHandler)

		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           httphandler.ApplyMiddleware(mux, logger),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}
		return runServer(ctx, srv)
	}

	return &cli.Services{
		Routes:         routes,
		Narratives:     narratives,
		Users:          users,
		Safety:         safety,
		Encounters:     encounters,
		Session:        session,
		BackendEnabled: cfg.UseBackendAPI,
		Serve:          serve,
		Close:          db.Close,
	}, nil
}

// runServer serves until ctx is cancelled, then drains connections.
func runServer(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		slog.Info("shutdown complete")
		return nil
	})

	return g.Wait()
}
