// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/nvoss/macrolog/internal/api"
	"github.com/nvoss/macrolog/internal/catalog"
	"github.com/nvoss/macrolog/internal/goals"
	"github.com/nvoss/macrolog/internal/index"
	"github.com/nvoss/macrolog/internal/journal"
	"github.com/nvoss/macrolog/internal/mcpserver"
	"github.com/nvoss/macrolog/internal/mealservice"
	"github.com/nvoss/macrolog/internal/sse"
	"github.com/nvoss/macrolog/internal/storage"
)

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_dir", cfg.Data.Dir),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	svc, fs, db, err := buildService(cfg, broker.PublishStoreEvent)
	if err != nil {
		return err
	}
	defer db.Close()

	// Run initial index build.
	if err := svc.RebuildIndex(ctx); err != nil {
		logger.Warn("initial index build failed", slog.String("error", err.Error()))
	}

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, http.HandlerFunc(broker.ServeHTTP), nil)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start data-file watcher: external spreadsheet edits reload the stores
	// and fan out over SSE.
	g.Go(func() error {
		return storage.Watch(gCtx, fs, logger, func(name string) {
			if err := svc.ReloadStore(gCtx, name); err != nil {
				logger.Warn("store reload failed, keeping previous state",
					slog.String("file", name), slog.String("error", err.Error()))
				return
			}
			broker.PublishStoreEvent(mealservice.EventKind(name))
		})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the MCP stdio server with the given options.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	// MCP speaks JSON-RPC over stdout, so logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)

	svc, _, db, err := buildService(app.config, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := svc.RebuildIndex(ctx); err != nil {
		logger.Warn("initial index build failed", slog.String("error", err.Error()))
	}

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}

// buildService wires the stores, repositories and index into a service.
func buildService(cfg *Config, notify func(kind string)) (*mealservice.Service, *storage.FS, *index.DB, error) {
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	fs, err := storage.NewFS(cfg.Data.Dir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init storage: %w", err)
	}

	cat, err := catalog.New(storage.NewFoodStore(fs))
	if err != nil {
		return nil, nil, nil, err
	}
	jrnl, err := journal.New(storage.NewEntryStore(fs))
	if err != nil {
		return nil, nil, nil, err
	}
	tracker, err := goals.New(storage.NewGoalStore(fs))
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init index: %w", err)
	}

	return mealservice.New(cat, jrnl, tracker, db, notify), fs, db, nil
}
