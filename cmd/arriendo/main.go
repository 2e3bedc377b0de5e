package main

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
	chimw "github.com/go-chi/chi/v5/middleware"

	arhttp "github.com/arriendo/arriendo/internal/adapter/http"
	"github.com/arriendo/arriendo/internal/adapter/nats"
	"github.com/arriendo/arriendo/internal/adapter/otel"
	"github.com/arriendo/arriendo/internal/adapter/postgres"
	"github.com/arriendo/arriendo/internal/adapter/ristretto"
	"github.com/arriendo/arriendo/internal/config"
	"github.com/arriendo/arriendo/internal/gate"
	"github.com/arriendo/arriendo/internal/logger"
	"github.com/arriendo/arriendo/internal/middleware"
	"github.com/arriendo/arriendo/internal/service"
)

const (
	tenantCacheSize = 1024
	tenantCacheTTL  = 30 * time.Second
	maxSchemaBuilds = 2
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Telemetry ---
	shutdownOtel, err := otel.Init(ctx, cfg.Telemetry, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = shutdownOtel(context.Background()) }()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---
	pool, err := postgres.NewPool(ctx, cfg.Postgres, metrics)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	// --- Services ---
	registry, err := ristretto.NewCachedRegistry(postgres.NewRegistry(pool), tenantCacheSize, tenantCacheTTL)
	if err != nil {
		return fmt.Errorf("registry cache: %w", err)
	}
	defer registry.Close()
	binder := postgres.NewSessionBinder(pool, metrics)
	provisioner := postgres.NewProvisioner(pool, cfg.Postgres.RuntimeRole, metrics)

	opts := []service.Option{service.WithGate(gate.New(maxSchemaBuilds))}
	if cfg.NATS.URL != "" {
		pub, err := nats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() { _ = pub.Close() }()
		opts = append(opts, service.WithEvents(pub))
	}

	authSvc := service.NewAuthService(&cfg.Auth)
	tenantSvc := service.NewTenantService(registry, provisioner, authSvc, opts...)

	// --- HTTP ---
	handlers := arhttp.NewHandlers(cfg, tenantSvc, authSvc, registry, binder, pool)

	r := chi.NewRouter()
	r.Use(arhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(arhttp.SecurityHeaders)
	r.Use(arhttp.Logger)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	if cfg.Telemetry.Enabled {
		r.Use(otel.HTTPMiddleware(cfg.Logging.Service))
	}

	handlers.MountRoutes(r)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
