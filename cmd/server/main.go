package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daybook/internal/api"
	"daybook/internal/backup"
	"daybook/internal/config"
	"daybook/internal/events"
	"daybook/internal/logging"
	"daybook/internal/metrics"
	"daybook/internal/repository"
	"daybook/internal/service"
	"daybook/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	st, err := store.New(cfg.Storage, logger)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Storage.Path).Msg("init store")
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plans := initPlanRepository(ctx, cfg, logger)
	bus := events.NewEventBus()
	subscribeAuditLog(bus, logger)

	svc, err := service.New(ctx, st, plans, bus, cfg, logger)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}

	startMetrics(ctx, cfg, logger)
	startBackups(ctx, cfg, st, logger)

	httpServer := api.NewHTTPServer(cfg, svc, logger)
	return serveHTTP(ctx, httpServer, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "server").Logger()

	return cfg, &logger, closer, nil
}

// initPlanRepository wires the pending-plan store: memory-only by default,
// redis primary with memory failover when an address is configured.
func initPlanRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) repository.PlanRepository {
	ttl := time.Duration(cfg.Plans.TTLSeconds) * time.Second
	memory := repository.NewMemoryPlanRepository(ttl)

	if cfg.Redis.Address == "" {
		return memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, using in-memory plans")
		return repository.NewFailoverPlanRepository(
			repository.NewRedisPlanRepository(client, ttl), memory, logger)
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return repository.NewFailoverPlanRepository(
		repository.NewRedisPlanRepository(client, ttl), memory, logger)
}

// subscribeAuditLog records every domain event so the operator can trace
// what changed the collections and when.
func subscribeAuditLog(bus *events.EventBus, logger *zerolog.Logger) {
	handler := func(e *events.Event) error {
		logger.Info().
			Str("event", e.Type).
			RawJSON("payload", e.Payload).
			Msg("domain event")
		return nil
	}
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingUpdated,
		events.EventBookingDeleted,
		events.EventExpenseCreated,
		events.EventExpenseUpdated,
		events.EventExpenseDeleted,
		events.EventSlotConflict,
		events.EventPlanConfirmed,
	} {
		bus.Subscribe(eventType, handler)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

// startBackups runs the sqlite snapshot loop. The file backend keeps plain
// JSON on disk already, so nothing extra is scheduled for it.
func startBackups(ctx context.Context, cfg *config.Config, st store.Store, logger *zerolog.Logger) {
	if !cfg.Backup.Enabled {
		return
	}

	sqliteStore, ok := st.(*store.SQLiteStore)
	if !ok {
		logger.Info().Str("backend", cfg.Storage.Backend).Msg("backups are only scheduled for the sqlite backend")
		return
	}

	svc := backup.NewService(sqliteStore.Path(), cfg.Backup, logger)
	go svc.Start(ctx)
}

func serveHTTP(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}

	logger.Info().Msg("server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
