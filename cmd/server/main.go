package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fr0stylo/campaignfeed/internal/adapters/sqlite"
	appservices "github.com/fr0stylo/campaignfeed/internal/app/services"
	"github.com/fr0stylo/campaignfeed/internal/config"
	"github.com/fr0stylo/campaignfeed/internal/db"
	"github.com/fr0stylo/campaignfeed/internal/feed"
	"github.com/fr0stylo/campaignfeed/internal/observability"
	"github.com/fr0stylo/campaignfeed/internal/server"
	"github.com/fr0stylo/campaignfeed/internal/server/routes"
)

const shutdownTimeout = 10 * time.Second

func Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	log := slog.New(observability.WrapSlogHandler(baseHandler))
	slog.SetDefault(log)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Ingestion.Token == "" {
		slog.Warn("FEED_INGEST_TOKEN not set, process event ingestion is unauthenticated")
	}

	shutdownTelemetry, err := observability.SetupOpenTelemetry(ctx, log, observability.TelemetryConfig{
		Enabled:           cfg.Observability.Enabled,
		OTLPEndpoint:      cfg.Observability.OTLPEndpoint,
		OTLPTraceHeaders:  cfg.Observability.OTLPTraceHeaders,
		OTLPMetricHeaders: cfg.Observability.OTLPMetricHeaders,
		ServiceName:       cfg.Observability.ServiceName,
		ServiceVer:        cfg.Observability.ServiceVer,
		SamplingRatio:     cfg.Observability.SamplingRatio,
		MetricsConsole:    cfg.Observability.MetricsConsole,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	if cfg.Database.LogTiming {
		go database.ReportQueryLatency(ctx, log, time.Minute)
	}

	store := sqlite.NewProcessStore(database)
	registry := feed.NewRegistry()
	scheduler, err := feed.NewScheduler(feed.SchedulerConfig{
		Registry:    registry,
		Store:       store,
		Period:      cfg.RefreshPeriod(),
		Concurrency: cfg.Feed.RefreshConcurrency,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("failed to create refresh scheduler: %w", err)
	}
	streamer := feed.NewStreamer(registry, cfg.StreamInterval(), nil)

	srv := server.New(ctx, log, cfg.Observability.ServiceName)
	srv.RegisterRouter(routes.NewFeedRoutes(streamer, log))
	srv.RegisterRouter(routes.NewAPIRoutes(registry, scheduler, database))
	srv.RegisterRouter(routes.NewWebhookRoutes(appservices.NewProcessEventIngestService(store, cfg.Ingestion.Token), log))

	scheduler.Start(ctx)
	defer scheduler.Wait()
	// Runs before Wait so a failed listener also stops the refresh loop.
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("Starting server",
			"port", cfg.Server.Port,
			"refresh_period", cfg.RefreshPeriod(),
			"stream_interval", cfg.StreamInterval(),
		)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return <-errCh
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
