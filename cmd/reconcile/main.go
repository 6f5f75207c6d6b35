// Command reconcile recomputes every artwork's sold flag from the order
// history and exits non-zero when any artwork could not be updated.
package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/art_gallery/internal/mykafka"
	"github.com/Skotchmaster/art_gallery/internal/observability"
	"github.com/Skotchmaster/art_gallery/internal/repo"
	"github.com/Skotchmaster/art_gallery/internal/service"
	"github.com/Skotchmaster/art_gallery/pkg/config"
	pkgdb "github.com/Skotchmaster/art_gallery/pkg/db"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "job", "reconcile")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OtelEndpoint,
		AuthHeader:  cfg.OtelAuthHeader,
	})
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}

	os.Exit(run(ctx, cfg, logger, shutdownTracing))
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, shutdownTracing func(context.Context) error) int {
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("tracing_shutdown_error", "error", err)
		}
	}()

	db, err := pkgdb.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_open_error", "error", err)
		return 1
	}
	defer func() { _ = pkgdb.Close(db) }()

	store := repo.New(db)

	var events service.EventPublisher = service.NoopPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Error("kafka_error", "error", err)
			return 1
		}
		defer func() { _ = producer.Close() }()
		events = producer
	}

	orders := service.NewOrderService(store, store, events, service.OrderConfig{})
	report, err := orders.ReconcileAll(ctx)
	if err != nil {
		logger.Error("reconcile_error", "error", err)
		return 1
	}

	if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
		logger.Error("write_report_error", "error", err)
	}
	if !report.OK() {
		logger.Error("reconcile_incomplete", "failed", len(report.Failed))
		return 2
	}
	return 0
}
