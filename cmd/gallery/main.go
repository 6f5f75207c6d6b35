package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/art_gallery/internal/es"
	"github.com/Skotchmaster/art_gallery/internal/httpserver"
	"github.com/Skotchmaster/art_gallery/internal/mykafka"
	"github.com/Skotchmaster/art_gallery/internal/observability"
	"github.com/Skotchmaster/art_gallery/internal/repo"
	"github.com/Skotchmaster/art_gallery/internal/service"
	"github.com/Skotchmaster/art_gallery/pkg/authclient"
	"github.com/Skotchmaster/art_gallery/pkg/config"
	pkgdb "github.com/Skotchmaster/art_gallery/pkg/db"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
	middleware "github.com/Skotchmaster/art_gallery/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/art_gallery/pkg/middleware/logging"
	"github.com/Skotchmaster/art_gallery/pkg/tokens"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustOneOf(map[string]string{
		"JWT_SECRET": string(cfg.JWTAccessSecret),
		"AUTH_URL":   cfg.AuthHTTPURL,
	})

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	shutdownTracing, err := observability.SetupTracing(context.Background(), observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OtelEndpoint,
		AuthHeader:  cfg.OtelAuthHeader,
	})
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	store := repo.New(db)
	if err := store.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}
	cancel()

	var events service.EventPublisher = service.NoopPublisher
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		events = producer
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	var index service.ArtworkIndexer
	if cfg.ElasticURL != "" {
		esCtx, esCancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := es.NewClient(esCtx, es.Config{
			URL:      cfg.ElasticURL,
			User:     cfg.ElasticUser,
			Password: cfg.ElasticPassword,
			Index:    cfg.ElasticIndex,
		})
		esCancel()
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index = es.NewArtworkIndex(client, cfg.ElasticIndex)
	}

	var verifier middleware.Verifier
	if len(cfg.JWTAccessSecret) > 0 {
		verifier = tokens.NewLocalVerifier(cfg.JWTAccessSecret)
	} else {
		verifier = authclient.NewClient(cfg.AuthHTTPURL)
	}

	catalog := service.NewCatalogService(store, index, events, cfg.MaxLatestLimit)
	orders := service.NewOrderService(store, store, events, service.OrderConfig{
		StrictStatus: cfg.StrictOrderStatus,
		VerifyTotal:  cfg.VerifyOrderTotal,
	})

	deps := &httpserver.Deps{
		ArtworkHandler: &httpserver.ArtworkHTTP{Svc: catalog},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orders},
		Verifier:       verifier,
		Ready:          func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
	}
	if len(cfg.JWTAccessSecret) > 0 {
		deps.AuthHandler = &httpserver.AuthHTTP{Svc: &service.AuthService{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
			Secret:       cfg.JWTAccessSecret,
		}}
	}

	corsCfg := echomw.DefaultCORSConfig
	if len(cfg.FrontendURLs) > 0 {
		corsCfg.AllowOrigins = cfg.FrontendURLs
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(observability.EchoTracing())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(corsCfg))
	e.Use(echomw.BodyLimit("10M"))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing_shutdown_error", "error", err)
	}

	logger.Info("server_stopped")
}
