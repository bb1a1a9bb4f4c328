// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Komik HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the object storage client.
//  7. Start the catalog event transport (NATS or in-process).
//  8. Wire domain services and HTTP handlers.
//  9. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/komik/internal/api"
	"github.com/taibuivan/komik/internal/core/chapter"
	"github.com/taibuivan/komik/internal/core/comic"
	"github.com/taibuivan/komik/internal/core/genre"
	"github.com/taibuivan/komik/internal/platform/config"
	"github.com/taibuivan/komik/internal/platform/constants"
	"github.com/taibuivan/komik/internal/platform/events"
	"github.com/taibuivan/komik/internal/platform/migration"
	pgstore "github.com/taibuivan/komik/internal/platform/postgres"
	redisstore "github.com/taibuivan/komik/internal/platform/redis"
	"github.com/taibuivan/komik/internal/platform/sec"
	"github.com/taibuivan/komik/internal/platform/storage"
	"github.com/taibuivan/komik/internal/reader"
	"github.com/taibuivan/komik/internal/users/account"
	"github.com/taibuivan/komik/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "komik"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "komik"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("nats", cfg.EventsEnabled()),
	)

	// Root context lives until SIGTERM/SIGINT; background workers stop with it.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, redisstore.Options{URL: cfg.RedisURL, PoolSize: cfg.RedisPoolSize}, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(rootCtx, cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Object Storage ─────────────────────────────────────────────────
	objectStore, err := storage.NewMinioStore(storage.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PublicURL: cfg.S3PublicURL,
	}, log)
	must(log, err, "initialize object storage")

	// ── 7. Catalog Events ─────────────────────────────────────────────────
	hub := events.NewHub(func(request *http.Request) bool {
		return cfg.IsDevelopment() || cfg.IsOriginAllowed(request.Header.Get(constants.HeaderOrigin))
	}, log)
	go hub.Run(rootCtx)

	var publisher events.Publisher = hub
	var checkEvents api.Check

	if cfg.EventsEnabled() {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, log)
		must(log, err, "connect event publisher")
		defer natsPublisher.Close()

		subscriber, err := events.NewNATSSubscriber(cfg.NATSURL, hub.Deliver, log)
		must(log, err, "subscribe to catalog events")
		defer subscriber.Close()

		publisher = natsPublisher
		checkEvents = natsPublisher.Ping
	}

	// ── 8. Security & Health ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context context.Context) error {
			return pgstore.Ping(context, pool)
		},
		CheckCache: func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		},
		CheckStorage: func(context context.Context) error {
			return objectStore.Ping(context, cfg.S3CoverBucket)
		},
		CheckEvents: checkEvents,
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	genreService := genre.NewService(genre.NewPostgresRepository(pool), publisher, log)
	chapterService := chapter.NewService(chapter.NewPostgresRepository(pool), objectStore, cfg.S3PageBucket, publisher, log)
	comicService := comic.NewService(comic.NewPostgresRepository(pool), chapterService, objectStore, cfg.S3CoverBucket, publisher, log)

	readerService := reader.NewService(
		reader.NewCatalogLoader(comicService, chapterService),
		reader.NewRedisSessionStore(rdb, cfg.ReaderSessionTTL),
		log,
	)

	authService := auth.NewService(auth.NewUserRepository(pool), auth.NewSessionRepository(rdb), jwtSvc, log)
	accountService := account.NewService(account.NewPostgresRepository(pool), log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Comic:     comic.NewHandler(comicService),
		Chapter:   chapter.NewHandler(chapterService),
		Genre:     genre.NewHandler(genreService),
		Reader:    reader.NewHandler(readerService),
		Account:   account.NewHandler(accountService),
		Events:    hub,
	}

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	stop()
	<-hub.Done()
	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
