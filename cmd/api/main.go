// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// Command api is the entry point for the Veridoc HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the token codec and seed the admin account.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/veridoc/veridoc/internal/api"
	"github.com/veridoc/veridoc/internal/audit"
	"github.com/veridoc/veridoc/internal/platform/config"
	"github.com/veridoc/veridoc/internal/platform/constants"
	"github.com/veridoc/veridoc/internal/platform/migration"
	pgstore "github.com/veridoc/veridoc/internal/platform/postgres"
	redisstore "github.com/veridoc/veridoc/internal/platform/redis"
	"github.com/veridoc/veridoc/internal/platform/sec"
	"github.com/veridoc/veridoc/internal/users/admin"
	"github.com/veridoc/veridoc/internal/users/auth"
	"github.com/veridoc/veridoc/internal/verify/document"
	"github.com/veridoc/veridoc/internal/verify/verification"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Veridoc] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application-lifetime context for background middleware workers.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Codec ────────────────────────────────────────────────────
	tokenCodec, err := sec.NewTokenCodec(cfg.SecretKey, cfg.JWTAlgorithm, constants.AuthIssuer, cfg.AccessTokenTTL())
	must(log, err, "initialize token codec")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	eventRepository := audit.NewEventRepository(pool)
	auditRecorder := audit.NewRecorder(eventRepository, log)
	auditHandler := audit.NewHandler(auditRecorder)

	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokenCodec, auditRecorder)
	authHandler := auth.NewHandler(authService)

	// Seed the superuser account so a fresh deployment is administrable.
	must(log, authService.EnsureAdmin(startupCtx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword), "seed admin account")

	adminService := admin.NewService(userRepository, auditRecorder, log)
	adminHandler := admin.NewHandler(adminService)

	documentRepository := document.NewDocumentRepository(pool)
	documentService := document.NewService(documentRepository, auditRecorder, log)
	documentHandler := document.NewHandler(documentService)

	verificationRepository := verification.NewVerificationRepository(pool)
	statusCache := verification.NewStatusCache(rdb, log)
	verificationService := verification.NewService(verificationRepository, documentRepository, statusCache, auditRecorder, log)
	verificationHandler := verification.NewHandler(verificationService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Document:     documentHandler,
		Verification: verificationHandler,
		AdminUser:    adminHandler,
		Audit:        auditHandler,
	}

	server := api.NewServer(appCtx, cfg, log, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
