// Command api serves the comedy booking platform HTTP API.
//
// @title                       Comedy Booking API
// @version                     1.0
// @description                 Accounts, performer profiles, show listings and image uploads for the comedy booking platform.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/laughline/booking-api/internal/api"
	"github.com/laughline/booking-api/internal/api/handler"
	"github.com/laughline/booking-api/internal/core/ports"
	"github.com/laughline/booking-api/internal/core/service"
	mongodb "github.com/laughline/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/laughline/booking-api/internal/infrastructure/db/redis"
	"github.com/laughline/booking-api/internal/infrastructure/imageproc"
	"github.com/laughline/booking-api/internal/infrastructure/sentry"
	"github.com/laughline/booking-api/internal/infrastructure/storage"
	"github.com/laughline/booking-api/internal/pkg/config"
	"github.com/laughline/booking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level: cfg.LogLevel,
		Env:   cfg.Env,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("application failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Document store
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	accounts := mongodb.NewAccountRepository(db)
	profiles := mongodb.NewProfileRepository(db)
	shows := mongodb.NewShowRepository(db)
	if err := mongodb.EnsureIndexes(ctx, accounts, profiles, shows); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	health := map[string]handler.Pinger{"mongo": mongodb.Pinger{Client: client}}

	// 2. Submission dedup (optional)
	var dedup ports.SubmissionDedup
	if cfg.Redis.Enabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, idempotency keys disabled")
		} else {
			defer rdb.Close()
			dedup = redisdb.NewSubmissionDedup(rdb)
			health["redis"] = redisdb.Pinger{Client: rdb}
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	// 3. Object storage
	store, err := storage.New(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		return err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return err
	}
	health["storage"] = store

	// 4. Error reporting
	reporter := sentry.New(sentry.Config{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Env,
		Release:     cfg.Sentry.Release,
	}, log)
	defer reporter.Flush(2 * time.Second)

	// 5. Services
	sessions := service.NewSessionIssuer(cfg.Session.Secret, cfg.Session.TTL)
	log.Info().Dur("session_ttl", sessions.TTL()).Msg("session issuer ready")
	router := api.NewRouter(api.Dependencies{
		Log:      log,
		Reporter: reporter,
		Auth:     service.NewAuthService(accounts, sessions, log),
		Sessions: sessions,
		Profiles: service.NewProfileService(profiles, log),
		Shows:    service.NewShowService(shows, accounts, dedup, log),
		Images:   service.NewImageService(imageproc.New(), store, cfg.PublicBaseURL, log),
		Cookie: handler.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: !cfg.IsDevelopment(),
		},
		Health: health,
	})

	// 6. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("graceful shutdown complete")
	return nil
}
