// Command api serves the nocturnal HTTP API.
//
// @title                       Nocturnal API
// @version                     1.0
// @description                 Users and messages backed by MongoDB.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by an admin token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nocturnal/nocturnal-api/internal/api"
	"github.com/nocturnal/nocturnal-api/internal/api/handler"
	"github.com/nocturnal/nocturnal-api/internal/core/ports"
	"github.com/nocturnal/nocturnal-api/internal/core/service"
	"github.com/nocturnal/nocturnal-api/internal/infrastructure/config"
	mongodb "github.com/nocturnal/nocturnal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nocturnal/nocturnal-api/internal/infrastructure/db/redis"
	"github.com/nocturnal/nocturnal-api/pkg/logger"
)

const (
	serviceName     = "nocturnal-api"
	shutdownTimeout = 10 * time.Second
	indexTimeout    = 30 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	conn, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := conn.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("close mongo")
		}
	}()

	users := mongodb.NewUserRepository(conn)
	messages := mongodb.NewMessageRepository(conn)
	ensureIndexes(ctx, log, users, messages)

	checks := map[string]handler.Checker{"mongodb": conn}

	// A nil interface disables idempotency in the message service.
	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, idempotency disabled")
		} else {
			defer rdb.Close()
			idem = redisdb.NewIdempotencyStore(rdb, "messages", cfg.Idempotency.TTL)
			checks["redis"] = handler.CheckFunc(func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			})
		}
	}

	if cfg.JWTSecret == "" {
		log.Info().Msg("JWT_SECRET not set, admin routes disabled")
	}

	e := api.NewRouter(api.Deps{
		Users:     service.NewUserService(users, log.With().Str("component", "users").Logger()),
		Messages:  service.NewMessageService(messages, idem, log.With().Str("component", "messages").Logger()),
		Checks:    checks,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// ensureIndexes is best effort; the API still serves if the store rejects an index.
func ensureIndexes(ctx context.Context, log zerolog.Logger, repos ...indexer) {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("ensure indexes")
		}
	}
}
