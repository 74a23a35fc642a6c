package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cryptodata/crypto-data-api/internal/api"
	"github.com/cryptodata/crypto-data-api/internal/core/service"
	"github.com/cryptodata/crypto-data-api/internal/infrastructure/config"
	mongodb "github.com/cryptodata/crypto-data-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cryptodata/crypto-data-api/internal/infrastructure/db/redis"
	"github.com/cryptodata/crypto-data-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; the config error is the only output.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.Registration.Enabled {
		if cfg.Registration.Secret == "" {
			log.Warn().Msg("registration enabled without REGISTRATION_SECRET; registration is effectively disabled")
		}
		if cfg.Registration.AdminSecret != "" && cfg.Registration.AdminSecret == cfg.Registration.Secret {
			log.Warn().Msg("ADMIN_REGISTRATION_SECRET equals REGISTRATION_SECRET; any registrant can self-elevate")
		}
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	tokens, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TokenTTL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("token service init failed")
	}

	e := api.NewRouter(cfg, db, rdb, tokens, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("crypto data API listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
