// Command api runs the NC Issues civic engagement API.
//
// @title        NC Issues API
// @version      1.0
// @description  Legislative tracking and civic engagement for North Carolina.
// @BasePath     /
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ncissues/civic-api/internal/api"
	"github.com/ncissues/civic-api/internal/infrastructure/db/mongo"
	"github.com/ncissues/civic-api/internal/infrastructure/db/redis"
	"github.com/ncissues/civic-api/internal/infrastructure/queue"
	"github.com/ncissues/civic-api/internal/pkg/config"
	"github.com/ncissues/civic-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	recorder := queue.NewRecorder(0, mongo.NewActivityRepository(db), log)
	recorder.Start(ctx)

	e, services := api.NewRouter(db, rdb, mongoClient, api.RouterConfig{
		JWTSecret:    cfg.JWTSecret,
		CookieSecure: cfg.CookieSecure || cfg.IsProduction(),
		Activity:     recorder,
		Log:          log,
	})

	// Periodically fold buffered view counts back into the issue store.
	flushEvery := time.Duration(cfg.ViewFlushSeconds) * time.Second
	go func() {
		ticker := time.NewTicker(flushEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				services.Issues.FlushViews(ctx)
			}
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// One final flush so buffered views survive restarts.
	services.Issues.FlushViews(shutdownCtx)
}
