package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/raceops/race-weekend-api/internal/api"
	"github.com/raceops/race-weekend-api/internal/core/domain"
	"github.com/raceops/race-weekend-api/internal/infrastructure/config"
	mongorepo "github.com/raceops/race-weekend-api/internal/infrastructure/db/mongo"
	redisstore "github.com/raceops/race-weekend-api/internal/infrastructure/db/redis"
	"github.com/raceops/race-weekend-api/internal/infrastructure/queue"
	"github.com/raceops/race-weekend-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Race Weekend API
// @version      1.0
// @description  Checklist and task management for race weekend operations.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	if email := cfg.Auth.BootstrapAdminEmail; email != "" {
		authRepo := mongorepo.NewAuthRepository(db)
		switch err := authRepo.PromoteToAdmin(ctx, email); {
		case errors.Is(err, domain.ErrUserNotFound):
			log.Warn().Str("email", email).Msg("bootstrap admin account not registered yet")
		case err != nil:
			log.Fatal().Err(err).Msg("bootstrap admin")
		default:
			log.Info().Str("email", email).Msg("bootstrap admin promoted")
		}
	}

	dispatcher := queue.NewDispatcher(0, queue.NewLogNotifier(log), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.RouterDeps{
		DB:         db,
		Redis:      rdb,
		Config:     cfg,
		Logger:     log,
		Dispatcher: dispatcher,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
