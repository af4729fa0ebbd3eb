package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sktech/account-gateway/internal/api"
	"github.com/sktech/account-gateway/internal/core/service"
	mongodb "github.com/sktech/account-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/sktech/account-gateway/internal/infrastructure/db/redis"
	"github.com/sktech/account-gateway/internal/infrastructure/queue"
	"github.com/sktech/account-gateway/internal/pkg/config"
	"github.com/sktech/account-gateway/pkg/logger"
)

const auditWorkers = 4

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("configuration load failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Refuse to start without the token secret or redirect target.
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// Idempotent: re-running never duplicates a role.
	provisioner := service.NewProvisioner(mongodb.NewRoleRepository(db), log)
	if err := provisioner.EnsureDefaultRoles(ctx); err != nil {
		log.Fatal().Err(err).Msg("default role provisioning failed")
	}

	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	auditDispatcher := queue.NewDispatcher(auditWorkers, auditService, log)
	auditDispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, auditDispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("account gateway listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
