package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itemdesk/item-registry/internal/api"
	"github.com/itemdesk/item-registry/internal/core/service"
	"github.com/itemdesk/item-registry/internal/infrastructure/config"
	"github.com/itemdesk/item-registry/internal/infrastructure/db/postgres"
	redisdb "github.com/itemdesk/item-registry/internal/infrastructure/db/redis"
	"github.com/itemdesk/item-registry/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer func() { _ = rdb.Close() }()

	// --- Services ---
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	authSvc := service.NewAuthService(userRepo, sessions, cfg.JWTSecret, cfg.SessionTTL, log)
	itemSvc := service.NewItemService(itemRepo, log)
	userSvc := service.NewUserService(userRepo, log)

	if err := userSvc.EnsureAdmin(ctx, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed admin account")
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Logger:    log,
		Auth:      authSvc,
		Items:     itemSvc,
		Users:     userSvc,
		Sessions:  sessions,
		CookieTTL: cfg.SessionTTL,
		DB:        pool,
		Redis:     rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
