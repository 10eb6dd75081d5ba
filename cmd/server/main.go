package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/makersmarket/marketplace-api/internal/api"
	"github.com/makersmarket/marketplace-api/internal/core/service"
	mongostore "github.com/makersmarket/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/makersmarket/marketplace-api/internal/infrastructure/db/redis"
	"github.com/makersmarket/marketplace-api/internal/pkg/config"
	"github.com/makersmarket/marketplace-api/pkg/logger"
)

// @title        Makers Market API
// @version      1.0
// @description  Marketplace backend: accounts, creator approval, referral links and the product catalog.
// @BasePath     /
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// Seed the admin account only when a password is provided; there is no
	// built-in default credential.
	if cfg.Admin.Password == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, skipping admin account seeding")
	} else {
		userRepo := mongostore.NewUserRepository(db)
		if err := service.EnsureAdmin(ctx, userRepo, cfg.Admin.Email, cfg.Admin.Password, log); err != nil {
			log.Fatal().Err(err).Msg("admin seeding failed")
		}
	}

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("marketplace api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
