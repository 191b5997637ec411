package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sabaihub/booking-web/internal/api"
	"github.com/sabaihub/booking-web/internal/core/ports"
	"github.com/sabaihub/booking-web/internal/infrastructure/backend"
	"github.com/sabaihub/booking-web/internal/infrastructure/cache"
	"github.com/sabaihub/booking-web/internal/infrastructure/config"
	"github.com/sabaihub/booking-web/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "booking-web",
		Pretty:  cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Msg("starting booking-web")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is an accelerator, not a dependency: when it is down the
	// service runs uncached.
	var sessionCache ports.SessionCache = cache.NoopSession{}
	var catalogCache ports.CatalogCache = cache.NoopCatalog{}
	rdb, err := cache.Connect(ctx, cache.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, caching disabled")
		rdb = nil
	} else {
		sessionCache = cache.NewSessionCache(rdb, cfg.Session.CacheTTL, log)
		catalogCache = cache.NewCatalogCache(rdb, cfg.Session.CatalogTTL, log)
	}

	backendClient := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	e := api.NewRouter(api.Dependencies{
		Backend:      backendClient,
		Redis:        rdb,
		SessionCache: sessionCache,
		CatalogCache: catalogCache,
		Config:       cfg,
		Logger:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
