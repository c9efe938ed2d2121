package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "eatery_catalog/internal/adapters/http_server"
	"eatery_catalog/internal/adapters/observability"
	redisad "eatery_catalog/internal/adapters/redis"
	"eatery_catalog/internal/app"
	"eatery_catalog/internal/domain"
	"eatery_catalog/internal/shared"
	"eatery_catalog/internal/storage"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// catalog: built once, before any traffic
	src, closeSrc, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open catalog source failed")
	}
	cat, report, err := app.NewLoader(src, cfg.Workers, log.Logger).Load(ctx)
	if cerr := closeSrc(); cerr != nil {
		log.Warn().Err(cerr).Msg("close catalog source")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}
	if len(report.Dropped) > 0 {
		log.Warn().Int("dropped", len(report.Dropped)).Msg("some blobs were not loaded; run cmd/validate for details")
	}

	// cache (optional)
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; searches fall back to the catalog")
		}
		cache = rc
	}
	q := app.NewQueryService(cat, cache, cfg.CacheTTL)

	// http
	srv := server.New(server.Options{
		Timeout:      cfg.RequestTimeout,
		RateLimitRPS: cfg.RateLimitRPS,
		Logger:       log.Logger,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Int("eateries", cat.Len()).Msg("API listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
		os.Exit(1)
	}
}
