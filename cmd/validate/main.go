// Command validate loads a catalog source the same way the API does and
// prints the load report as JSON. Exit status: 0 clean, 1 some blobs
// dropped, 2 source unusable.
//
//	validate [dir]
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"eatery_catalog/internal/adapters/observability"
	"eatery_catalog/internal/app"
	"eatery_catalog/internal/shared"
	"eatery_catalog/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Error().Err(err).Msg("config")
		return 2
	}
	if len(os.Args) > 1 {
		cfg.CatalogSource = shared.SourceDir
		cfg.CatalogDir = os.Args[1]
	}

	// logs go to stderr so stdout stays pure JSON
	logger := observability.NewLogger(cfg.AppEnv, cfg.LogLevel).Output(zerolog.ConsoleWriter{Out: os.Stderr})
	log.Logger = logger

	src, closeSrc, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("open catalog source failed")
		return 2
	}
	defer func() { _ = closeSrc() }()

	logger.Info().Str("source", src.String()).Int("workers", cfg.Workers).Msg("validate starting")

	_, report, err := app.NewLoader(src, cfg.Workers, logger).Load(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("catalog load failed")
		return 2
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error().Err(err).Msg("write report")
		return 2
	}

	if len(report.Dropped) > 0 {
		return 1
	}
	return 0
}
