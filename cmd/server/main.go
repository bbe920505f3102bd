// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

// Command server runs the restaurant recommendation service: a
// supervised training loop that rebuilds the hybrid model from MySQL,
// and an HTTP API serving recommendations from the latest snapshot.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/linhtinhlt/foodreview/internal/api"
	"github.com/linhtinhlt/foodreview/internal/config"
	"github.com/linhtinhlt/foodreview/internal/datasource"
	"github.com/linhtinhlt/foodreview/internal/logging"
	"github.com/linhtinhlt/foodreview/internal/recommend"
	"github.com/linhtinhlt/foodreview/internal/supervisor"
	"github.com/linhtinhlt/foodreview/internal/supervisor/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logger.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Dur("refresh_interval", cfg.Recommend.RefreshInterval).
		Msg("foodreview recommender starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := datasource.Open(ctx, cfg.Database, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	store := recommend.NewModelStore()
	trainer := recommend.NewTrainer(db, store, logger)
	engine := recommend.NewEngine(store, recommend.Config{
		Neighbors:   cfg.Recommend.Neighbors,
		Oversample:  cfg.Recommend.Oversample,
		AlphaCF:     cfg.Recommend.AlphaCF,
		AlphaCBF:    cfg.Recommend.AlphaCBF,
		DefaultTopN: cfg.Recommend.DefaultTopN,
		MaxTopN:     cfg.Recommend.MaxTopN,
	}, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewServer(engine, db, version, logger).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddTrainingService(services.NewTrainerService(trainer, store, services.TrainerServiceConfig{
		TrainOnStartup: cfg.Recommend.TrainOnStartup,
		Interval:       cfg.Recommend.RefreshInterval,
	}, logger))
	tree.AddAPIService(services.NewHTTPService(httpServer, cfg.Server.ShutdownTimeout, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("supervisor tree terminated")
	}
	logger.Info().Msg("foodreview recommender stopped")
}
