// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

// Package services provides suture service wrappers around the
// long-running application components.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/linhtinhlt/foodreview/internal/metrics"
	"github.com/linhtinhlt/foodreview/internal/recommend"
)

// ModelTrainer runs one training cycle. Defined locally so the service
// wrapper does not depend on the trainer's concrete type.
type ModelTrainer interface {
	Refresh(ctx context.Context) error
}

// ModelStatus reports the published snapshot, used to keep the model
// gauges current.
type ModelStatus interface {
	Summary() recommend.Summary
}

// TrainerServiceConfig holds the training loop configuration.
type TrainerServiceConfig struct {
	// TrainOnStartup runs the first cycle immediately.
	TrainOnStartup bool

	// Interval is the pause between cycles.
	Interval time.Duration
}

// TrainerService drives the periodic training loop under supervision.
// A failing cycle is logged and counted, never fatal: the loop keeps
// running and the previous snapshot keeps serving.
type TrainerService struct {
	trainer ModelTrainer
	status  ModelStatus
	config  TrainerServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewTrainerService creates the training loop service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainerService(trainer ModelTrainer, status ModelStatus, cfg TrainerServiceConfig, logger zerolog.Logger) *TrainerService {
	return &TrainerService{
		trainer: trainer,
		status:  status,
		config:  cfg,
		logger:  logger.With().Str("service", "trainer").Logger(),
		name:    "trainer-service",
	}
}

// Serve implements suture.Service.
func (s *TrainerService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.config.Interval = 60 * time.Second
	}

	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("interval", s.config.Interval).
		Msg("trainer service starting")

	if s.config.TrainOnStartup {
		s.cycle(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trainer service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

func (s *TrainerService) cycle(ctx context.Context) {
	start := time.Now()
	err := s.trainer.Refresh(ctx)
	metrics.RecordRefresh(time.Since(start), err)
	if err != nil {
		s.logger.Warn().Err(err).Msg("training cycle failed (will retry on schedule)")
		return
	}

	sum := s.status.Summary()
	if sum.LastUpdate != nil {
		metrics.RecordModel(sum.RestaurantCount, sum.InteractionCount, *sum.LastUpdate)
	} else {
		metrics.RefreshSkipped.Inc()
	}
}

// String returns the service name for supervisor logs.
func (s *TrainerService) String() string {
	return s.name
}
