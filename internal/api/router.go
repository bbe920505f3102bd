// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

// Package api implements the HTTP serving layer: routing, parameter
// validation, error-to-status mapping, and JSON serialization. The
// recommendation engine itself lives in internal/recommend; this
// package only adapts it to the wire.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/linhtinhlt/foodreview/internal/recommend"
)

// Pinger reports whether the backing database is reachable. The health
// endpoint degrades gracefully when it is nil.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the handler dependencies.
type Server struct {
	engine  *recommend.Engine
	pinger  Pinger
	logger  zerolog.Logger
	version string
}

// NewServer creates the HTTP serving layer over an engine.
func NewServer(engine *recommend.Engine, pinger Pinger, version string, logger zerolog.Logger) *Server {
	return &Server{
		engine:  engine,
		pinger:  pinger,
		logger:  logger.With().Str("component", "api").Logger(),
		version: version,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recommendations", s.handleRecommendations)
		r.Get("/recommendations/status", s.handleRecommendationStatus)
	})

	return r
}
