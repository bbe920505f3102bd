// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/linhtinhlt/foodreview/internal/models"
)

const healthPingTimeout = 2 * time.Second

// handleHealth serves GET /health. The service is "ok" once a snapshot
// is published and "starting" before that; an unreachable database
// degrades the status but the code stays 200 because the process is
// alive and an existing snapshot still serves.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sum := s.engine.Status()
	status := "ok"
	if !sum.FeatureMatrixReady {
		status = "starting"
	}

	database := ""
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			database = "unreachable"
			if status == "ok" {
				status = "degraded"
			}
			s.logger.Warn().Err(err).Msg("health check database ping failed")
		} else {
			database = "ok"
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:     status,
			Version:    s.version,
			Database:   database,
			ModelReady: sum.FeatureMatrixReady,
			LastUpdate: sum.LastUpdate,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
