// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/linhtinhlt/foodreview/internal/logging"
	"github.com/linhtinhlt/foodreview/internal/metrics"
	"github.com/linhtinhlt/foodreview/internal/models"
	"github.com/linhtinhlt/foodreview/internal/recommend"
)

// recommendationParams are the validated query parameters of the
// recommendations endpoint.
type recommendationParams struct {
	UserID     int `validate:"required,min=1"`
	TopN       int `validate:"min=0,max=100"`
	MinRatings int `validate:"min=0"`
}

// handleRecommendations serves GET /api/v1/recommendations.
//
// Query parameters: user_id (required), top_n, alpha_cf, alpha_cbf,
// min_ratings. Responds 503 MODEL_NOT_READY until the first training
// pass has published a snapshot.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	params := recommendationParams{
		UserID:     getIntParam(r, "user_id", 0),
		TopN:       getIntParam(r, "top_n", 0),
		MinRatings: getIntParam(r, "min_ratings", 0),
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	req := recommend.Request{
		UserID:     params.UserID,
		TopN:       params.TopN,
		AlphaCF:    getFloatParam(r, "alpha_cf"),
		AlphaCBF:   getFloatParam(r, "alpha_cbf"),
		MinRatings: params.MinRatings,
	}

	start := time.Now()
	results, err := s.engine.Recommend(r.Context(), req)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, recommend.ErrModelNotReady):
		metrics.RecordRecommendation("not_ready", elapsed)
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY",
			"recommendation model is still training, retry later", nil)
		return
	case err != nil:
		metrics.RecordRecommendation("error", elapsed)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to compute recommendations", err)
		return
	}

	metrics.RecordRecommendation("success", elapsed)
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.RecommendationsPayload{
			UserID:          params.UserID,
			Recommendations: results,
			Count:           len(results),
		},
		Metadata: models.Metadata{
			Timestamp:     time.Now(),
			ComputeTimeMS: elapsed.Milliseconds(),
			RequestID:     logging.RequestID(r.Context()),
		},
	})
}

// handleRecommendationStatus serves GET /api/v1/recommendations/status.
func (s *Server) handleRecommendationStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   s.engine.Status(),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			RequestID: logging.RequestID(r.Context()),
		},
	})
}
