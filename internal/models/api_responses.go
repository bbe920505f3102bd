// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

// Package models holds the wire types shared by the HTTP handlers.
package models

import "time"

// APIResponse is the response envelope used by every endpoint.
//
// Status is "success" or "error". Data carries the payload on success;
// Error is populated only on failure.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [...]},
//	  "metadata": {"timestamp": "2026-08-30T12:00:00Z", "compute_time_ms": 4}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp     time.Time `json:"timestamp"`
	ComputeTimeMS int64     `json:"compute_time_ms,omitempty"`
	RequestID     string    `json:"request_id,omitempty"`
}

// APIError is the structured error body.
//
// Codes used by the service:
//   - VALIDATION_ERROR: invalid request parameters
//   - MODEL_NOT_READY: no snapshot published yet, retry later
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendationsPayload is the data body of a recommendation response.
type RecommendationsPayload struct {
	UserID          int         `json:"user_id"`
	Recommendations interface{} `json:"recommendations"`
	Count           int         `json:"count"`
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status     string     `json:"status"`
	Version    string     `json:"version,omitempty"`
	Database   string     `json:"database,omitempty"`
	ModelReady bool       `json:"model_ready"`
	LastUpdate *time.Time `json:"last_update"`
}
