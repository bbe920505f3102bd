// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/linhtinhlt/foodreview/internal/recommend"
)

func testServer(t *testing.T, ready bool) *Server {
	t.Helper()
	store := recommend.NewModelStore()
	if ready {
		restaurants := []recommend.Restaurant{
			{ID: 1, Name: "Pho House", Description: "beef noodle soup"},
			{ID: 2, Name: "Pho Corner", Description: "chicken noodle"},
			{ID: 3, Name: "Sushi Bar", Description: "fresh fish"},
		}
		interactions := []recommend.Interaction{
			{UserID: 1, RestaurantID: 1, Rating: 5},
			{UserID: 2, RestaurantID: 2, Rating: 4},
			{UserID: 2, RestaurantID: 3, Rating: 3},
		}
		features, err := recommend.BuildFeatureMatrix(restaurants, nil)
		if err != nil {
			t.Fatalf("BuildFeatureMatrix() error = %v", err)
		}
		store.Publish(recommend.NewSnapshot(restaurants, interactions, features, recommend.BuildUserItemMatrix(interactions)))
	}
	engine := recommend.NewEngine(store, recommend.DefaultConfig(), zerolog.Nop())
	return NewServer(engine, nil, "test", zerolog.Nop())
}

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error { return p.err }

func doRequest(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v\n%s", err, rec.Body.String())
	}
	return rec, body
}

func TestRecommendationsValidation(t *testing.T) {
	s := testServer(t, true)

	tests := []struct {
		name string
		path string
	}{
		{name: "missing user_id", path: "/api/v1/recommendations"},
		{name: "non-numeric user_id", path: "/api/v1/recommendations?user_id=abc"},
		{name: "negative user_id", path: "/api/v1/recommendations?user_id=-3"},
		{name: "oversized top_n", path: "/api/v1/recommendations?user_id=1&top_n=5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doRequest(t, s, tt.path)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			errObj, _ := body["error"].(map[string]interface{})
			if errObj == nil || errObj["code"] != "VALIDATION_ERROR" {
				t.Errorf("error = %v, want VALIDATION_ERROR", body["error"])
			}
		})
	}
}

func TestRecommendationsNotReady(t *testing.T) {
	s := testServer(t, false)

	rec, body := doRequest(t, s, "/api/v1/recommendations?user_id=1")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	errObj, _ := body["error"].(map[string]interface{})
	if errObj == nil || errObj["code"] != "MODEL_NOT_READY" {
		t.Errorf("error = %v, want MODEL_NOT_READY", body["error"])
	}
}

func TestRecommendationsSuccess(t *testing.T) {
	s := testServer(t, true)

	rec, body := doRequest(t, s, "/api/v1/recommendations?user_id=1&top_n=2&alpha_cf=0.5&alpha_cbf=0.5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if body["status"] != "success" {
		t.Errorf("status field = %v, want success", body["status"])
	}

	data, _ := body["data"].(map[string]interface{})
	if data == nil {
		t.Fatal("response missing data")
	}
	if data["user_id"] != float64(1) {
		t.Errorf("user_id = %v, want 1", data["user_id"])
	}
	recs, _ := data["recommendations"].([]interface{})
	if len(recs) == 0 || len(recs) > 2 {
		t.Errorf("recommendations len = %d, want 1..2", len(recs))
	}
	for _, raw := range recs {
		item, _ := raw.(map[string]interface{})
		if item["id"] == float64(1) {
			t.Error("already rated restaurant 1 present in response")
		}
		if item["name"] == "" {
			t.Error("recommendation with empty name")
		}
	}
}

func TestRecommendationStatus(t *testing.T) {
	s := testServer(t, true)

	rec, body := doRequest(t, s, "/api/v1/recommendations/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data, _ := body["data"].(map[string]interface{})
	if data == nil {
		t.Fatal("response missing data")
	}
	if data["restaurants"] != float64(3) {
		t.Errorf("restaurants = %v, want 3", data["restaurants"])
	}
	if data["feature_matrix_ready"] != true {
		t.Errorf("feature_matrix_ready = %v, want true", data["feature_matrix_ready"])
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		wantStatus string
	}{
		{name: "model ready", ready: true, wantStatus: "ok"},
		{name: "model training", ready: false, wantStatus: "starting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t, tt.ready)
			rec, body := doRequest(t, s, "/health")
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			data, _ := body["data"].(map[string]interface{})
			if data == nil || data["status"] != tt.wantStatus {
				t.Errorf("health status = %v, want %q", body["data"], tt.wantStatus)
			}
		})
	}
}

func TestHealthDatabase(t *testing.T) {
	tests := []struct {
		name         string
		pingErr      error
		wantStatus   string
		wantDatabase string
	}{
		{name: "database reachable", pingErr: nil, wantStatus: "ok", wantDatabase: "ok"},
		{name: "database down", pingErr: errors.New("dial tcp: refused"), wantStatus: "degraded", wantDatabase: "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t, true)
			s.pinger = &fakePinger{err: tt.pingErr}

			rec, body := doRequest(t, s, "/health")
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			data, _ := body["data"].(map[string]interface{})
			if data == nil {
				t.Fatal("response missing data")
			}
			if data["status"] != tt.wantStatus {
				t.Errorf("health status = %v, want %q", data["status"], tt.wantStatus)
			}
			if data["database"] != tt.wantDatabase {
				t.Errorf("database = %v, want %q", data["database"], tt.wantDatabase)
			}
		})
	}
}

func TestRequestIDEcho(t *testing.T) {
	s := testServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "trace-42" {
		t.Errorf("X-Request-ID = %q, want trace-42", got)
	}

	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("no generated X-Request-ID on response")
	}
}
