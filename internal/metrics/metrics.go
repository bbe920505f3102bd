// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

// Package metrics exposes Prometheus instrumentation for the
// recommendation service: training cycles, model freshness, query
// latency, and request outcomes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Training cycle metrics
	RefreshTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_refresh_total",
			Help: "Total number of completed training cycles",
		},
	)

	RefreshFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_refresh_failures_total",
			Help: "Total number of failed training cycles",
		},
	)

	RefreshSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_refresh_skipped_total",
			Help: "Training cycles skipped because the source tables were empty",
		},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_refresh_duration_seconds",
			Help:    "Duration of one training cycle in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// Model freshness and size
	ModelRestaurants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_restaurants",
			Help: "Catalog size of the published snapshot",
		},
	)

	ModelInteractions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_interactions",
			Help: "Aggregated interaction rows in the published snapshot",
		},
	)

	ModelAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_age_seconds",
			Help: "Seconds since the published snapshot was built",
		},
	)

	// Recommendation serving metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_request_duration_seconds",
			Help:    "Recommendation computation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mysql_query_duration_seconds",
			Help:    "Duration of MySQL queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mysql_query_errors_total",
			Help: "Total number of MySQL query errors",
		},
		[]string{"table"},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordRefresh updates the training counters for one finished cycle.
func RecordRefresh(duration time.Duration, err error) {
	RefreshDuration.Observe(duration.Seconds())
	if err != nil {
		RefreshFailures.Inc()
		return
	}
	RefreshTotal.Inc()
}

// RecordModel updates the snapshot gauges after a publish.
func RecordModel(restaurants, interactions int, builtAt time.Time) {
	ModelRestaurants.Set(float64(restaurants))
	ModelInteractions.Set(float64(interactions))
	ModelAge.Set(time.Since(builtAt).Seconds())
}

// RecordDBQuery times one query against a source table.
func RecordDBQuery(table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(table).Inc()
	}
}

// RecordRecommendation counts one recommendation request.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
