// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

// Package datasource implements the trainer's data contract against the
// MySQL database backing the review platform. Likes and comments attach
// to reviews, so their restaurant is resolved through a join; favorites
// and implicit behaviors carry fixed ratings assigned in SQL.
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/linhtinhlt/foodreview/internal/config"
	"github.com/linhtinhlt/foodreview/internal/metrics"
	"github.com/linhtinhlt/foodreview/internal/recommend"
)

// MySQL provides the raw model tables from the platform database. It
// implements recommend.DataSource.
type MySQL struct {
	db     *sql.DB
	logger zerolog.Logger
}

var _ recommend.DataSource = (*MySQL)(nil)

// Open connects to MySQL with the configured pool limits and verifies
// the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*MySQL, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	return &MySQL{
		db:     db,
		logger: logger.With().Str("component", "datasource").Logger(),
	}, nil
}

// Close releases the connection pool.
func (m *MySQL) Close() error {
	return m.db.Close()
}

// Ping verifies the pool can still reach the database.
func (m *MySQL) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

// Restaurants returns the full catalog. Null categories and
// descriptions collapse to their zero values.
func (m *MySQL) Restaurants(ctx context.Context) ([]recommend.Restaurant, error) {
	const query = `
		SELECT id, name, COALESCE(category_id, 0), COALESCE(description, '')
		FROM restaurants`

	start := time.Now()
	rows, err := m.db.QueryContext(ctx, query)
	metrics.RecordDBQuery("restaurants", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	var out []recommend.Restaurant
	for rows.Next() {
		var r recommend.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.CategoryID, &r.Description); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Categories returns the category lookup table.
func (m *MySQL) Categories(ctx context.Context) ([]recommend.Category, error) {
	const query = `SELECT id, name FROM categories`

	start := time.Now()
	rows, err := m.db.QueryContext(ctx, query)
	metrics.RecordDBQuery("categories", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []recommend.Category
	for rows.Next() {
		var c recommend.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Reviews returns explicit ratings.
func (m *MySQL) Reviews(ctx context.Context) ([]recommend.RatingEvent, error) {
	const query = `SELECT user_id, restaurant_id, rating FROM reviews`
	return m.queryEvents(ctx, "reviews", query)
}

// Favorites returns favorite events, each worth a full rating.
func (m *MySQL) Favorites(ctx context.Context) ([]recommend.RatingEvent, error) {
	const query = `SELECT user_id, restaurant_id, 5 FROM favorites`
	return m.queryEvents(ctx, "favorites", query)
}

// Likes returns like events resolved to the reviewed restaurant.
func (m *MySQL) Likes(ctx context.Context) ([]recommend.RatingEvent, error) {
	const query = `
		SELECT l.user_id, r.restaurant_id, 2
		FROM likes l
		JOIN reviews r ON l.review_id = r.id`
	return m.queryEvents(ctx, "likes", query)
}

// Comments returns comment events resolved to the reviewed restaurant.
func (m *MySQL) Comments(ctx context.Context) ([]recommend.RatingEvent, error) {
	const query = `
		SELECT c.user_id, r.restaurant_id, 1
		FROM comments c
		JOIN reviews r ON c.review_id = r.id`
	return m.queryEvents(ctx, "comments", query)
}

func (m *MySQL) queryEvents(ctx context.Context, table, query string) ([]recommend.RatingEvent, error) {
	start := time.Now()
	rows, err := m.db.QueryContext(ctx, query)
	metrics.RecordDBQuery(table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out []recommend.RatingEvent
	for rows.Next() {
		var ev recommend.RatingEvent
		if err := rows.Scan(&ev.UserID, &ev.RestaurantID, &ev.Rating); err != nil {
			return nil, fmt.Errorf("scan %s event: %w", table, err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
