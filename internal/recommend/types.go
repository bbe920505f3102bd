// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import (
	"context"
	"time"
)

// Fixed rating values assigned to implicit behavior types when merging the
// raw behavior tables into the interaction table. Explicit reviews keep
// their raw rating.
const (
	// FavoriteRating is the rating assigned to a favorited restaurant.
	FavoriteRating = 5.0
	// LikeRating is the rating assigned when a user likes a review of a restaurant.
	LikeRating = 2.0
	// CommentRating is the rating assigned when a user comments on a review.
	CommentRating = 1.0
)

// Restaurant is one catalog entry. The catalog is replaced wholesale on
// every refresh; a Restaurant value is immutable within a snapshot.
type Restaurant struct {
	// ID is the unique restaurant identifier.
	ID int `json:"id"`

	// Name is the restaurant name.
	Name string `json:"name"`

	// CategoryID is the category the restaurant belongs to, 0 when none.
	CategoryID int `json:"category_id,omitempty"`

	// Description is free-form descriptive text, may be empty.
	Description string `json:"description,omitempty"`
}

// Category is a restaurant category used only to enrich content features.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RatingEvent is one raw behavior row as returned by the data source:
// a review, favorite, like, or comment already collapsed to a numeric
// rating. Multiple events per (user, restaurant) pair are expected.
type RatingEvent struct {
	UserID       int     `json:"user_id"`
	RestaurantID int     `json:"restaurant_id"`
	Rating       float64 `json:"rating"`
}

// Interaction is one aggregated row of the interaction table: the mean
// rating over all of a user's behaviors on a restaurant. After merging
// there is at most one Interaction per (user, restaurant) pair.
type Interaction struct {
	UserID       int     `json:"user_id"`
	RestaurantID int     `json:"restaurant_id"`
	Rating       float64 `json:"rating"`
}

// ScoredRestaurant is one entry of a ranked recommendation result.
type ScoredRestaurant struct {
	// ID is the restaurant identifier.
	ID int `json:"id"`

	// Name is the restaurant name at the time the snapshot was built.
	Name string `json:"name"`

	// Score is the ranking score. Its scale depends on the producing
	// engine: cosine similarity for CBF, weighted rating for CF, a
	// [0, 1] blend for hybrid output, and the constant 1.0 for
	// fallback rankings.
	Score float64 `json:"score"`
}

// Summary is a cheap status report over the current snapshot, served by
// the status endpoint and used by health checks.
type Summary struct {
	// RestaurantCount is the catalog size of the current snapshot.
	RestaurantCount int `json:"restaurants"`

	// InteractionCount is the aggregated interaction table size.
	InteractionCount int `json:"interactions"`

	// FeatureMatrixReady reports whether the content feature matrix is built.
	FeatureMatrixReady bool `json:"feature_matrix_ready"`

	// UserItemMatrixReady reports whether the user-item matrix is built.
	UserItemMatrixReady bool `json:"user_item_matrix_ready"`

	// LastUpdate is when the current snapshot was published, nil before
	// the first successful refresh.
	LastUpdate *time.Time `json:"last_update"`
}

// DataSource provides the raw tables the Trainer rebuilds the model from.
// Implementations issue queries against the relational store; any method
// may legitimately return an empty slice. Implemented by the datasource
// package; defined here so the engine has no dependency on the database
// layer.
type DataSource interface {
	// Restaurants returns the full catalog.
	Restaurants(ctx context.Context) ([]Restaurant, error)

	// Categories returns the category lookup table.
	Categories(ctx context.Context) ([]Category, error)

	// Reviews returns explicit review ratings.
	Reviews(ctx context.Context) ([]RatingEvent, error)

	// Favorites returns favorite events with Rating set to FavoriteRating.
	Favorites(ctx context.Context) ([]RatingEvent, error)

	// Likes returns like events with Rating set to LikeRating. Likes
	// attach to reviews, so implementations resolve the restaurant
	// through the reviewed restaurant.
	Likes(ctx context.Context) ([]RatingEvent, error)

	// Comments returns comment events with Rating set to CommentRating,
	// resolved through the commented review like Likes.
	Comments(ctx context.Context) ([]RatingEvent, error)
}
