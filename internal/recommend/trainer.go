// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Trainer rebuilds the model from the data source and publishes the
// result. It is the single writer of the ModelStore; a failed or skipped
// refresh leaves the previous snapshot serving.
type Trainer struct {
	source DataSource
	store  *ModelStore
	logger zerolog.Logger
}

// NewTrainer wires a trainer over a data source and a store.
func NewTrainer(source DataSource, store *ModelStore, logger zerolog.Logger) *Trainer {
	return &Trainer{
		source: source,
		store:  store,
		logger: logger.With().Str("component", "trainer").Logger(),
	}
}

// Refresh runs one training cycle: load the raw tables, merge behaviors
// into interactions, build both matrices, and publish a new snapshot.
//
// An empty catalog or an empty merged interaction table skips the cycle
// without error; the store is never cleared. Any other failure returns
// an error and likewise leaves the store untouched.
func (t *Trainer) Refresh(ctx context.Context) error {
	start := time.Now()

	var (
		restaurants []Restaurant
		categories  []Category
		events      [4][]RatingEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		restaurants, err = t.source.Restaurants(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = t.source.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		events[0], err = t.source.Reviews(gctx)
		return err
	})
	g.Go(func() (err error) {
		events[1], err = t.source.Favorites(gctx)
		return err
	})
	g.Go(func() (err error) {
		events[2], err = t.source.Likes(gctx)
		return err
	})
	g.Go(func() (err error) {
		events[3], err = t.source.Comments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load source tables: %w", err)
	}

	if len(restaurants) == 0 {
		t.logger.Warn().Msg("empty restaurant catalog, skipping refresh")
		return nil
	}

	interactions := MergeRatings(events[0], events[1], events[2], events[3])
	if len(interactions) == 0 {
		t.logger.Warn().Msg("no user interactions, skipping refresh")
		return nil
	}

	features, err := BuildFeatureMatrix(restaurants, categories)
	if err != nil {
		return fmt.Errorf("build feature matrix: %w", err)
	}
	matrix := BuildUserItemMatrix(interactions)

	t.store.Publish(NewSnapshot(restaurants, interactions, features, matrix))

	t.logger.Info().
		Int("restaurants", len(restaurants)).
		Int("interactions", len(interactions)).
		Int("vocabulary", len(features.Vocabulary)).
		Int("users", matrix.Users()).
		Dur("duration", time.Since(start)).
		Msg("model snapshot published")
	return nil
}

// MergeRatings collapses the raw behavior tables into the interaction
// table: all events are pooled, grouped by (user, restaurant), and
// averaged. Output is sorted by user then restaurant so downstream
// builds are deterministic.
func MergeRatings(groups ...[]RatingEvent) []Interaction {
	type key struct{ user, restaurant int }
	sums := make(map[key]float64)
	counts := make(map[key]int)
	for _, events := range groups {
		for _, ev := range events {
			k := key{ev.UserID, ev.RestaurantID}
			sums[k] += ev.Rating
			counts[k]++
		}
	}

	out := make([]Interaction, 0, len(sums))
	for k, sum := range sums {
		out = append(out, Interaction{
			UserID:       k.user,
			RestaurantID: k.restaurant,
			Rating:       sum / float64(counts[k]),
		})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].UserID != out[b].UserID {
			return out[a].UserID < out[b].UserID
		}
		return out[a].RestaurantID < out[b].RestaurantID
	})
	return out
}
