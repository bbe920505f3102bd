// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import (
	"sync/atomic"
	"time"
)

// Snapshot is one immutable, fully built model state: the catalog, the
// aggregated interaction table, and both derived matrices. A snapshot is
// never mutated after publication; readers may hold one across a refresh
// and keep a consistent view.
type Snapshot struct {
	// Restaurants is the catalog the snapshot was built from. Feature
	// matrix rows are aligned with this slice.
	Restaurants []Restaurant

	// Interactions is the aggregated interaction table, one row per
	// (user, restaurant) pair.
	Interactions []Interaction

	// Features is the TF-IDF content matrix, nil when the build failed.
	Features *FeatureMatrix

	// Matrix is the L2-normalized user-item matrix, nil when the build
	// failed.
	Matrix *UserItemMatrix

	// BuiltAt is when the snapshot finished building.
	BuiltAt time.Time

	restaurantIndex  map[int]int
	interactionCount map[int]int
}

// NewSnapshot indexes the catalog and interaction counts and wraps the
// built artifacts into a publishable state.
func NewSnapshot(restaurants []Restaurant, interactions []Interaction, features *FeatureMatrix, matrix *UserItemMatrix) *Snapshot {
	idx := make(map[int]int, len(restaurants))
	for i, r := range restaurants {
		idx[r.ID] = i
	}
	counts := make(map[int]int)
	for _, in := range interactions {
		counts[in.RestaurantID]++
	}
	return &Snapshot{
		Restaurants:      restaurants,
		Interactions:     interactions,
		Features:         features,
		Matrix:           matrix,
		BuiltAt:          time.Now(),
		restaurantIndex:  idx,
		interactionCount: counts,
	}
}

// RestaurantRow returns the catalog row index for a restaurant ID.
func (s *Snapshot) RestaurantRow(id int) (int, bool) {
	i, ok := s.restaurantIndex[id]
	return i, ok
}

// InteractionCount returns the number of distinct users who interacted
// with the restaurant, the popularity signal behind cold-start ranking.
func (s *Snapshot) InteractionCount(id int) int {
	return s.interactionCount[id]
}

// Ready reports whether the snapshot can serve recommendations.
func (s *Snapshot) Ready() bool {
	return s != nil && len(s.Restaurants) > 0 && s.Features != nil
}

// ModelStore publishes snapshots to concurrent readers. The trainer is
// the single writer; readers load the current pointer without locking
// and never observe a partially built state.
type ModelStore struct {
	current atomic.Pointer[Snapshot]
}

// NewModelStore returns an empty store. Current reports not ready until
// the first Publish.
func NewModelStore() *ModelStore {
	return &ModelStore{}
}

// Publish atomically replaces the current snapshot.
func (ms *ModelStore) Publish(s *Snapshot) {
	ms.current.Store(s)
}

// Current returns the published snapshot, or (nil, false) before the
// first successful training pass.
func (ms *ModelStore) Current() (*Snapshot, bool) {
	s := ms.current.Load()
	if s == nil {
		return nil, false
	}
	return s, true
}

// Summary reports counts and readiness for the status endpoint. Safe to
// call at any time, including before the first publish.
func (ms *ModelStore) Summary() Summary {
	s := ms.current.Load()
	if s == nil {
		return Summary{}
	}
	built := s.BuiltAt
	return Summary{
		RestaurantCount:     len(s.Restaurants),
		InteractionCount:    len(s.Interactions),
		FeatureMatrixReady:  s.Features != nil,
		UserItemMatrixReady: s.Matrix != nil,
		LastUpdate:          &built,
	}
}
