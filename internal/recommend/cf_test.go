// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func collaborativeTestSnapshot(t *testing.T, interactions []Interaction) *Snapshot {
	t.Helper()
	return testSnapshot(t,
		[]Restaurant{
			{ID: 10, Name: "Pho House"},
			{ID: 20, Name: "Sushi Bar"},
			{ID: 30, Name: "Taco Stand"},
		},
		nil,
		interactions,
	)
}

func TestCollaborativeFallback(t *testing.T) {
	tests := []struct {
		name         string
		interactions []Interaction
		userID       int
		topN         int
		wantIDs      []int
	}{
		{
			name:         "unknown user",
			interactions: []Interaction{{UserID: 1, RestaurantID: 10, Rating: 4}},
			userID:       99,
			topN:         2,
			wantIDs:      []int{10, 20},
		},
		{
			name:         "empty interaction table",
			interactions: nil,
			userID:       1,
			topN:         5,
			wantIDs:      []int{10, 20, 30},
		},
		{
			name: "single user has no neighbors",
			interactions: []Interaction{
				{UserID: 1, RestaurantID: 10, Rating: 4},
				{UserID: 1, RestaurantID: 20, Rating: 3},
			},
			userID:  1,
			topN:    3,
			wantIDs: []int{10, 20, 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := collaborativeTestSnapshot(t, tt.interactions)
			got := recommendCollaborative(snap, tt.userID, tt.topN, 5, true)

			ids := make([]int, len(got))
			for i, r := range got {
				ids[i] = r.ID
				if r.Score != 1.0 {
					t.Errorf("fallback score for %d = %f, want 1.0", r.ID, r.Score)
				}
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("fallback ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestCollaborativeNeighborVote(t *testing.T) {
	// User 1 is user 2's only neighbor and restaurant 30 the only
	// candidate user 2 has not seen. The similarity weight cancels in
	// the weighted average, leaving the neighbor's normalized rating.
	snap := collaborativeTestSnapshot(t, []Interaction{
		{UserID: 1, RestaurantID: 10, Rating: 5},
		{UserID: 1, RestaurantID: 20, Rating: 5},
		{UserID: 1, RestaurantID: 30, Rating: 4},
		{UserID: 2, RestaurantID: 10, Rating: 5},
		{UserID: 2, RestaurantID: 20, Rating: 5},
	})

	got := recommendCollaborative(snap, 2, 10, 5, true)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != 30 || got[0].Name != "Taco Stand" {
		t.Errorf("result = %+v, want restaurant 30", got[0])
	}
	// Score is the neighbor's normalized rating on restaurant 30:
	// 4 / sqrt(5^2 + 5^2 + 4^2).
	want := 4 / math.Sqrt(66)
	if math.Abs(got[0].Score-want) > 1e-9 {
		t.Errorf("score = %f, want %f", got[0].Score, want)
	}
}

func TestCollaborativeExcludeRated(t *testing.T) {
	snap := collaborativeTestSnapshot(t, []Interaction{
		{UserID: 1, RestaurantID: 10, Rating: 5},
		{UserID: 1, RestaurantID: 20, Rating: 4},
		{UserID: 2, RestaurantID: 10, Rating: 5},
	})

	got := recommendCollaborative(snap, 2, 10, 5, true)

	for _, r := range got {
		if r.ID == 10 {
			t.Error("already rated restaurant 10 present in results")
		}
	}

	got = recommendCollaborative(snap, 2, 10, 5, false)
	found := false
	for _, r := range got {
		if r.ID == 10 {
			found = true
		}
	}
	if !found {
		t.Error("restaurant 10 missing with exclusion disabled")
	}
}

func TestCollaborativeRanking(t *testing.T) {
	// Two close neighbors both love restaurant 30; only one of them
	// likes restaurant 20 and only mildly.
	snap := collaborativeTestSnapshot(t, []Interaction{
		{UserID: 1, RestaurantID: 10, Rating: 5},
		{UserID: 2, RestaurantID: 10, Rating: 5},
		{UserID: 2, RestaurantID: 30, Rating: 5},
		{UserID: 3, RestaurantID: 10, Rating: 5},
		{UserID: 3, RestaurantID: 30, Rating: 5},
		{UserID: 3, RestaurantID: 20, Rating: 1},
	})

	got := recommendCollaborative(snap, 1, 10, 5, true)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 30 || got[1].ID != 20 {
		t.Errorf("ranking = [%d %d], want [30 20]", got[0].ID, got[1].ID)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("scores not descending: %f <= %f", got[0].Score, got[1].Score)
	}
}

func TestCollaborativeDeterministic(t *testing.T) {
	snap := collaborativeTestSnapshot(t, []Interaction{
		{UserID: 1, RestaurantID: 10, Rating: 5},
		{UserID: 2, RestaurantID: 10, Rating: 5},
		{UserID: 2, RestaurantID: 20, Rating: 3},
		{UserID: 3, RestaurantID: 10, Rating: 5},
		{UserID: 3, RestaurantID: 30, Rating: 3},
	})

	first := recommendCollaborative(snap, 1, 10, 5, true)
	second := recommendCollaborative(snap, 1, 10, 5, true)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ across identical calls: %v vs %v", first, second)
	}
}
