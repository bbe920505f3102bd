// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func hybridTestEngine(t *testing.T, interactions []Interaction) (*Engine, *Snapshot) {
	t.Helper()
	snap := testSnapshot(t,
		[]Restaurant{
			{ID: 1, Name: "Pho House", CategoryID: 7, Description: "beef noodle soup"},
			{ID: 2, Name: "Pho Corner", CategoryID: 7, Description: "chicken noodle"},
			{ID: 3, Name: "Sushi Bar", CategoryID: 8, Description: "fresh fish rolls"},
			{ID: 4, Name: "Taco Stand", CategoryID: 9, Description: "street tacos"},
		},
		[]Category{{ID: 7, Name: "Vietnamese"}, {ID: 8, Name: "Japanese"}, {ID: 9, Name: "Mexican"}},
		interactions,
	)
	store := NewModelStore()
	store.Publish(snap)
	return NewEngine(store, DefaultConfig(), zerolog.Nop()), snap
}

func TestEngineNotReady(t *testing.T) {
	engine := NewEngine(NewModelStore(), DefaultConfig(), zerolog.Nop())

	_, err := engine.Recommend(context.Background(), Request{UserID: 1, TopN: 5})
	if !errors.Is(err, ErrModelNotReady) {
		t.Errorf("Recommend() error = %v, want ErrModelNotReady", err)
	}

	sum := engine.Status()
	if sum.RestaurantCount != 0 || sum.LastUpdate != nil {
		t.Errorf("Status() = %+v, want empty summary", sum)
	}
}

func TestEngineRecommend(t *testing.T) {
	engine, _ := hybridTestEngine(t, []Interaction{
		{UserID: 1, RestaurantID: 1, Rating: 5},
		{UserID: 1, RestaurantID: 3, Rating: 2},
		{UserID: 2, RestaurantID: 1, Rating: 5},
		{UserID: 2, RestaurantID: 2, Rating: 4},
		{UserID: 3, RestaurantID: 3, Rating: 4},
		{UserID: 3, RestaurantID: 4, Rating: 3},
	})

	got, err := engine.Recommend(context.Background(), Request{UserID: 1, TopN: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) == 0 || len(got) > 3 {
		t.Fatalf("len = %d, want 1..3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Errorf("scores not descending at %d: %f < %f", i, got[i-1].Score, got[i].Score)
		}
	}
	for _, r := range got {
		if r.ID == 1 || r.ID == 3 {
			t.Errorf("already rated restaurant %d present in results", r.ID)
		}
		if r.Name == "" {
			t.Errorf("restaurant %d has empty name", r.ID)
		}
	}
}

func TestEngineDeterministic(t *testing.T) {
	engine, _ := hybridTestEngine(t, []Interaction{
		{UserID: 1, RestaurantID: 1, Rating: 5},
		{UserID: 2, RestaurantID: 1, Rating: 4},
		{UserID: 2, RestaurantID: 2, Rating: 4},
		{UserID: 3, RestaurantID: 4, Rating: 5},
	})
	req := Request{UserID: 1, TopN: 4}

	first, err := engine.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	second, err := engine.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ across identical calls:\n%v\n%v", first, second)
	}
}

func TestEngineAlphaPureCF(t *testing.T) {
	interactions := []Interaction{
		{UserID: 1, RestaurantID: 1, Rating: 5},
		{UserID: 2, RestaurantID: 1, Rating: 5},
		{UserID: 2, RestaurantID: 2, Rating: 5},
		{UserID: 2, RestaurantID: 3, Rating: 2},
		{UserID: 3, RestaurantID: 1, Rating: 4},
		{UserID: 3, RestaurantID: 4, Rating: 4},
	}
	engine, snap := hybridTestEngine(t, interactions)

	one, zero := 1.0, 0.0
	got, err := engine.Recommend(context.Background(), Request{
		UserID: 1, TopN: 4, AlphaCF: &one, AlphaCBF: &zero,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	cf := recommendCollaborative(snap, 1, DefaultConfig().Oversample, DefaultConfig().Neighbors, true)
	if len(got) > len(cf) {
		t.Fatalf("blend returned %d items, CF only %d", len(got), len(cf))
	}
	for i := range got {
		if got[i].ID != cf[i].ID {
			t.Errorf("position %d: blend id = %d, CF id = %d", i, got[i].ID, cf[i].ID)
		}
	}
}

func TestEngineDefaultTopN(t *testing.T) {
	engine, _ := hybridTestEngine(t, []Interaction{
		{UserID: 1, RestaurantID: 1, Rating: 5},
		{UserID: 2, RestaurantID: 2, Rating: 4},
	})

	got, err := engine.Recommend(context.Background(), Request{UserID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) > DefaultConfig().DefaultTopN {
		t.Errorf("len = %d, want at most the default top_n", len(got))
	}
}

func TestBlend(t *testing.T) {
	cf := []ScoredRestaurant{
		{ID: 1, Name: "Pho House", Score: 2},
		{ID: 2, Name: "Pho Corner", Score: 1},
	}
	cbf := []ScoredRestaurant{
		{ID: 2, Name: "Pho Corner", Score: 0.5},
		{ID: 3, Name: "Sushi Bar", Score: 0.25},
	}

	got := blend(cf, cbf, 0.6, 0.4)

	// Normalized columns: cf = [1, 0.5, 0], cbf = [0, 1, 0.5] over ids
	// 1, 2, 3. Final: id1 = 0.6, id2 = 0.7, id3 = 0.2.
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantOrder := []int{2, 1, 3}
	wantScores := []float64{0.7, 0.6, 0.2}
	for i := range got {
		if got[i].ID != wantOrder[i] {
			t.Errorf("position %d id = %d, want %d", i, got[i].ID, wantOrder[i])
		}
		if math.Abs(got[i].Score-wantScores[i]) > 1e-9 {
			t.Errorf("position %d score = %f, want %f", i, got[i].Score, wantScores[i])
		}
	}
}

func TestBlendConstantColumn(t *testing.T) {
	// All CF scores equal: the CF column carries no information and
	// normalizes to zero, so only CBF decides the order.
	cf := []ScoredRestaurant{
		{ID: 1, Name: "Pho House", Score: 1},
		{ID: 2, Name: "Pho Corner", Score: 1},
	}
	cbf := []ScoredRestaurant{
		{ID: 1, Name: "Pho House", Score: 0.2},
		{ID: 2, Name: "Pho Corner", Score: 0.9},
	}

	got := blend(cf, cbf, 0.6, 0.4)

	if got[0].ID != 2 {
		t.Errorf("top id = %d, want 2", got[0].ID)
	}
	if math.Abs(got[0].Score-0.4) > 1e-9 {
		t.Errorf("top score = %f, want alpha_cbf * 1", got[0].Score)
	}
	if math.Abs(got[1].Score) > 1e-9 {
		t.Errorf("bottom score = %f, want 0", got[1].Score)
	}
}

func TestBlendTieBreak(t *testing.T) {
	// Identical joined scores order by restaurant ID ascending.
	cf := []ScoredRestaurant{
		{ID: 5, Name: "E", Score: 1},
		{ID: 3, Name: "C", Score: 1},
		{ID: 4, Name: "D", Score: 1},
	}
	cbf := []ScoredRestaurant{
		{ID: 5, Name: "E", Score: 1},
		{ID: 3, Name: "C", Score: 1},
		{ID: 4, Name: "D", Score: 1},
	}

	got := blend(cf, cbf, 0.5, 0.5)

	ids := make([]int, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	if !reflect.DeepEqual(ids, []int{3, 4, 5}) {
		t.Errorf("tie order = %v, want [3 4 5]", ids)
	}
}

func TestBlendNamePrefersCF(t *testing.T) {
	cf := []ScoredRestaurant{{ID: 1, Name: "Pho House", Score: 2}}
	cbf := []ScoredRestaurant{
		{ID: 1, Name: "Old Pho House", Score: 0.9},
		{ID: 2, Name: "Sushi Bar", Score: 0.1},
	}

	got := blend(cf, cbf, 0.6, 0.4)

	for _, r := range got {
		if r.ID == 1 && r.Name != "Pho House" {
			t.Errorf("name = %q, want the CF-side name", r.Name)
		}
		if r.ID == 2 && r.Name != "Sushi Bar" {
			t.Errorf("name = %q, want the CBF-side name for CBF-only rows", r.Name)
		}
	}
}
