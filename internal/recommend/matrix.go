// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import (
	"math"
	"sort"
)

// FeatureMatrix is the dense TF-IDF content matrix. Rows are aligned
// with the snapshot's restaurant slice, columns with Vocabulary.
type FeatureMatrix struct {
	// Rows holds one feature vector per restaurant, in catalog order.
	Rows [][]float64

	// Vocabulary lists the terms backing the columns, sorted
	// lexicographically so matrix construction is deterministic.
	Vocabulary []string
}

// UserItemMatrix is the dense user-item rating matrix with L2-normalized
// rows, built from the aggregated interaction table.
type UserItemMatrix struct {
	// UserIDs backs the rows, sorted ascending.
	UserIDs []int

	// ItemIDs backs the columns, sorted ascending.
	ItemIDs []int

	// Rows holds one normalized rating vector per user.
	Rows [][]float64

	userIndex map[int]int
	itemIndex map[int]int
}

// BuildUserItemMatrix pivots aggregated interactions into a dense matrix
// and L2-normalizes each user row. Interactions must already be merged
// to one row per (user, restaurant) pair.
func BuildUserItemMatrix(interactions []Interaction) *UserItemMatrix {
	userSet := make(map[int]struct{})
	itemSet := make(map[int]struct{})
	for _, in := range interactions {
		userSet[in.UserID] = struct{}{}
		itemSet[in.RestaurantID] = struct{}{}
	}

	m := &UserItemMatrix{
		UserIDs:   sortedKeys(userSet),
		ItemIDs:   sortedKeys(itemSet),
		userIndex: make(map[int]int, len(userSet)),
		itemIndex: make(map[int]int, len(itemSet)),
	}
	for i, id := range m.UserIDs {
		m.userIndex[id] = i
	}
	for j, id := range m.ItemIDs {
		m.itemIndex[id] = j
	}

	m.Rows = make([][]float64, len(m.UserIDs))
	for i := range m.Rows {
		m.Rows[i] = make([]float64, len(m.ItemIDs))
	}
	for _, in := range interactions {
		m.Rows[m.userIndex[in.UserID]][m.itemIndex[in.RestaurantID]] = in.Rating
	}
	for i := range m.Rows {
		l2NormalizeRow(m.Rows[i])
	}
	return m
}

// Row returns the normalized rating vector for userID and whether the
// user is present in the matrix.
func (m *UserItemMatrix) Row(userID int) ([]float64, bool) {
	i, ok := m.userIndex[userID]
	if !ok {
		return nil, false
	}
	return m.Rows[i], true
}

// ItemIndex returns the column index for a restaurant ID.
func (m *UserItemMatrix) ItemIndex(restaurantID int) (int, bool) {
	j, ok := m.itemIndex[restaurantID]
	return j, ok
}

// Users returns the number of user rows.
func (m *UserItemMatrix) Users() int { return len(m.UserIDs) }

// Items returns the number of item columns.
func (m *UserItemMatrix) Items() int { return len(m.ItemIDs) }

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// l2NormalizeRow scales v to unit Euclidean length in place. A zero
// vector is left untouched.
func l2NormalizeRow(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}

// cosineSimilarity computes the cosine of the angle between two equal
// length vectors. Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// minMaxNormalize maps scores into [0, 1]. When all scores are equal the
// column carries no ranking information and every entry maps to 0.
func minMaxNormalize(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	minV, maxV := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < minV {
			minV = s
		}
		if s > maxV {
			maxV = s
		}
	}
	out := make([]float64, len(scores))
	if maxV == minV {
		return out
	}
	span := maxV - minV
	for i, s := range scores {
		out[i] = (s - minV) / span
	}
	return out
}
