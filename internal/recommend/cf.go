// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import "sort"

// recommendCollaborative ranks restaurants by a similarity-weighted vote
// over the target user's nearest neighbors.
//
// The user-item matrix is rebuilt from the snapshot's interaction table
// on every call. It is a pure function of the snapshot, so recomputing
// keeps the snapshot the single source of truth at the cost of some
// arithmetic per request.
func recommendCollaborative(s *Snapshot, userID, topN, neighbors int, excludeRated bool) []ScoredRestaurant {
	if s == nil || len(s.Restaurants) == 0 {
		return nil
	}
	if neighbors < 1 {
		neighbors = 1
	}

	m := BuildUserItemMatrix(s.Interactions)
	target, ok := m.Row(userID)
	if !ok || m.Items() == 0 {
		return catalogFallback(s, topN)
	}

	type neighbor struct {
		row int
		sim float64
	}
	// A lone user cannot have a defined cosine to anyone; the degenerate
	// matrix pins every pairwise similarity to 1.0 instead.
	degenerate := m.Users() < 2
	cands := make([]neighbor, 0, m.Users()-1)
	for i, id := range m.UserIDs {
		if id == userID {
			continue
		}
		sim := 1.0
		if !degenerate {
			sim = cosineSimilarity(target, m.Rows[i])
		}
		cands = append(cands, neighbor{row: i, sim: sim})
	}
	sort.SliceStable(cands, func(a, b int) bool {
		if cands[a].sim != cands[b].sim {
			return cands[a].sim > cands[b].sim
		}
		return m.UserIDs[cands[a].row] < m.UserIDs[cands[b].row]
	})
	if len(cands) > neighbors {
		cands = cands[:neighbors]
	}

	scores := make(map[int]float64)
	weights := make(map[int]float64)
	for _, nb := range cands {
		row := m.Rows[nb.row]
		for j, rating := range row {
			if rating <= 0 {
				continue
			}
			if excludeRated && target[j] > 0 {
				continue
			}
			id := m.ItemIDs[j]
			scores[id] += rating * nb.sim
			weights[id] += nb.sim
		}
	}
	if len(scores) == 0 {
		return catalogFallback(s, topN)
	}

	ids := make([]int, 0, len(scores))
	for id := range scores {
		w := weights[id]
		if w == 0 {
			w = 1
		}
		scores[id] /= w
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		if scores[ids[a]] != scores[ids[b]] {
			return scores[ids[a]] > scores[ids[b]]
		}
		return ids[a] < ids[b]
	})
	if len(ids) > topN {
		ids = ids[:topN]
	}

	out := make([]ScoredRestaurant, 0, len(ids))
	for _, id := range ids {
		name := ""
		if row, ok := s.RestaurantRow(id); ok {
			name = s.Restaurants[row].Name
		}
		out = append(out, ScoredRestaurant{ID: id, Name: name, Score: scores[id]})
	}
	return out
}

// catalogFallback returns the first topN catalog rows with a constant
// score, the answer of last resort when no behavioral signal exists.
func catalogFallback(s *Snapshot, topN int) []ScoredRestaurant {
	n := topN
	if n > len(s.Restaurants) {
		n = len(s.Restaurants)
	}
	out := make([]ScoredRestaurant, 0, n)
	for _, r := range s.Restaurants[:n] {
		out = append(out, ScoredRestaurant{ID: r.ID, Name: r.Name, Score: 1.0})
	}
	return out
}
