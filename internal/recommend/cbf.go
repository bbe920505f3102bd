// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import "sort"

// seenSentinel pushes already-interacted restaurants out of selection
// range on the warm path.
const seenSentinel = -1e9

// recommendContent ranks restaurants by cosine similarity between each
// content row and the user's rating-weighted profile.
//
// A user with no interactions gets the cold-start ranking: restaurants
// ordered by how many distinct users interacted with them, each scored
// a constant 1.0. An unready snapshot yields an empty result rather
// than an error; the caller decides whether that maps to not-ready.
func recommendContent(s *Snapshot, userID, topN int, excludeSeen bool) []ScoredRestaurant {
	if s == nil || !s.Ready() || len(s.Interactions) == 0 {
		return nil
	}

	ratings := make(map[int]float64)
	for _, in := range s.Interactions {
		if in.UserID == userID {
			ratings[in.RestaurantID] = in.Rating
		}
	}
	if len(ratings) == 0 {
		return coldStart(s, topN)
	}

	profile := make([]float64, len(s.Features.Vocabulary))
	var ratingSum float64
	for id, rating := range ratings {
		row, ok := s.RestaurantRow(id)
		if !ok {
			continue
		}
		weight := rating
		if weight == 0 {
			weight = 1
		}
		for j, v := range s.Features.Rows[row] {
			profile[j] += weight * v
		}
		ratingSum += weight
	}
	if ratingSum == 0 {
		ratingSum = 1
	}
	for j := range profile {
		profile[j] /= ratingSum
	}

	scores := make([]float64, len(s.Restaurants))
	for i, r := range s.Restaurants {
		if excludeSeen {
			if _, seen := ratings[r.ID]; seen {
				scores[i] = seenSentinel
				continue
			}
		}
		scores[i] = cosineSimilarity(profile, s.Features.Rows[i])
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	// Stable keeps catalog order among equal similarities.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]ScoredRestaurant, 0, topN)
	for _, i := range order {
		if len(out) == topN {
			break
		}
		if scores[i] <= seenSentinel {
			break
		}
		r := s.Restaurants[i]
		out = append(out, ScoredRestaurant{ID: r.ID, Name: r.Name, Score: scores[i]})
	}
	return out
}

// coldStart ranks restaurants by global interaction count descending,
// ties by restaurant ID ascending. Restaurants nobody interacted with do
// not appear, so an empty interaction table yields an empty result.
func coldStart(s *Snapshot, topN int) []ScoredRestaurant {
	ids := make([]int, 0, len(s.interactionCount))
	for id := range s.interactionCount {
		if _, ok := s.RestaurantRow(id); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(a, b int) bool {
		ca, cb := s.interactionCount[ids[a]], s.interactionCount[ids[b]]
		if ca != cb {
			return ca > cb
		}
		return ids[a] < ids[b]
	})

	if len(ids) > topN {
		ids = ids[:topN]
	}
	out := make([]ScoredRestaurant, 0, len(ids))
	for _, id := range ids {
		row, _ := s.RestaurantRow(id)
		out = append(out, ScoredRestaurant{ID: id, Name: s.Restaurants[row].Name, Score: 1.0})
	}
	return out
}
