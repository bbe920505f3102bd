// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

// Package recommend implements the hybrid restaurant recommendation engine.
//
// The engine blends two signal sources:
//
//   - Collaborative filtering (CF): behavioral similarity between users,
//     computed as cosine similarity over L2-normalized user rating vectors.
//   - Content-based filtering (CBF): textual similarity between restaurants,
//     computed as cosine similarity between a user's rating-weighted content
//     profile and TF-IDF feature vectors built from restaurant names,
//     categories, and descriptions.
//
// # Architecture
//
// A background Trainer periodically pulls the catalog and behavior tables
// from a DataSource, rebuilds the derived matrices from scratch, and
// publishes the result as an immutable Snapshot into a ModelStore. The
// store holds exactly one snapshot behind an atomic pointer: requests load
// the pointer once and compute against that reference only, so no request
// ever observes a half-updated model. The Trainer is the only writer.
//
// The Engine exposes two entry points to the serving layer: Recommend,
// which runs CF and CBF against the current snapshot and blends the two
// rankings, and Status, which reports snapshot readiness.
//
// # Failure isolation
//
// A failed refresh cycle degrades freshness, never correctness: the prior
// snapshot keeps serving traffic and the failure is logged and counted.
// Sparse-data conditions (cold-start users, single-user matrices, empty
// candidate sets) are handled by deterministic fallback rankings rather
// than errors. The only error a request can see before computation is
// ErrModelNotReady, returned until the first successful refresh.
package recommend
