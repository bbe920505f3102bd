// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import "errors"

// ErrModelNotReady is returned by recommendation operations before the
// first successful training pass has published a snapshot. Callers map
// it to HTTP 503.
var ErrModelNotReady = errors.New("recommendation model not ready")
