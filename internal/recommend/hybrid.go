// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config tunes the engines and the blend.
type Config struct {
	// Neighbors is the nearest-neighbor count for collaborative
	// filtering.
	Neighbors int `koanf:"neighbors"`

	// Oversample is the candidate count requested from each engine
	// before blending, larger than any served top_n so the outer join
	// has meaningful overlap.
	Oversample int `koanf:"oversample"`

	// AlphaCF is the default blend weight for the collaborative score.
	AlphaCF float64 `koanf:"alpha_cf"`

	// AlphaCBF is the default blend weight for the content score.
	AlphaCBF float64 `koanf:"alpha_cbf"`

	// DefaultTopN is used when a request does not specify top_n.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps requested result sizes.
	MaxTopN int `koanf:"max_top_n"`
}

// DefaultConfig returns the tuning the service ships with.
func DefaultConfig() Config {
	return Config{
		Neighbors:   5,
		Oversample:  50,
		AlphaCF:     0.6,
		AlphaCBF:    0.4,
		DefaultTopN: 10,
		MaxTopN:     100,
	}
}

// Request is one recommendation query after the serving layer has
// validated its parameters. Zero-valued alphas mean "use the configured
// defaults"; MinRatings is accepted for interface stability but does not
// affect scoring yet.
type Request struct {
	UserID     int
	TopN       int
	AlphaCF    *float64
	AlphaCBF   *float64
	MinRatings int
}

// Engine blends collaborative and content rankings over the current
// snapshot. Safe for concurrent use; every request pins one snapshot
// reference for its whole computation.
type Engine struct {
	store  *ModelStore
	cfg    Config
	logger zerolog.Logger
}

// NewEngine wires an engine over a model store.
func NewEngine(store *ModelStore, cfg Config, logger zerolog.Logger) *Engine {
	if cfg.Neighbors < 1 {
		cfg.Neighbors = 1
	}
	if cfg.Oversample < 1 {
		cfg.Oversample = DefaultConfig().Oversample
	}
	if cfg.DefaultTopN < 1 {
		cfg.DefaultTopN = DefaultConfig().DefaultTopN
	}
	if cfg.MaxTopN < cfg.DefaultTopN {
		cfg.MaxTopN = DefaultConfig().MaxTopN
	}
	return &Engine{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
}

// Status reports the current snapshot summary.
func (e *Engine) Status() Summary {
	return e.store.Summary()
}

// Recommend produces the hybrid ranking for one user. Returns
// ErrModelNotReady before the first snapshot is published or while the
// published snapshot cannot serve.
func (e *Engine) Recommend(ctx context.Context, req Request) ([]ScoredRestaurant, error) {
	snap, ok := e.store.Current()
	if !ok || !snap.Ready() {
		return nil, ErrModelNotReady
	}

	topN := req.TopN
	if topN <= 0 {
		topN = e.cfg.DefaultTopN
	}
	if topN > e.cfg.MaxTopN {
		topN = e.cfg.MaxTopN
	}
	alphaCF := e.cfg.AlphaCF
	if req.AlphaCF != nil {
		alphaCF = *req.AlphaCF
	}
	alphaCBF := e.cfg.AlphaCBF
	if req.AlphaCBF != nil {
		alphaCBF = *req.AlphaCBF
	}

	start := time.Now()
	var cf, cbf []ScoredRestaurant
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		cf = recommendCollaborative(snap, req.UserID, e.cfg.Oversample, e.cfg.Neighbors, true)
		return nil
	})
	g.Go(func() error {
		cbf = recommendContent(snap, req.UserID, e.cfg.Oversample, true)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []ScoredRestaurant
	switch {
	case len(cf) == 0:
		out = truncate(cbf, topN)
	case len(cbf) == 0:
		out = truncate(cf, topN)
	default:
		out = truncate(blend(cf, cbf, alphaCF, alphaCBF), topN)
	}

	e.logger.Debug().
		Int("user_id", req.UserID).
		Int("top_n", topN).
		Int("cf_candidates", len(cf)).
		Int("cbf_candidates", len(cbf)).
		Int("results", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("hybrid recommendation computed")
	return out, nil
}

// blend outer-joins the two candidate sets on restaurant ID, min-max
// normalizes each score column over the joined set, and combines them
// with the alpha weights. Names prefer the collaborative side.
func blend(cf, cbf []ScoredRestaurant, alphaCF, alphaCBF float64) []ScoredRestaurant {
	type joined struct {
		name     string
		cfScore  float64
		cbfScore float64
	}
	rows := make(map[int]*joined, len(cf)+len(cbf))
	for _, r := range cf {
		rows[r.ID] = &joined{name: r.Name, cfScore: r.Score}
	}
	for _, r := range cbf {
		j, ok := rows[r.ID]
		if !ok {
			rows[r.ID] = &joined{name: r.Name, cbfScore: r.Score}
			continue
		}
		j.cbfScore = r.Score
		if j.name == "" {
			j.name = r.Name
		}
	}

	ids := make([]int, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	cfCol := make([]float64, len(ids))
	cbfCol := make([]float64, len(ids))
	for i, id := range ids {
		cfCol[i] = rows[id].cfScore
		cbfCol[i] = rows[id].cbfScore
	}
	cfCol = minMaxNormalize(cfCol)
	cbfCol = minMaxNormalize(cbfCol)

	out := make([]ScoredRestaurant, len(ids))
	for i, id := range ids {
		out[i] = ScoredRestaurant{
			ID:    id,
			Name:  rows[id].name,
			Score: alphaCF*cfCol[i] + alphaCBF*cbfCol[i],
		}
	}
	// Stable over the id-ascending base order makes ties deterministic.
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out
}

func truncate(items []ScoredRestaurant, n int) []ScoredRestaurant {
	if len(items) > n {
		return items[:n]
	}
	return items
}
