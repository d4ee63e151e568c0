// Package parlay enumerates and ranks leg combinations.
//
// The generator is synchronous, stateless across calls, and performs pure
// in-memory computation: callers supply the leg pool and receive a ranked,
// deduplicated, diversified list. Enumeration is deliberately exhaustive
// rather than greedy — pool sizes are capped upstream (tens of legs) and
// leg counts are capped here, so the combinatorial search stays tractable.
package parlay

import (
	"fmt"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// Config holds the read-only generation parameters. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	MinLegs     int
	MaxLegs     int
	MaxPoolSize int
	MaxResults  int

	// OverlapThreshold is the fraction of a candidate's games that may
	// already be used by accepted candidates before it is skipped in the
	// diversification pass.
	OverlapThreshold float64

	Weights   Weights
	Adjusters []Adjuster
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	return Config{
		MinLegs:          2,
		MaxLegs:          15,
		MaxPoolSize:      50,
		MaxResults:       10,
		OverlapThreshold: 0.5,
		Weights:          DefaultWeights(),
		Adjusters:        DefaultAdjusters(),
	}
}

// Generator builds ranked parlays from candidate legs.
type Generator struct {
	cfg Config
}

// New creates a generator with the given configuration.
func New(cfg Config) *Generator {
	if cfg.MinLegs < 2 {
		cfg.MinLegs = 2
	}
	if cfg.MaxLegs < cfg.MinLegs {
		cfg.MaxLegs = cfg.MinLegs
	}
	return &Generator{cfg: cfg}
}

// Generate enumerates every subset of size MinLegs..MaxLegs over the leg
// pool, scores each, and returns the top candidates after deduplication and
// diversification.
//
// Fewer than MinLegs usable legs is a normal outcome, not an error: the
// result is an empty slice.
func (g *Generator) Generate(legs []models.Leg) []models.RankedParlay {
	pool := buildPool(legs, g.cfg.MaxPoolSize)
	return g.generateFromPool(pool, false)
}

// GenerateSameGame runs the identical algorithm over legs restricted to one
// game. Same-game parlays prefer deeper combinations, so the leg range is
// narrowed to 4..8 when the pool allows it.
func (g *Generator) GenerateSameGame(legs []models.Leg, gameRef string) []models.RankedParlay {
	pool := buildPool(sameGamePool(legs, gameRef), g.cfg.MaxPoolSize)

	sgp := *g
	if sgp.cfg.MinLegs < 4 && len(pool) >= 4 {
		sgp.cfg.MinLegs = 4
	}
	if sgp.cfg.MaxLegs > 8 {
		sgp.cfg.MaxLegs = 8
	}

	return sgp.generateFromPool(pool, true)
}

func (g *Generator) generateFromPool(pool []models.Leg, sameGame bool) []models.RankedParlay {
	if len(pool) < g.cfg.MinLegs {
		return []models.RankedParlay{}
	}

	maxLegs := g.cfg.MaxLegs
	if maxLegs > len(pool) {
		maxLegs = len(pool)
	}

	var candidates []models.RankedParlay
	combo := make([]models.Leg, 0, maxLegs)
	dropped := 0

	for k := g.cfg.MinLegs; k <= maxLegs; k++ {
		forEachCombination(len(pool), k, func(idx []int) bool {
			combo = combo[:0]
			for _, i := range idx {
				combo = append(combo, pool[i])
			}

			candidate, ok := buildCandidate(combo, g.cfg.Weights, g.cfg.Adjusters)
			if !ok {
				dropped++
				return true
			}

			candidate.IsSameGame = candidate.IsSameGame || sameGame
			candidates = append(candidates, candidate)
			return true
		})
	}

	if dropped > 0 {
		fmt.Printf("⚠️  dropped %d degenerate combinations during enumeration\n", dropped)
	}

	sortByScore(candidates)
	candidates = dedupe(candidates)

	return diversify(candidates, g.cfg.MaxResults, g.cfg.OverlapThreshold)
}

// PoolSearchSpace reports how many subsets enumeration will visit for a
// pool of the given size under this configuration. Callers use it to log
// the cost of a generation run before starting it.
func (g *Generator) PoolSearchSpace(poolSize int) int64 {
	if poolSize > g.cfg.MaxPoolSize && g.cfg.MaxPoolSize > 0 {
		poolSize = g.cfg.MaxPoolSize
	}

	total := int64(0)
	for k := g.cfg.MinLegs; k <= g.cfg.MaxLegs && k <= poolSize; k++ {
		total += countCombinations(poolSize, k)
	}
	return total
}
