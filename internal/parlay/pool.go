package parlay

import (
	"fmt"
	"sort"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// buildPool flattens candidate legs into the enumeration pool.
//
// Legs with zero odds are excluded here, before any arithmetic touches them:
// a zero American price has no decimal conversion and would corrupt every
// downstream division. Exclusion is logged and never fatal.
//
// When the pool exceeds maxPoolSize it is truncated to the top legs by the
// proxy score EV × confidence. Exhaustive search then runs on the truncated
// pool, so the truncation choice directly bounds result quality.
func buildPool(legs []models.Leg, maxPoolSize int) []models.Leg {
	pool := make([]models.Leg, 0, len(legs))

	for _, leg := range legs {
		if leg.Odds == 0 {
			fmt.Printf("⚠️  excluding leg with zero odds: %s %s (%s)\n",
				leg.GameRef, leg.Selection, leg.BetType)
			continue
		}
		pool = append(pool, leg)
	}

	if maxPoolSize > 0 && len(pool) > maxPoolSize {
		sort.SliceStable(pool, func(i, j int) bool {
			return proxyScore(pool[i]) > proxyScore(pool[j])
		})
		pool = pool[:maxPoolSize]
	}

	return pool
}

// proxyScore ranks legs for pool truncation only. It is deliberately crude:
// the real ranking happens after enumeration.
func proxyScore(leg models.Leg) float64 {
	return leg.ExpectedValue * leg.ConfidenceScore
}

// sameGamePool restricts a pool to legs belonging to one game.
func sameGamePool(legs []models.Leg, gameRef string) []models.Leg {
	pool := make([]models.Leg, 0, len(legs))
	for _, leg := range legs {
		if leg.GameRef == gameRef {
			pool = append(pool, leg)
		}
	}
	return pool
}
