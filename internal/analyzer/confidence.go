package analyzer

import (
	"github.com/Justraymond99/headcrackbot/pkg/models"
	"github.com/Justraymond99/headcrackbot/pkg/oddsmath"
)

// confidenceScore assigns a heuristic confidence in [0,1] to a potential
// bet. Markets priced near even money get a small boost: books price their
// most liquid, best-modeled markets tightest, so those lines carry the most
// information. Props start higher to encourage inclusion for variety.
func confidenceScore(betType string, odds int) float64 {
	score := 0.5

	switch betType {
	case models.BetTypeMoneyline:
		implied, err := oddsmath.AmericanToImpliedProbability(odds)
		if err != nil {
			return score
		}
		switch {
		case implied >= 0.45 && implied <= 0.55:
			score = 0.65
		case implied >= 0.40 && implied <= 0.60:
			score = 0.60
		default:
			score = 0.55
		}
	case models.BetTypeSpread, models.BetTypeTotal:
		score = 0.60
	case models.BetTypeProp:
		score = 0.62
	default:
		// Team totals, alternate lines, period markets
		score = 0.58
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
