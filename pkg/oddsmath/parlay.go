package oddsmath

import (
	"fmt"
	"math"
)

// CombinedDecimal multiplies each leg's decimal odds into the parlay's
// combined decimal odds. Any zero leg is rejected before arithmetic.
func CombinedDecimal(americans []int) (float64, error) {
	if len(americans) == 0 {
		return 0, fmt.Errorf("no legs provided")
	}

	combined := 1.0
	for _, odds := range americans {
		decimal, err := AmericanToDecimal(odds)
		if err != nil {
			return 0, err
		}
		combined *= decimal
	}

	if math.IsInf(combined, 0) || math.IsNaN(combined) {
		return 0, fmt.Errorf("degenerate combined decimal odds")
	}

	return combined, nil
}

// ParlayAmerican converts combined decimal odds to American odds. Parlays
// routinely exceed +100, so the result is kept as a float for display.
// A profit multiplier of zero or less means the combination degenerated
// (probability product collapsed) and is reported as an error, never a panic.
func ParlayAmerican(combinedDecimal float64) (float64, error) {
	profit := combinedDecimal - 1.0

	if profit <= 0 || math.IsInf(profit, 0) || math.IsNaN(profit) {
		return 0, fmt.Errorf("degenerate parlay odds: profit multiplier %.6f", profit)
	}

	if profit >= 1.0 {
		return profit * 100.0, nil
	}

	return -100.0 / profit, nil
}

// CombinedImpliedProbability multiplies each leg's implied probability.
// Legs are treated as independent; correlation between legs is handled
// separately as a scoring penalty, not here.
func CombinedImpliedProbability(probs []float64) float64 {
	combined := 1.0
	for _, p := range probs {
		combined *= p
	}
	return combined
}

// ParlayExpectedValue calculates the parlay-level expected value from the
// combined implied probability and combined decimal odds:
//
// EV = impliedProb * (decimal - 1) - (1 - impliedProb)
func ParlayExpectedValue(impliedProb, combinedDecimal float64) float64 {
	profit := combinedDecimal - 1.0
	return impliedProb*profit - (1.0 - impliedProb)
}

// IsFinite reports whether a computed metric is usable for ranking.
// Candidates that underflow to 0 probability or overflow odds are dropped.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
