package oddsmath

// Kelly sizing defaults. Full Kelly is too aggressive for parlay variance,
// so recommendations use quarter Kelly capped at 5% of bankroll.
const (
	DefaultKellyFraction = 0.25
	DefaultKellyMaxPct   = 0.05
)

// KellyFraction calculates the full-Kelly stake fraction for a bet with the
// given win probability and decimal odds.
//
// f = (b*p - q) / b, where b = decimal - 1, q = 1 - p
//
// Returns 0 for probabilities outside (0,1) or when there is no edge.
func KellyFraction(winProb, decimal float64) float64 {
	if winProb <= 0 || winProb >= 1 || decimal <= 1.0 {
		return 0.0
	}

	b := decimal - 1.0
	q := 1.0 - winProb
	kelly := (b*winProb - q) / b

	if kelly < 0 {
		return 0.0
	}

	return kelly
}

// FractionalKelly applies constant fractional sizing and a bankroll cap
// on top of the full-Kelly fraction.
func FractionalKelly(winProb, decimal, fraction, maxPct float64) float64 {
	kelly := KellyFraction(winProb, decimal) * fraction

	if kelly > maxPct {
		return maxPct
	}

	return kelly
}

// ParlayKelly calculates the recommended stake fraction for a parlay from
// its per-leg win probabilities and combined decimal odds. Leg probabilities
// are multiplied under the same independence assumption as the parlay's
// implied probability.
func ParlayKelly(legProbs []float64, combinedDecimal float64) float64 {
	winProb := 1.0
	for _, p := range legProbs {
		winProb *= p
	}

	return FractionalKelly(winProb, combinedDecimal, DefaultKellyFraction, DefaultKellyMaxPct)
}
