package oddsmath

import "fmt"

// ExpectedValue calculates the expected profit per unit staked for a single
// bet, given our estimated true win probability and the offered American odds.
//
// EV = trueProb * (decimal - 1) - (1 - trueProb)
//
// Positive when the true probability exceeds what the odds imply; a bet
// priced exactly fair (trueProb == implied probability) has EV ≈ 0.
func ExpectedValue(trueProb float64, american int) (float64, error) {
	if trueProb < 0 || trueProb > 1 {
		return 0, fmt.Errorf("invalid true probability: %.4f", trueProb)
	}

	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}

	b := decimal - 1.0
	return trueProb*b - (1.0 - trueProb), nil
}

// Edge calculates the percentage edge of a fair probability over the
// probability implied by the offered odds.
// Edge = (fair / implied) - 1
func Edge(fairProbability, impliedProbability float64) (float64, error) {
	if fairProbability <= 0 || fairProbability >= 1 {
		return 0, fmt.Errorf("fair probability must be between 0 and 1")
	}

	if impliedProbability <= 0 || impliedProbability >= 1 {
		return 0, fmt.Errorf("implied probability must be between 0 and 1")
	}

	return (fairProbability / impliedProbability) - 1.0, nil
}
