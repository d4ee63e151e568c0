package parlay

import (
	"time"

	"github.com/Justraymond99/headcrackbot/pkg/models"
	"github.com/Justraymond99/headcrackbot/pkg/oddsmath"
)

// Weights control the composite ranking score. They are read-only
// configuration: the generator never mutates them between calls.
// There is no requirement that they sum to 1 — the display layer warns
// about unusual weight sums, the generator does not care.
type Weights struct {
	Value           float64 `json:"value"`
	Confidence      float64 `json:"confidence"`
	Correlation     float64 `json:"correlation"`
	Diversification float64 `json:"diversification"`
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Value:           0.4,
		Confidence:      0.3,
		Correlation:     0.2,
		Diversification: 0.1,
	}
}

// Sum returns the total of all weights, for display-layer sanity warnings.
func (w Weights) Sum() float64 {
	return w.Value + w.Confidence + w.Correlation + w.Diversification
}

// Adjuster is a pluggable multiplicative post-score adjustment for business
// rules layered on top of the core composite score.
type Adjuster func(p models.RankedParlay) float64

// PropBonus boosts parlays that include at least one prop leg.
func PropBonus(multiplier float64) Adjuster {
	return func(p models.RankedParlay) float64 {
		if p.HasProps {
			return multiplier
		}
		return 1.0
	}
}

// SameGameBonus boosts same-game parlays.
func SameGameBonus(multiplier float64) Adjuster {
	return func(p models.RankedParlay) float64 {
		if p.IsSameGame {
			return multiplier
		}
		return 1.0
	}
}

// VarietyBonus boosts parlays spanning multiple bet types:
// 1 + (distinct types - 1) * step.
func VarietyBonus(step float64) Adjuster {
	return func(p models.RankedParlay) float64 {
		types := make(map[string]struct{}, len(p.Legs))
		for _, leg := range p.Legs {
			types[leg.BetType] = struct{}{}
		}
		return 1.0 + float64(len(types)-1)*step
	}
}

// DefaultAdjusters returns the standard business-rule bonuses:
// +15% for prop inclusion, +20% for same-game parlays, +10% per extra
// distinct bet type.
func DefaultAdjusters() []Adjuster {
	return []Adjuster{
		PropBonus(1.15),
		SameGameBonus(1.20),
		VarietyBonus(0.10),
	}
}

// correlationCoefficient assigns a pairwise correlation between two legs.
// The table is intentionally flat — the same value regardless of which two
// legs of a triple are compared. No covariance model.
func correlationCoefficient(a, b models.Leg) float64 {
	if a.GameRef != b.GameRef {
		return 0.1
	}

	if a.Selection == b.Selection {
		return 1.0
	}

	if a.BetType == b.BetType {
		return 0.9
	}

	if relatedBetTypes(a.BetType, b.BetType) {
		return 0.7
	}

	return 0.5
}

// relatedBetTypes reports whether two different bet types move together
// within a game (a moneyline winner usually covers).
func relatedBetTypes(a, b string) bool {
	return (a == models.BetTypeMoneyline && b == models.BetTypeSpread) ||
		(a == models.BetTypeSpread && b == models.BetTypeMoneyline)
}

// correlationPenalty averages the pairwise correlation over all C(k,2)
// pairs. Every coefficient is in [0,1], so the mean already is too.
func correlationPenalty(legs []models.Leg) float64 {
	if len(legs) < 2 {
		return 0.0
	}

	total := 0.0
	pairs := 0
	for i := 0; i < len(legs); i++ {
		for j := i + 1; j < len(legs); j++ {
			total += correlationCoefficient(legs[i], legs[j])
			pairs++
		}
	}

	return total / float64(pairs)
}

// diversificationBonus rewards spreading legs over distinct games:
// distinct games used / number of legs, in (0, 1].
func diversificationBonus(legs []models.Leg) float64 {
	games := make(map[string]struct{}, len(legs))
	for _, leg := range legs {
		games[leg.GameRef] = struct{}{}
	}
	return float64(len(games)) / float64(len(legs))
}

// buildCandidate computes every metric for one leg combination. The second
// return is false when the combination degenerates (non-finite combined
// odds or probability); such candidates are dropped from ranking while
// enumeration continues.
func buildCandidate(legs []models.Leg, weights Weights, adjusters []Adjuster) (models.RankedParlay, bool) {
	americans := make([]int, len(legs))
	implieds := make([]float64, len(legs))
	trueProbs := make([]float64, len(legs))

	sumEV := 0.0
	sumConfidence := 0.0
	hasProps := false

	games := make(map[string]struct{}, len(legs))

	for i, leg := range legs {
		americans[i] = leg.Odds
		implieds[i] = leg.ImpliedProbability
		trueProbs[i] = leg.TrueProbability
		sumEV += leg.ExpectedValue
		sumConfidence += leg.ConfidenceScore
		games[leg.GameRef] = struct{}{}
		if leg.BetType == models.BetTypeProp {
			hasProps = true
		}
	}

	combinedDecimal, err := oddsmath.CombinedDecimal(americans)
	if err != nil {
		return models.RankedParlay{}, false
	}

	combinedAmerican, err := oddsmath.ParlayAmerican(combinedDecimal)
	if err != nil {
		return models.RankedParlay{}, false
	}

	impliedProb := oddsmath.CombinedImpliedProbability(implieds)
	parlayEV := oddsmath.ParlayExpectedValue(impliedProb, combinedDecimal)

	if impliedProb <= 0 || !oddsmath.IsFinite(combinedDecimal, combinedAmerican, impliedProb, parlayEV) {
		return models.RankedParlay{}, false
	}

	n := float64(len(legs))
	avgEV := sumEV / n
	avgConfidence := sumConfidence / n
	penalty := correlationPenalty(legs)
	bonus := diversificationBonus(legs)

	// Composite score: the leg-EV average drives the value term; the
	// candidate's displayed ExpectedValue is the parlay-level formula.
	score := weights.Value*avgEV +
		weights.Confidence*avgConfidence -
		weights.Correlation*penalty +
		weights.Diversification*bonus

	candidate := models.RankedParlay{
		Legs:                 append([]models.Leg(nil), legs...),
		NumLegs:              len(legs),
		CombinedOdds:         combinedAmerican,
		CombinedDecimal:      combinedDecimal,
		ImpliedProbability:   impliedProb,
		ExpectedValue:        parlayEV,
		ConfidenceScore:      avgConfidence,
		ConfidenceRating:     models.ConfidenceRatingFor(avgConfidence),
		CorrelationPenalty:   penalty,
		DiversificationBonus: bonus,
		IsSameGame:           len(games) == 1,
		HasProps:             hasProps,
		GeneratedAt:          time.Now().UTC(),
	}

	for _, adjust := range adjusters {
		score *= adjust(candidate)
	}
	candidate.Score = score

	candidate.PotentialPayouts = potentialPayouts(combinedDecimal)
	candidate.RecommendedStakePct = oddsmath.ParlayKelly(trueProbs, combinedDecimal) * 100.0

	return candidate, true
}

// potentialPayouts lists total returns at the fixed display stakes.
func potentialPayouts(combinedDecimal float64) map[string]float64 {
	return map[string]float64{
		"stake_10":  10.0 * combinedDecimal,
		"stake_25":  25.0 * combinedDecimal,
		"stake_50":  50.0 * combinedDecimal,
		"stake_100": 100.0 * combinedDecimal,
	}
}
