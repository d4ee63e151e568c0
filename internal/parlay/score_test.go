package parlay

import (
	"math"
	"testing"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

const scoreTolerance = 1e-9

func TestCorrelationCoefficient(t *testing.T) {
	tests := []struct {
		name     string
		a        models.Leg
		b        models.Leg
		expected float64
	}{
		{
			name:     "different games",
			a:        models.Leg{GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML"},
			b:        models.Leg{GameRef: "game-2", BetType: models.BetTypeMoneyline, Selection: "Celtics ML"},
			expected: 0.1,
		},
		{
			name:     "same game same selection",
			a:        models.Leg{GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML"},
			b:        models.Leg{GameRef: "game-1", BetType: models.BetTypeSpread, Selection: "Lakers ML"},
			expected: 1.0,
		},
		{
			name:     "same game same bet type",
			a:        models.Leg{GameRef: "game-1", BetType: models.BetTypeProp, Selection: "LeBron Over 27.5"},
			b:        models.Leg{GameRef: "game-1", BetType: models.BetTypeProp, Selection: "Davis Over 10.5"},
			expected: 0.9,
		},
		{
			name:     "moneyline and spread in same game",
			a:        models.Leg{GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML"},
			b:        models.Leg{GameRef: "game-1", BetType: models.BetTypeSpread, Selection: "Lakers -3.5"},
			expected: 0.7,
		},
		{
			name:     "spread and moneyline reversed order",
			a:        models.Leg{GameRef: "game-1", BetType: models.BetTypeSpread, Selection: "Lakers -3.5"},
			b:        models.Leg{GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML"},
			expected: 0.7,
		},
		{
			name:     "same game unrelated markets",
			a:        models.Leg{GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML"},
			b:        models.Leg{GameRef: "game-1", BetType: models.BetTypeTotal, Selection: "Over 220.5"},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := correlationCoefficient(tt.a, tt.b)
			if math.Abs(got-tt.expected) > scoreTolerance {
				t.Errorf("correlationCoefficient() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCorrelationPenalty(t *testing.T) {
	single := []models.Leg{
		{GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML"},
	}
	if got := correlationPenalty(single); got != 0.0 {
		t.Errorf("correlationPenalty(single leg) = %v, expected 0", got)
	}

	// Two legs from different games: one pair at 0.1
	twoGames := []models.Leg{
		{GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML"},
		{GameRef: "game-2", BetType: models.BetTypeMoneyline, Selection: "Celtics ML"},
	}
	if got := correlationPenalty(twoGames); math.Abs(got-0.1) > scoreTolerance {
		t.Errorf("correlationPenalty(two games) = %v, expected 0.1", got)
	}

	// Three legs: ML+spread same game (0.7), each vs other game (0.1, 0.1)
	mixed := []models.Leg{
		{GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML"},
		{GameRef: "game-1", BetType: models.BetTypeSpread, Selection: "Lakers -3.5"},
		{GameRef: "game-2", BetType: models.BetTypeTotal, Selection: "Over 220.5"},
	}
	expected := (0.7 + 0.1 + 0.1) / 3.0
	if got := correlationPenalty(mixed); math.Abs(got-expected) > scoreTolerance {
		t.Errorf("correlationPenalty(mixed) = %v, expected %v", got, expected)
	}
}

func TestDiversificationBonus(t *testing.T) {
	tests := []struct {
		name     string
		games    []string
		expected float64
	}{
		{"all distinct", []string{"g1", "g2", "g3"}, 1.0},
		{"two legs one game", []string{"g1", "g1"}, 0.5},
		{"three legs two games", []string{"g1", "g1", "g2"}, 2.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legs := make([]models.Leg, len(tt.games))
			for i, g := range tt.games {
				legs[i] = models.Leg{GameRef: g}
			}
			got := diversificationBonus(legs)
			if math.Abs(got-tt.expected) > scoreTolerance {
				t.Errorf("diversificationBonus() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDefaultWeightsSum(t *testing.T) {
	if sum := DefaultWeights().Sum(); math.Abs(sum-1.0) > scoreTolerance {
		t.Errorf("DefaultWeights().Sum() = %v, expected 1.0", sum)
	}
}

func TestAdjusters(t *testing.T) {
	propParlay := models.RankedParlay{HasProps: true}
	teamParlay := models.RankedParlay{HasProps: false}

	if got := PropBonus(1.15)(propParlay); math.Abs(got-1.15) > scoreTolerance {
		t.Errorf("PropBonus with props = %v, expected 1.15", got)
	}
	if got := PropBonus(1.15)(teamParlay); got != 1.0 {
		t.Errorf("PropBonus without props = %v, expected 1.0", got)
	}

	sgp := models.RankedParlay{IsSameGame: true}
	if got := SameGameBonus(1.20)(sgp); math.Abs(got-1.20) > scoreTolerance {
		t.Errorf("SameGameBonus(same game) = %v, expected 1.20", got)
	}
	if got := SameGameBonus(1.20)(teamParlay); got != 1.0 {
		t.Errorf("SameGameBonus(cross game) = %v, expected 1.0", got)
	}

	variety := models.RankedParlay{Legs: []models.Leg{
		{BetType: models.BetTypeMoneyline},
		{BetType: models.BetTypeSpread},
		{BetType: models.BetTypeTotal},
	}}
	if got := VarietyBonus(0.10)(variety); math.Abs(got-1.20) > scoreTolerance {
		t.Errorf("VarietyBonus(3 types) = %v, expected 1.20", got)
	}

	uniform := models.RankedParlay{Legs: []models.Leg{
		{BetType: models.BetTypeMoneyline},
		{BetType: models.BetTypeMoneyline},
	}}
	if got := VarietyBonus(0.10)(uniform); math.Abs(got-1.0) > scoreTolerance {
		t.Errorf("VarietyBonus(1 type) = %v, expected 1.0", got)
	}
}

func TestBuildCandidateMetrics(t *testing.T) {
	legs := []models.Leg{
		{
			GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML",
			Odds: -110, ImpliedProbability: 110.0 / 210.0, TrueProbability: 0.55,
			ExpectedValue: 0.05, ConfidenceScore: 0.70,
		},
		{
			GameRef: "game-2", BetType: models.BetTypeSpread, Selection: "Celtics -3.5",
			Odds: 120, ImpliedProbability: 100.0 / 220.0, TrueProbability: 0.48,
			ExpectedValue: 0.056, ConfidenceScore: 0.60,
		},
	}

	candidate, ok := buildCandidate(legs, DefaultWeights(), nil)
	if !ok {
		t.Fatal("buildCandidate() rejected a valid combination")
	}

	if math.Abs(candidate.CombinedDecimal-4.2) > 1e-6 {
		t.Errorf("CombinedDecimal = %v, expected 4.2", candidate.CombinedDecimal)
	}
	if math.Abs(candidate.CombinedOdds-320) > 0.01 {
		t.Errorf("CombinedOdds = %v, expected +320", candidate.CombinedOdds)
	}

	expectedImplied := (110.0 / 210.0) * (100.0 / 220.0)
	if math.Abs(candidate.ImpliedProbability-expectedImplied) > scoreTolerance {
		t.Errorf("ImpliedProbability = %v, expected %v", candidate.ImpliedProbability, expectedImplied)
	}

	if math.Abs(candidate.ConfidenceScore-0.65) > scoreTolerance {
		t.Errorf("ConfidenceScore = %v, expected 0.65", candidate.ConfidenceScore)
	}
	if candidate.ConfidenceRating != models.ConfidenceModerate {
		t.Errorf("ConfidenceRating = %q, expected %q", candidate.ConfidenceRating, models.ConfidenceModerate)
	}

	if math.Abs(candidate.CorrelationPenalty-0.1) > scoreTolerance {
		t.Errorf("CorrelationPenalty = %v, expected 0.1", candidate.CorrelationPenalty)
	}
	if math.Abs(candidate.DiversificationBonus-1.0) > scoreTolerance {
		t.Errorf("DiversificationBonus = %v, expected 1.0", candidate.DiversificationBonus)
	}

	if candidate.IsSameGame {
		t.Error("IsSameGame = true for a cross-game parlay")
	}
	if candidate.HasProps {
		t.Error("HasProps = true without any prop legs")
	}

	payout, ok := candidate.PotentialPayouts["stake_100"]
	if !ok || math.Abs(payout-420.0) > 1e-4 {
		t.Errorf("PotentialPayouts[stake_100] = %v, expected 420", payout)
	}
}

func TestBuildCandidateScoreIsolatesWeights(t *testing.T) {
	legs := []models.Leg{
		{
			GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML",
			Odds: -110, ImpliedProbability: 110.0 / 210.0, TrueProbability: 0.55,
			ExpectedValue: 0.05, ConfidenceScore: 0.70,
		},
		{
			GameRef: "game-2", BetType: models.BetTypeTotal, Selection: "Over 220.5",
			Odds: -110, ImpliedProbability: 110.0 / 210.0, TrueProbability: 0.55,
			ExpectedValue: 0.03, ConfidenceScore: 0.60,
		},
	}

	// Only the diversification weight active: score equals the bonus itself.
	candidate, ok := buildCandidate(legs, Weights{Diversification: 1.0}, nil)
	if !ok {
		t.Fatal("buildCandidate() rejected a valid combination")
	}
	if math.Abs(candidate.Score-1.0) > scoreTolerance {
		t.Errorf("Score with diversification-only weights = %v, expected 1.0", candidate.Score)
	}

	// Only the correlation weight active: score is the negated penalty.
	candidate, ok = buildCandidate(legs, Weights{Correlation: 1.0}, nil)
	if !ok {
		t.Fatal("buildCandidate() rejected a valid combination")
	}
	if math.Abs(candidate.Score-(-0.1)) > scoreTolerance {
		t.Errorf("Score with correlation-only weights = %v, expected -0.1", candidate.Score)
	}

	// Only the value weight active: score is the average leg EV.
	candidate, ok = buildCandidate(legs, Weights{Value: 1.0}, nil)
	if !ok {
		t.Fatal("buildCandidate() rejected a valid combination")
	}
	if math.Abs(candidate.Score-0.04) > scoreTolerance {
		t.Errorf("Score with value-only weights = %v, expected 0.04", candidate.Score)
	}
}

func TestBuildCandidateAppliesAdjusters(t *testing.T) {
	legs := []models.Leg{
		{
			GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML",
			Odds: 100, ImpliedProbability: 0.5, TrueProbability: 0.55,
			ExpectedValue: 0.10, ConfidenceScore: 0.70,
		},
		{
			GameRef: "game-1", BetType: models.BetTypeProp, Selection: "LeBron Over 27.5",
			Odds: -115, ImpliedProbability: 115.0 / 215.0, TrueProbability: 0.56,
			ExpectedValue: 0.04, ConfidenceScore: 0.62,
		},
	}

	base, ok := buildCandidate(legs, DefaultWeights(), nil)
	if !ok {
		t.Fatal("buildCandidate() rejected a valid combination")
	}

	adjusted, ok := buildCandidate(legs, DefaultWeights(), DefaultAdjusters())
	if !ok {
		t.Fatal("buildCandidate() rejected a valid combination")
	}

	// Prop inclusion (1.15), same game (1.20), two bet types (1.10)
	expected := base.Score * 1.15 * 1.20 * 1.10
	if math.Abs(adjusted.Score-expected) > scoreTolerance {
		t.Errorf("adjusted Score = %v, expected %v", adjusted.Score, expected)
	}
	if !adjusted.IsSameGame {
		t.Error("IsSameGame = false for a single-game parlay")
	}
	if !adjusted.HasProps {
		t.Error("HasProps = false with a prop leg present")
	}
}

func TestBuildCandidateRejectsDegenerateOdds(t *testing.T) {
	legs := []models.Leg{
		{GameRef: "game-1", BetType: models.BetTypeMoneyline, Selection: "Lakers ML", Odds: 0},
		{GameRef: "game-2", BetType: models.BetTypeMoneyline, Selection: "Celtics ML", Odds: -110},
	}

	if _, ok := buildCandidate(legs, DefaultWeights(), nil); ok {
		t.Error("buildCandidate() accepted a combination with a zero-odds leg")
	}
}
