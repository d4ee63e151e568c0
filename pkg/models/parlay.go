package models

import "time"

// Bet types the generator understands. The set is open: prop markets carry
// vendor market keys (player_points, alternate_spreads, totals_q1, ...) as
// their bet type and are treated as unrelated markets for correlation.
const (
	BetTypeMoneyline = "moneyline"
	BetTypeSpread    = "spread"
	BetTypeTotal     = "total"
	BetTypeProp      = "prop"
)

// Confidence rating buckets, for human display only.
const (
	ConfidenceHigh     = "High"
	ConfidenceModerate = "Moderate"
	ConfidenceLow      = "Low"
)

// Parlay result states
const (
	ParlayPending = "pending"
	ParlayLocked  = "locked"
	ParlayWon     = "won"
	ParlayLost    = "lost"
)

// Leg is one candidate single bet derived from a game's markets.
type Leg struct {
	ID      int64  `json:"id,omitempty"`
	GameRef string `json:"game_ref"`

	BetType   string `json:"bet_type"`
	Selection string `json:"selection"`
	Odds      int    `json:"odds"`

	ImpliedProbability float64 `json:"implied_probability"`
	TrueProbability    float64 `json:"true_probability"`
	ExpectedValue      float64 `json:"expected_value"`
	ConfidenceScore    float64 `json:"confidence_score"`

	// Prop metadata, empty for team markets
	PlayerName string   `json:"player_name,omitempty"`
	PropType   string   `json:"prop_type,omitempty"`
	PropLine   *float64 `json:"prop_line,omitempty"`

	Reasoning string `json:"reasoning,omitempty"`
	Result    string `json:"result,omitempty"`
}

// RankedParlay is one scored leg combination as returned to callers:
// the dashboard, the notification pipeline, and the persistence layer.
type RankedParlay struct {
	Legs    []Leg `json:"legs"`
	NumLegs int   `json:"num_legs"`

	CombinedOdds       float64 `json:"combined_odds"`
	CombinedDecimal    float64 `json:"combined_decimal"`
	ImpliedProbability float64 `json:"implied_probability"`
	ExpectedValue      float64 `json:"expected_value"`

	ConfidenceScore  float64 `json:"confidence_score"`
	ConfidenceRating string  `json:"confidence_rating"`
	Score            float64 `json:"score"`

	CorrelationPenalty   float64 `json:"correlation_penalty"`
	DiversificationBonus float64 `json:"diversification_bonus"`

	Sport      string `json:"sport,omitempty"`
	IsSameGame bool   `json:"is_same_game"`
	HasProps   bool   `json:"has_props"`

	// Business-layer extras for display
	PotentialPayouts    map[string]float64 `json:"potential_payouts,omitempty"`
	RecommendedStakePct float64            `json:"recommended_stake_pct"`

	GeneratedAt time.Time `json:"generated_at"`
}

// ratingEpsilon keeps averaged confidence scores that land a float ulp
// below a bucket boundary (e.g. (0.70+0.60)/2) in the intended bucket.
const ratingEpsilon = 1e-9

// ConfidenceRatingFor buckets an average confidence score for display.
// It is a pure classification, not a gate. Boundaries are inclusive.
func ConfidenceRatingFor(avgConfidence float64) string {
	switch {
	case avgConfidence >= 0.75-ratingEpsilon:
		return ConfidenceHigh
	case avgConfidence >= 0.65-ratingEpsilon:
		return ConfidenceModerate
	default:
		return ConfidenceLow
	}
}

// Parlay is a persisted parlay row with its child legs.
type Parlay struct {
	ID      int64  `json:"id"`
	Sport   string `json:"sport,omitempty"`
	NumLegs int    `json:"num_legs"`

	CombinedOdds       float64 `json:"combined_odds"`
	CombinedDecimal    float64 `json:"combined_decimal"`
	ImpliedProbability float64 `json:"implied_probability"`
	ExpectedValue      float64 `json:"expected_value"`
	ConfidenceScore    float64 `json:"confidence_score"`
	ConfidenceRating   string  `json:"confidence_rating"`
	Score              float64 `json:"score"`

	CorrelationPenalty   float64 `json:"correlation_penalty"`
	DiversificationBonus float64 `json:"diversification_bonus"`

	IsSameGame          bool    `json:"is_same_game"`
	HasProps            bool    `json:"has_props"`
	RecommendedStakePct float64 `json:"recommended_stake_pct"`

	Status string `json:"status"`
	Legs   []Leg  `json:"legs"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Bankroll tracks the betting budget used for Kelly stake recommendations.
type Bankroll struct {
	ID        int64     `json:"id"`
	Balance   float64   `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrorResponse is the JSON error body returned by the API gateway.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
