package models

import "time"

// Game statuses
const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinished  = "finished"
)

// Game represents one match/event with its current market prices.
// Odds fields are pointers because books do not post every market.
type Game struct {
	ID       int64     `json:"id"`
	GameRef  string    `json:"game_ref"`
	Sport    string    `json:"sport"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	GameDate time.Time `json:"game_date"`
	Status   string    `json:"status"`

	HomeMoneyline *int     `json:"home_moneyline,omitempty"`
	AwayMoneyline *int     `json:"away_moneyline,omitempty"`
	Spread        *float64 `json:"spread,omitempty"`
	SpreadHome    *int     `json:"spread_home_odds,omitempty"`
	SpreadAway    *int     `json:"spread_away_odds,omitempty"`
	Total         *float64 `json:"total,omitempty"`
	OverOdds      *int     `json:"over_odds,omitempty"`
	UnderOdds     *int     `json:"under_odds,omitempty"`

	// ModelProb is an externally supplied estimate of the home side's true
	// win probability. When absent the analyzer falls back to the implied
	// probability of the posted moneyline.
	ModelProb *float64 `json:"model_prob,omitempty"`

	Props []PlayerProp `json:"props,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerProp represents a player or team/period prop market attached to a game.
// Team and period markets reuse this shape with a TEAM_ prefixed name, the way
// the vendor feed delivers them.
type PlayerProp struct {
	ID          int64    `json:"id"`
	GameRef     string   `json:"game_ref"`
	PlayerName  string   `json:"player_name"`
	PropType    string   `json:"prop_type"`
	Line        *float64 `json:"line,omitempty"`
	OverOdds    *int     `json:"over_odds,omitempty"`
	UnderOdds   *int     `json:"under_odds,omitempty"`
	YesOdds     *int     `json:"yes_odds,omitempty"`
	MarketKey   string   `json:"market_key,omitempty"`
	Description string   `json:"description,omitempty"`
}
