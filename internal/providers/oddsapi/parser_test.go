package oddsapi

import (
	"testing"
	"time"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

func floatPtr(v float64) *float64 { return &v }

func teamMarkets(home, away string) []Market {
	return []Market{
		{
			Key: "h2h",
			Outcomes: []Outcome{
				{Name: home, Price: -150},
				{Name: away, Price: 130},
			},
		},
		{
			Key: "spreads",
			Outcomes: []Outcome{
				{Name: home, Price: -110, Point: floatPtr(-3.5)},
				{Name: away, Price: -110, Point: floatPtr(3.5)},
			},
		},
		{
			Key: "totals",
			Outcomes: []Outcome{
				{Name: "Over", Price: -105, Point: floatPtr(220.5)},
				{Name: "Under", Price: -115, Point: floatPtr(220.5)},
			},
		},
	}
}

func TestParseEvent(t *testing.T) {
	commence := time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC)
	event := Event{
		ID:           "evt-123",
		SportKey:     "basketball_nba",
		CommenceTime: commence,
		HomeTeam:     "Los Angeles Lakers",
		AwayTeam:     "Boston Celtics",
		Bookmakers: []Bookmaker{
			{Key: "fanduel", Markets: teamMarkets("Los Angeles Lakers", "Boston Celtics")},
		},
	}

	game := ParseEvent(event, "nba")

	if game.GameRef != "evt-123" || game.Sport != "nba" {
		t.Errorf("identity fields wrong: ref=%q sport=%q", game.GameRef, game.Sport)
	}
	if !game.GameDate.Equal(commence) {
		t.Errorf("GameDate = %v, expected %v", game.GameDate, commence)
	}
	if game.Status != models.StatusScheduled {
		t.Errorf("Status = %q, expected %q", game.Status, models.StatusScheduled)
	}

	if game.HomeMoneyline == nil || *game.HomeMoneyline != -150 {
		t.Error("home moneyline not extracted")
	}
	if game.AwayMoneyline == nil || *game.AwayMoneyline != 130 {
		t.Error("away moneyline not extracted")
	}
	if game.Spread == nil || *game.Spread != -3.5 {
		t.Error("home spread point not extracted")
	}
	if game.SpreadHome == nil || *game.SpreadHome != -110 {
		t.Error("home spread price not extracted")
	}
	if game.Total == nil || *game.Total != 220.5 {
		t.Error("total point not extracted")
	}
	if game.OverOdds == nil || *game.OverOdds != -105 {
		t.Error("over price not extracted")
	}
	if game.UnderOdds == nil || *game.UnderOdds != -115 {
		t.Error("under price not extracted")
	}
}

func TestParseEventNoBookmakers(t *testing.T) {
	event := Event{
		ID:       "evt-456",
		HomeTeam: "Miami Heat",
		AwayTeam: "Denver Nuggets",
	}

	game := ParseEvent(event, "nba")
	if game.GameRef != "evt-456" {
		t.Errorf("GameRef = %q, expected evt-456", game.GameRef)
	}
	if game.HomeMoneyline != nil || game.Spread != nil || game.Total != nil {
		t.Error("markets populated without any bookmaker")
	}
}

func TestPickBookmakerPreference(t *testing.T) {
	books := []Bookmaker{
		{Key: "betmgm"},
		{Key: "draftkings"},
		{Key: "pinnacle"},
	}

	if got := pickBookmaker(books); got == nil || got.Key != "pinnacle" {
		t.Errorf("pickBookmaker() = %v, expected pinnacle as sharpest", got)
	}

	// No preferred book present falls back to the first listed
	unknown := []Bookmaker{{Key: "bovada"}, {Key: "caesars"}}
	if got := pickBookmaker(unknown); got == nil || got.Key != "bovada" {
		t.Errorf("pickBookmaker() fallback = %v, expected bovada", got)
	}

	if got := pickBookmaker(nil); got != nil {
		t.Errorf("pickBookmaker(nil) = %v, expected nil", got)
	}
}

func TestParsePropsPairsOverUnder(t *testing.T) {
	event := &Event{
		ID:       "evt-123",
		HomeTeam: "Los Angeles Lakers",
		AwayTeam: "Boston Celtics",
		Bookmakers: []Bookmaker{
			{
				Key: "draftkings",
				Markets: []Market{
					{
						Key: "player_points",
						Outcomes: []Outcome{
							{Name: "Over", Description: "LeBron James", Price: -115, Point: floatPtr(27.5)},
							{Name: "Under", Description: "LeBron James", Price: -105, Point: floatPtr(27.5)},
							{Name: "Over", Description: "Anthony Davis", Price: -110, Point: floatPtr(24.5)},
						},
					},
					{
						Key: "player_assists",
						Outcomes: []Outcome{
							{Name: "Over", Description: "LeBron James", Price: -120, Point: floatPtr(7.5)},
						},
					},
				},
			},
		},
	}

	props := ParseProps(event)
	if len(props) != 3 {
		t.Fatalf("ParseProps() returned %d props, expected 3", len(props))
	}

	lebron := props[0]
	if lebron.PlayerName != "LeBron James" || lebron.PropType != "points" {
		t.Errorf("first prop = %q %q, expected LeBron James points", lebron.PlayerName, lebron.PropType)
	}
	if lebron.MarketKey != "player_points" {
		t.Errorf("MarketKey = %q, expected player_points", lebron.MarketKey)
	}
	if lebron.Line == nil || *lebron.Line != 27.5 {
		t.Error("line not extracted")
	}
	if lebron.OverOdds == nil || *lebron.OverOdds != -115 {
		t.Error("over side not paired")
	}
	if lebron.UnderOdds == nil || *lebron.UnderOdds != -105 {
		t.Error("under side not paired onto the same prop")
	}

	// Same player in a different market is a separate prop
	if props[2].PlayerName != "LeBron James" || props[2].PropType != "assists" {
		t.Errorf("third prop = %q %q, expected LeBron James assists", props[2].PlayerName, props[2].PropType)
	}
}

func TestParsePropsTeamMarket(t *testing.T) {
	// Team/period markets arrive without a player description
	event := &Event{
		ID:       "evt-123",
		HomeTeam: "Los Angeles Lakers",
		AwayTeam: "Boston Celtics",
		Bookmakers: []Bookmaker{
			{
				Key: "fanduel",
				Markets: []Market{
					{
						Key: "team_totals",
						Outcomes: []Outcome{
							{Name: "Over", Price: -110, Point: floatPtr(112.5)},
						},
					},
				},
			},
		},
	}

	props := ParseProps(event)
	if len(props) != 1 {
		t.Fatalf("ParseProps() returned %d props, expected 1", len(props))
	}
	if props[0].PlayerName != "TEAM_Los Angeles Lakers" {
		t.Errorf("PlayerName = %q, expected TEAM_ prefix with the home team", props[0].PlayerName)
	}
	if props[0].PropType != "totals" {
		t.Errorf("PropType = %q, expected totals", props[0].PropType)
	}
}

func TestParsePropsIgnoresTeamMarketsSection(t *testing.T) {
	// Core team markets mixed into a props response are skipped
	event := &Event{
		ID:         "evt-123",
		HomeTeam:   "Los Angeles Lakers",
		AwayTeam:   "Boston Celtics",
		Bookmakers: []Bookmaker{{Key: "fanduel", Markets: teamMarkets("Los Angeles Lakers", "Boston Celtics")}},
	}

	if props := ParseProps(event); len(props) != 0 {
		t.Errorf("ParseProps() returned %d props from h2h/spreads/totals, expected 0", len(props))
	}
}
