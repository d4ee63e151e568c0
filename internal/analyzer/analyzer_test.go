package analyzer_test

import (
	"math"
	"testing"

	"github.com/Justraymond99/headcrackbot/internal/analyzer"
	"github.com/Justraymond99/headcrackbot/pkg/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func legsByType(legs []models.Leg, betType string) []models.Leg {
	var out []models.Leg
	for _, leg := range legs {
		if leg.BetType == betType {
			out = append(out, leg)
		}
	}
	return out
}

func TestAnalyzeGameMoneylineRequiresEdge(t *testing.T) {
	// Even-money lines with a 55% home model: only the home side has
	// positive EV.
	game := models.Game{
		GameRef:       "nba-lal-bos-20260115",
		Sport:         "nba",
		HomeTeam:      "Lakers",
		AwayTeam:      "Celtics",
		HomeMoneyline: intPtr(100),
		AwayMoneyline: intPtr(100),
		ModelProb:     floatPtr(0.55),
	}

	a := analyzer.New(analyzer.DefaultMinConfidence)
	legs := legsByType(a.AnalyzeGame(&game), models.BetTypeMoneyline)

	if len(legs) != 1 {
		t.Fatalf("got %d moneyline legs, expected 1 (home side only)", len(legs))
	}

	leg := legs[0]
	if leg.Selection != "Lakers" {
		t.Errorf("Selection = %q, expected the home team", leg.Selection)
	}
	if math.Abs(leg.TrueProbability-0.55) > 1e-9 {
		t.Errorf("TrueProbability = %v, expected the model estimate 0.55", leg.TrueProbability)
	}
	// EV = 0.55*1 - 0.45 at even money
	if math.Abs(leg.ExpectedValue-0.10) > 1e-9 {
		t.Errorf("ExpectedValue = %v, expected 0.10", leg.ExpectedValue)
	}
}

func TestAnalyzeGameMoneylineFairFallback(t *testing.T) {
	// Without a model probability the posted line is treated as fair, so
	// no moneyline leg can clear the positive-EV gate.
	game := models.Game{
		GameRef:       "nba-lal-bos-20260115",
		HomeTeam:      "Lakers",
		AwayTeam:      "Celtics",
		HomeMoneyline: intPtr(-110),
		AwayMoneyline: intPtr(-110),
	}

	a := analyzer.New(analyzer.DefaultMinConfidence)
	if legs := legsByType(a.AnalyzeGame(&game), models.BetTypeMoneyline); len(legs) != 0 {
		t.Errorf("got %d moneyline legs from fair lines, expected 0", len(legs))
	}
}

func TestAnalyzeGameMoneylineConfidenceGate(t *testing.T) {
	// A heavy favorite carries low line confidence even when the model
	// shows a large edge.
	game := models.Game{
		GameRef:       "nba-lal-bos-20260115",
		HomeTeam:      "Lakers",
		AwayTeam:      "Celtics",
		HomeMoneyline: intPtr(-400),
		ModelProb:     floatPtr(0.90),
	}

	a := analyzer.New(analyzer.DefaultMinConfidence)
	if legs := legsByType(a.AnalyzeGame(&game), models.BetTypeMoneyline); len(legs) != 0 {
		t.Errorf("got %d moneyline legs, expected 0 below the confidence gate", len(legs))
	}
}

func TestAnalyzeGameSpreadAndTotal(t *testing.T) {
	game := models.Game{
		GameRef:    "nba-lal-bos-20260115",
		HomeTeam:   "Lakers",
		AwayTeam:   "Celtics",
		Spread:     floatPtr(-3.5),
		SpreadHome: intPtr(-110),
		Total:      floatPtr(220.5),
		OverOdds:   intPtr(-105),
	}

	a := analyzer.New(analyzer.DefaultMinConfidence)
	legs := a.AnalyzeGame(&game)

	spreads := legsByType(legs, models.BetTypeSpread)
	if len(spreads) != 1 {
		t.Fatalf("got %d spread legs, expected 1", len(spreads))
	}
	if spreads[0].Selection != "Lakers -3.5" {
		t.Errorf("spread Selection = %q, expected %q", spreads[0].Selection, "Lakers -3.5")
	}
	// No model for spreads: nominal EV, true probability from the line
	if math.Abs(spreads[0].ExpectedValue-0.05) > 1e-9 {
		t.Errorf("spread ExpectedValue = %v, expected the nominal 0.05", spreads[0].ExpectedValue)
	}
	if math.Abs(spreads[0].TrueProbability-spreads[0].ImpliedProbability) > 1e-9 {
		t.Error("spread TrueProbability should fall back to the implied probability")
	}

	totals := legsByType(legs, models.BetTypeTotal)
	if len(totals) != 1 {
		t.Fatalf("got %d total legs, expected 1", len(totals))
	}
	if totals[0].Selection != "Over 220.5" {
		t.Errorf("total Selection = %q, expected %q", totals[0].Selection, "Over 220.5")
	}
}

func TestAnalyzeGamePropLegs(t *testing.T) {
	game := models.Game{
		GameRef:  "nba-lal-bos-20260115",
		HomeTeam: "Lakers",
		AwayTeam: "Celtics",
		Props: []models.PlayerProp{
			{
				PlayerName: "LeBron James",
				PropType:   "points",
				Line:       floatPtr(27.5),
				OverOdds:   intPtr(-110),
				UnderOdds:  intPtr(-110),
			},
		},
	}

	a := analyzer.New(analyzer.DefaultMinConfidence)
	legs := legsByType(a.AnalyzeGame(&game), models.BetTypeProp)

	if len(legs) != 2 {
		t.Fatalf("got %d prop legs, expected over and under", len(legs))
	}

	over := legs[0]
	if over.Selection != "Over 27.5" {
		t.Errorf("Selection = %q, expected %q", over.Selection, "Over 27.5")
	}
	if over.PlayerName != "LeBron James" || over.PropType != "points" {
		t.Errorf("prop metadata lost: player=%q type=%q", over.PlayerName, over.PropType)
	}
	if over.PropLine == nil || *over.PropLine != 27.5 {
		t.Error("PropLine not carried onto the leg")
	}
	// Fair -110 prices have zero EV; the display floor applies
	if math.Abs(over.ExpectedValue-0.01) > 1e-9 {
		t.Errorf("prop ExpectedValue = %v, expected the 0.01 floor", over.ExpectedValue)
	}
}

func TestAnalyzeGameYesProp(t *testing.T) {
	game := models.Game{
		GameRef:  "nba-lal-bos-20260115",
		HomeTeam: "Lakers",
		AwayTeam: "Celtics",
		Props: []models.PlayerProp{
			{
				PlayerName: "LeBron James",
				PropType:   "triple_double",
				YesOdds:    intPtr(250),
			},
		},
	}

	a := analyzer.New(analyzer.DefaultMinConfidence)
	legs := legsByType(a.AnalyzeGame(&game), models.BetTypeProp)

	if len(legs) != 1 {
		t.Fatalf("got %d prop legs, expected 1 yes leg", len(legs))
	}
	if legs[0].Selection != "Yes" {
		t.Errorf("Selection = %q, expected %q", legs[0].Selection, "Yes")
	}
}

func TestAnalyzeGameTeamMarketProp(t *testing.T) {
	// TEAM_ prefixed props are team or period markets: the bet type comes
	// from the market itself so correlation treats them as distinct.
	game := models.Game{
		GameRef:  "nba-lal-bos-20260115",
		HomeTeam: "Lakers",
		AwayTeam: "Celtics",
		Props: []models.PlayerProp{
			{
				PlayerName: "TEAM_Lakers",
				PropType:   "team_total",
				Line:       floatPtr(112.5),
				OverOdds:   intPtr(-110),
			},
		},
	}

	a := analyzer.New(analyzer.DefaultMinConfidence)
	legs := a.AnalyzeGame(&game)

	if len(legs) != 1 {
		t.Fatalf("got %d legs, expected 1", len(legs))
	}
	if legs[0].BetType != "team_total" {
		t.Errorf("BetType = %q, expected %q", legs[0].BetType, "team_total")
	}
}

func TestAnalyzeGamesFlattens(t *testing.T) {
	games := []models.Game{
		{
			GameRef:       "nba-lal-bos-20260115",
			HomeTeam:      "Lakers",
			AwayTeam:      "Celtics",
			HomeMoneyline: intPtr(100),
			ModelProb:     floatPtr(0.55),
		},
		{
			GameRef:    "nba-mia-den-20260115",
			HomeTeam:   "Heat",
			AwayTeam:   "Nuggets",
			Spread:     floatPtr(2.5),
			SpreadHome: intPtr(-110),
		},
	}

	a := analyzer.New(analyzer.DefaultMinConfidence)
	legs := a.AnalyzeGames(games)

	if len(legs) != 2 {
		t.Fatalf("got %d legs across games, expected 2", len(legs))
	}
	if legs[0].GameRef == legs[1].GameRef {
		t.Error("legs should come from distinct games")
	}
}

func TestNewDefaultsMinConfidence(t *testing.T) {
	game := models.Game{
		GameRef:    "nba-lal-bos-20260115",
		HomeTeam:   "Lakers",
		AwayTeam:   "Celtics",
		Spread:     floatPtr(-3.5),
		SpreadHome: intPtr(-110),
	}

	// Zero falls back to the default gate, which a spread just clears
	if legs := analyzer.New(0).AnalyzeGame(&game); len(legs) != 1 {
		t.Errorf("New(0) produced %d legs, expected 1 under the default gate", len(legs))
	}

	// A stricter gate excludes the same spread
	if legs := analyzer.New(0.7).AnalyzeGame(&game); len(legs) != 0 {
		t.Errorf("New(0.7) produced %d legs, expected 0", len(legs))
	}
}
