// Package analyzer turns stored games into candidate parlay legs.
//
// It is the ingestion-side collaborator of the parlay generator: every leg
// it emits carries odds, implied probability, an estimated true
// probability, expected value, a confidence score, and reasoning text.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/Justraymond99/headcrackbot/pkg/models"
	"github.com/Justraymond99/headcrackbot/pkg/oddsmath"
)

const (
	// DefaultMinConfidence gates team-market legs. Props use 90% of it to
	// encourage variety in the pool.
	DefaultMinConfidence = 0.6

	// propEVTolerance admits slightly negative-EV props; their displayed
	// EV is floored at propEVFloor so ranking stays sane.
	propEVTolerance = -0.02
	propEVFloor     = 0.01

	// evEpsilon absorbs float noise when the implied-probability fallback
	// makes a fair line's EV compute to a hair above zero.
	evEpsilon = 1e-9
)

// Analyzer extracts candidate legs from games.
type Analyzer struct {
	minConfidence float64
}

// New creates an analyzer with the given minimum confidence gate.
func New(minConfidence float64) *Analyzer {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Analyzer{minConfidence: minConfidence}
}

// AnalyzeGames flattens the legs of several games into one pool.
func (a *Analyzer) AnalyzeGames(games []models.Game) []models.Leg {
	var legs []models.Leg
	for i := range games {
		legs = append(legs, a.AnalyzeGame(&games[i])...)
	}
	return legs
}

// AnalyzeGame returns the qualifying candidate legs for one game:
// moneylines for both sides, home spread, the over, and every prop market
// attached to the game. Team markets require positive EV; props tolerate a
// small negative EV for diversification.
func (a *Analyzer) AnalyzeGame(game *models.Game) []models.Leg {
	var legs []models.Leg

	if game.HomeMoneyline != nil {
		if leg, ok := a.moneylineLeg(game, game.HomeTeam, *game.HomeMoneyline, true); ok {
			legs = append(legs, leg)
		}
	}

	if game.AwayMoneyline != nil {
		if leg, ok := a.moneylineLeg(game, game.AwayTeam, *game.AwayMoneyline, false); ok {
			legs = append(legs, leg)
		}
	}

	if game.Spread != nil && game.SpreadHome != nil {
		selection := fmt.Sprintf("%s %+.1f", game.HomeTeam, *game.Spread)
		if leg, ok := a.teamMarketLeg(game, models.BetTypeSpread, selection, *game.SpreadHome,
			fmt.Sprintf("Home team spread %+.1f", *game.Spread)); ok {
			legs = append(legs, leg)
		}
	}

	if game.Total != nil && game.OverOdds != nil {
		selection := fmt.Sprintf("Over %.1f", *game.Total)
		if leg, ok := a.teamMarketLeg(game, models.BetTypeTotal, selection, *game.OverOdds,
			fmt.Sprintf("Over %.1f total points", *game.Total)); ok {
			legs = append(legs, leg)
		}
	}

	for i := range game.Props {
		legs = append(legs, a.propLegs(game, &game.Props[i])...)
	}

	return legs
}

// moneylineLeg builds a moneyline leg, gated on confidence and positive EV.
func (a *Analyzer) moneylineLeg(game *models.Game, team string, odds int, home bool) (models.Leg, bool) {
	implied, err := oddsmath.AmericanToImpliedProbability(odds)
	if err != nil {
		return models.Leg{}, false
	}

	trueProb := a.trueProbability(game, implied, home)

	ev, err := oddsmath.ExpectedValue(trueProb, odds)
	if err != nil {
		return models.Leg{}, false
	}

	confidence := confidenceScore(models.BetTypeMoneyline, odds)
	// Fair lines compute to EV within float noise of zero; they must not
	// clear the positive-EV gate.
	if ev <= evEpsilon || confidence < a.minConfidence {
		return models.Leg{}, false
	}

	side := "Away"
	if home {
		side = "Home"
	}

	return models.Leg{
		GameRef:            game.GameRef,
		BetType:            models.BetTypeMoneyline,
		Selection:          team,
		Odds:               odds,
		ImpliedProbability: implied,
		TrueProbability:    trueProb,
		ExpectedValue:      ev,
		ConfidenceScore:    confidence,
		Reasoning:          fmt.Sprintf("%s team moneyline with %.1f%% EV", side, ev*100),
	}, true
}

// teamMarketLeg builds a spread or total leg. These markets have no model
// probability, so true probability falls back to the implied probability
// and the leg carries a small nominal EV purely for ranking.
func (a *Analyzer) teamMarketLeg(game *models.Game, betType, selection string, odds int, reason string) (models.Leg, bool) {
	implied, err := oddsmath.AmericanToImpliedProbability(odds)
	if err != nil {
		return models.Leg{}, false
	}

	confidence := confidenceScore(betType, odds)
	if confidence < a.minConfidence {
		return models.Leg{}, false
	}

	return models.Leg{
		GameRef:            game.GameRef,
		BetType:            betType,
		Selection:          selection,
		Odds:               odds,
		ImpliedProbability: implied,
		TrueProbability:    implied,
		ExpectedValue:      0.05,
		ConfidenceScore:    confidence,
		Reasoning:          reason,
	}, true
}

// propLegs builds over/under/yes legs for one prop market.
func (a *Analyzer) propLegs(game *models.Game, prop *models.PlayerProp) []models.Leg {
	var legs []models.Leg

	propGate := a.minConfidence * 0.9
	name := strings.TrimPrefix(prop.PlayerName, "TEAM_")

	if prop.OverOdds != nil && prop.Line != nil {
		sel := fmt.Sprintf("Over %.1f", *prop.Line)
		reason := fmt.Sprintf("%s %s over %.1f", name, prop.PropType, *prop.Line)
		if leg, ok := a.propLeg(game, prop, sel, *prop.OverOdds, propGate, reason); ok {
			legs = append(legs, leg)
		}
	}

	if prop.UnderOdds != nil && prop.Line != nil {
		sel := fmt.Sprintf("Under %.1f", *prop.Line)
		reason := fmt.Sprintf("%s %s under %.1f", name, prop.PropType, *prop.Line)
		if leg, ok := a.propLeg(game, prop, sel, *prop.UnderOdds, propGate, reason); ok {
			legs = append(legs, leg)
		}
	}

	if prop.YesOdds != nil {
		reason := fmt.Sprintf("%s %s - yes", name, prop.PropType)
		if leg, ok := a.propLeg(game, prop, "Yes", *prop.YesOdds, propGate, reason); ok {
			legs = append(legs, leg)
		}
	}

	return legs
}

func (a *Analyzer) propLeg(game *models.Game, prop *models.PlayerProp, selection string, odds int, gate float64, reason string) (models.Leg, bool) {
	implied, err := oddsmath.AmericanToImpliedProbability(odds)
	if err != nil {
		return models.Leg{}, false
	}

	confidence := confidenceScore(models.BetTypeProp, odds)
	if confidence < gate {
		return models.Leg{}, false
	}

	ev, err := oddsmath.ExpectedValue(implied, odds)
	if err != nil || ev < propEVTolerance {
		return models.Leg{}, false
	}
	if ev < propEVFloor {
		ev = propEVFloor
	}

	betType := models.BetTypeProp
	if strings.HasPrefix(prop.PlayerName, "TEAM_") {
		betType = prop.PropType
		if betType == "" {
			betType = prop.MarketKey
		}
	}

	return models.Leg{
		GameRef:            game.GameRef,
		BetType:            betType,
		Selection:          selection,
		Odds:               odds,
		ImpliedProbability: implied,
		TrueProbability:    implied,
		ExpectedValue:      ev,
		ConfidenceScore:    confidence,
		PlayerName:         prop.PlayerName,
		PropType:           prop.PropType,
		PropLine:           prop.Line,
		Reasoning:          fmt.Sprintf("%s with %.1f%% EV", reason, ev*100),
	}, true
}

// trueProbability resolves the win probability estimate for a moneyline
// side. Games may carry an externally supplied model probability for the
// home side; otherwise the posted line is treated as fair.
func (a *Analyzer) trueProbability(game *models.Game, implied float64, home bool) float64 {
	if game.ModelProb == nil {
		return implied
	}

	if home {
		return clamp01(*game.ModelProb)
	}
	return clamp01(1.0 - *game.ModelProb)
}
