package oddsapi

import (
	"strings"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// preferredBooks orders the books we take prices from. The first book
// present on an event wins; sharper books come first.
var preferredBooks = []string{"pinnacle", "fanduel", "draftkings", "betmgm"}

// ParseEvent converts one Odds API event into a game record, taking team
// market prices from the most preferred bookmaker present.
func ParseEvent(event Event, sport string) models.Game {
	game := models.Game{
		GameRef:  event.ID,
		Sport:    sport,
		HomeTeam: event.HomeTeam,
		AwayTeam: event.AwayTeam,
		GameDate: event.CommenceTime,
		Status:   models.StatusScheduled,
	}

	book := pickBookmaker(event.Bookmakers)
	if book == nil {
		return game
	}

	for _, market := range book.Markets {
		switch market.Key {
		case "h2h":
			for _, outcome := range market.Outcomes {
				price := outcome.Price
				if outcome.Name == event.HomeTeam {
					game.HomeMoneyline = intPtr(price)
				} else if outcome.Name == event.AwayTeam {
					game.AwayMoneyline = intPtr(price)
				}
			}
		case "spreads":
			for _, outcome := range market.Outcomes {
				if outcome.Point == nil {
					continue
				}
				price := outcome.Price
				if outcome.Name == event.HomeTeam {
					game.Spread = outcome.Point
					game.SpreadHome = intPtr(price)
				} else if outcome.Name == event.AwayTeam {
					game.SpreadAway = intPtr(price)
				}
			}
		case "totals":
			for _, outcome := range market.Outcomes {
				if outcome.Point == nil {
					continue
				}
				price := outcome.Price
				switch outcome.Name {
				case "Over":
					game.Total = outcome.Point
					game.OverOdds = intPtr(price)
				case "Under":
					game.UnderOdds = intPtr(price)
				}
			}
		}
	}

	return game
}

// ParseProps extracts prop markets from a per-event odds response. Over and
// under sides of the same player/market collapse into one prop row.
func ParseProps(event *Event) []models.PlayerProp {
	book := pickBookmaker(event.Bookmakers)
	if book == nil {
		return nil
	}

	// Keyed by player|market so over/under pair up.
	index := make(map[string]*models.PlayerProp)
	var order []string

	for _, market := range book.Markets {
		if !strings.HasPrefix(market.Key, "player_") && !strings.HasPrefix(market.Key, "team_") {
			continue
		}

		propType := strings.TrimPrefix(strings.TrimPrefix(market.Key, "player_"), "team_")

		for _, outcome := range market.Outcomes {
			player := outcome.Description
			if player == "" {
				player = "TEAM_" + event.HomeTeam
			}

			key := player + "|" + market.Key
			prop, ok := index[key]
			if !ok {
				prop = &models.PlayerProp{
					GameRef:    event.ID,
					PlayerName: player,
					PropType:   propType,
					MarketKey:  market.Key,
				}
				index[key] = prop
				order = append(order, key)
			}

			price := outcome.Price
			switch outcome.Name {
			case "Over":
				prop.Line = outcome.Point
				prop.OverOdds = intPtr(price)
			case "Under":
				if prop.Line == nil {
					prop.Line = outcome.Point
				}
				prop.UnderOdds = intPtr(price)
			case "Yes":
				prop.YesOdds = intPtr(price)
			}
		}
	}

	props := make([]models.PlayerProp, 0, len(order))
	for _, key := range order {
		props = append(props, *index[key])
	}
	return props
}

func pickBookmaker(books []Bookmaker) *Bookmaker {
	for _, preferred := range preferredBooks {
		for i := range books {
			if books[i].Key == preferred {
				return &books[i]
			}
		}
	}
	if len(books) > 0 {
		return &books[0]
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
