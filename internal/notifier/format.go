package notifier

import (
	"fmt"
	"strings"

	"github.com/Justraymond99/headcrackbot/pkg/models"
	"github.com/Justraymond99/headcrackbot/pkg/oddsmath"
)

// FormatParlay renders a ranked parlay as a plain-text alert shared by
// every channel. Slack and Discord apply their own markup on top.
func FormatParlay(p models.RankedParlay) string {
	var sb strings.Builder

	kind := "PARLAY"
	if p.IsSameGame {
		kind = "SAME GAME PARLAY"
	}

	sb.WriteString(fmt.Sprintf("%s %s | %s | %d legs @ %s\n",
		ratingEmoji(p.ConfidenceRating), kind, strings.ToUpper(p.Sport),
		p.NumLegs, oddsmath.FormatAmerican(p.CombinedOdds)))

	sb.WriteString(fmt.Sprintf("Score: %.3f | EV: %+.1f%% | Hit prob: %.1f%% | Confidence: %s\n\n",
		p.Score, p.ExpectedValue*100, p.ImpliedProbability*100, p.ConfidenceRating))

	for i, leg := range p.Legs {
		sb.WriteString(fmt.Sprintf("Leg %d: %s %s @ %s",
			i+1, legLabel(leg), leg.Selection, formatOdds(leg.Odds)))
		if leg.Reasoning != "" {
			sb.WriteString(fmt.Sprintf("\n       %s", leg.Reasoning))
		}
		sb.WriteString("\n")
	}

	if payout, ok := p.PotentialPayouts["stake_100"]; ok {
		sb.WriteString(fmt.Sprintf("\n$100 pays $%.2f", payout))
	}
	if p.RecommendedStakePct > 0 {
		sb.WriteString(fmt.Sprintf(" | Suggested stake: %.2f%% of bankroll", p.RecommendedStakePct))
	}

	sb.WriteString(fmt.Sprintf("\nGenerated: %s", p.GeneratedAt.Format("15:04:05 MST")))

	return sb.String()
}

func legLabel(leg models.Leg) string {
	if leg.PlayerName != "" {
		return fmt.Sprintf("[%s] %s %s", leg.BetType, leg.PlayerName, leg.PropType)
	}
	return fmt.Sprintf("[%s]", leg.BetType)
}

func ratingEmoji(rating string) string {
	switch rating {
	case models.ConfidenceHigh:
		return "🔥"
	case models.ConfidenceModerate:
		return "📊"
	default:
		return "🎲"
	}
}

// formatOdds formats American odds with sign.
func formatOdds(americanOdds int) string {
	if americanOdds > 0 {
		return fmt.Sprintf("+%d", americanOdds)
	}
	return fmt.Sprintf("%d", americanOdds)
}
