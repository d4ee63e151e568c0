package parlay

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// sortByScore orders candidates by composite score descending. The sort is
// stable so ties keep insertion (enumeration) order, which makes results
// deterministic for identical inputs.
func sortByScore(candidates []models.RankedParlay) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// signature identifies a parlay by its unordered set of (game, selection)
// pairs. Two candidates with the same pairs are the same bet regardless of
// leg order.
func signature(p models.RankedParlay) string {
	pairs := make([]string, len(p.Legs))
	for i, leg := range p.Legs {
		pairs[i] = leg.GameRef + "|" + leg.Selection
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "||")
}

// dedupe removes candidates whose (game, selection) set already appeared.
// Input must be sorted by score so the highest-scored duplicate survives.
// Running dedupe on already-deduplicated input is a no-op.
func dedupe(candidates []models.RankedParlay) []models.RankedParlay {
	seen := make(map[string]struct{}, len(candidates))
	unique := candidates[:0]

	for _, c := range candidates {
		sig := signature(c)
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		unique = append(unique, c)
	}

	return unique
}

// diversify selects up to maxResults candidates, greedily skipping any
// whose games overlap more than overlapThreshold with games already used
// by accepted candidates. Skipped candidates are backfilled in score order
// when the greedy pass accepts fewer than maxResults, so callers still get
// maxResults candidates whenever enough exist.
func diversify(candidates []models.RankedParlay, maxResults int, overlapThreshold float64) []models.RankedParlay {
	if maxResults <= 0 || len(candidates) == 0 {
		return nil
	}

	selected := make([]models.RankedParlay, 0, maxResults)
	skipped := make([]models.RankedParlay, 0, len(candidates))
	usedGames := make(map[string]struct{})

	for _, c := range candidates {
		if len(selected) >= maxResults {
			break
		}

		games := gameSet(c)
		overlap := 0
		for g := range games {
			if _, ok := usedGames[g]; ok {
				overlap++
			}
		}

		if float64(overlap) > float64(len(games))*overlapThreshold {
			skipped = append(skipped, c)
			continue
		}

		selected = append(selected, c)
		for g := range games {
			usedGames[g] = struct{}{}
		}
	}

	// Backfill so diversification never shrinks the result set below K
	for _, c := range skipped {
		if len(selected) >= maxResults {
			break
		}
		selected = append(selected, c)
	}

	if len(skipped) > 0 {
		fmt.Printf("diversification: %d selected, %d overflow candidates considered for backfill\n",
			len(selected), len(skipped))
	}

	return selected
}

func gameSet(p models.RankedParlay) map[string]struct{} {
	games := make(map[string]struct{}, len(p.Legs))
	for _, leg := range p.Legs {
		games[leg.GameRef] = struct{}{}
	}
	return games
}
