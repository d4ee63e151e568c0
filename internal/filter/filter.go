// Package filter gates which ranked parlays are worth alerting on.
package filter

import (
	"fmt"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// Filter filters ranked parlays based on thresholds.
type Filter struct {
	minScore         float64
	minExpectedValue float64
	maxLegs          int
}

// NewFilter creates a new filter. maxLegs of 0 disables the leg cap.
func NewFilter(minScore, minExpectedValue float64, maxLegs int) *Filter {
	return &Filter{
		minScore:         minScore,
		minExpectedValue: minExpectedValue,
		maxLegs:          maxLegs,
	}
}

// ShouldAlert returns true if the parlay meets alert thresholds. The
// second return value explains the rejection.
func (f *Filter) ShouldAlert(p models.RankedParlay) (bool, string) {
	if p.Score < f.minScore {
		return false, fmt.Sprintf("score %.3f below threshold %.3f", p.Score, f.minScore)
	}

	if p.ExpectedValue < f.minExpectedValue {
		return false, fmt.Sprintf("EV %.3f below threshold %.3f", p.ExpectedValue, f.minExpectedValue)
	}

	if f.maxLegs > 0 && p.NumLegs > f.maxLegs {
		return false, fmt.Sprintf("%d legs exceeds cap %d", p.NumLegs, f.maxLegs)
	}

	return true, ""
}

// FilterParlays filters a batch.
func (f *Filter) FilterParlays(parlays []models.RankedParlay) []models.RankedParlay {
	var filtered []models.RankedParlay

	for _, p := range parlays {
		if should, _ := f.ShouldAlert(p); should {
			filtered = append(filtered, p)
		}
	}

	return filtered
}
