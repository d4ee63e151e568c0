package ws

import (
	"testing"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

func boolPtr(v bool) *bool { return &v }

func TestMatchesFilter(t *testing.T) {
	parlay := models.RankedParlay{
		Sport:      "nba",
		NumLegs:    3,
		Score:      0.45,
		IsSameGame: false,
	}

	tests := []struct {
		name     string
		filter   SubscriptionFilter
		expected bool
	}{
		{"empty filter matches everything", SubscriptionFilter{}, true},
		{"sport match", SubscriptionFilter{Sports: []string{"nba", "nfl"}}, true},
		{"sport mismatch", SubscriptionFilter{Sports: []string{"nfl"}}, false},
		{"min score met", SubscriptionFilter{MinScore: 0.4}, true},
		{"min score too high", SubscriptionFilter{MinScore: 0.5}, false},
		{"leg range match", SubscriptionFilter{MinLegs: 2, MaxLegs: 4}, true},
		{"too few legs", SubscriptionFilter{MinLegs: 4}, false},
		{"too many legs", SubscriptionFilter{MaxLegs: 2}, false},
		{"same game required", SubscriptionFilter{SameGame: boolPtr(true)}, false},
		{"cross game required", SubscriptionFilter{SameGame: boolPtr(false)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient("test-client", nil, nil)
			client.SetFilter(tt.filter)

			if got := client.MatchesFilter(parlay); got != tt.expected {
				t.Errorf("MatchesFilter() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSetFilterReplaces(t *testing.T) {
	client := NewClient("test-client", nil, nil)

	client.SetFilter(SubscriptionFilter{Sports: []string{"nba"}, MinScore: 0.5})
	client.SetFilter(SubscriptionFilter{Sports: []string{"nfl"}})

	filter := client.GetFilter()
	if len(filter.Sports) != 1 || filter.Sports[0] != "nfl" {
		t.Errorf("Sports = %v, expected the replacement filter", filter.Sports)
	}
	if filter.MinScore != 0 {
		t.Errorf("MinScore = %v, expected the old threshold cleared", filter.MinScore)
	}
}
