package oddsmath_test

import (
	"math"
	"testing"

	"github.com/Justraymond99/headcrackbot/pkg/oddsmath"
)

func TestKellyFraction(t *testing.T) {
	tests := []struct {
		name    string
		winProb float64
		decimal float64
		want    float64
	}{
		{"10% edge at evens", 0.55, 2.0, 0.10},
		{"No edge", 0.50, 2.0, 0.0},
		{"Negative edge clamps to zero", 0.45, 2.0, 0.0},
		{"Underdog with edge", 0.30, 4.0, 0.0666667},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.KellyFraction(tt.winProb, tt.decimal)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("KellyFraction(%f, %f) = %f, want %f", tt.winProb, tt.decimal, got, tt.want)
			}
		})
	}
}

func TestKellyFractionInvalidInputs(t *testing.T) {
	for _, tc := range []struct{ p, d float64 }{
		{0, 2.0},
		{1, 2.0},
		{0.5, 1.0},
		{0.5, 0.5},
	} {
		if got := oddsmath.KellyFraction(tc.p, tc.d); got != 0 {
			t.Errorf("KellyFraction(%f, %f) = %f, want 0", tc.p, tc.d, got)
		}
	}
}

func TestFractionalKelly(t *testing.T) {
	// Quarter Kelly on a 10% full-Kelly edge
	got := oddsmath.FractionalKelly(0.55, 2.0, 0.25, 0.05)
	if math.Abs(got-0.025) > 0.0001 {
		t.Errorf("FractionalKelly = %f, want 0.025", got)
	}

	// The bankroll cap binds on huge edges
	got = oddsmath.FractionalKelly(0.80, 3.0, 1.0, 0.05)
	if got != 0.05 {
		t.Errorf("FractionalKelly with cap = %f, want 0.05", got)
	}
}

func TestParlayKelly(t *testing.T) {
	// Two 60% legs at combined decimal 4.2: win prob 0.36, full Kelly
	// (3.2*0.36 - 0.64)/3.2 = 0.16, quarter Kelly = 0.04
	got := oddsmath.ParlayKelly([]float64{0.6, 0.6}, 4.2)
	if math.Abs(got-0.04) > 0.0001 {
		t.Errorf("ParlayKelly = %f, want 0.04", got)
	}

	// No-edge parlay recommends nothing
	got = oddsmath.ParlayKelly([]float64{0.5, 0.5}, 4.0)
	if got != 0 {
		t.Errorf("ParlayKelly fair book = %f, want 0", got)
	}
}
