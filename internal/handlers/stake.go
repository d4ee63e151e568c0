package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Justraymond99/headcrackbot/pkg/oddsmath"
)

// StakeRequest is the body of POST /stake/recommend.
type StakeRequest struct {
	WinProbability float64 `json:"win_probability"`
	DecimalOdds    float64 `json:"decimal_odds"`
	AmericanOdds   int     `json:"american_odds,omitempty"`
	Fraction       float64 `json:"fraction,omitempty"`
	MaxPct         float64 `json:"max_pct,omitempty"`
}

// RecommendStake computes a fractional Kelly stake against the tracked
// bankroll. Either decimal_odds or american_odds must be provided.
func (h *Handler) RecommendStake(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req StakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.WinProbability <= 0 || req.WinProbability >= 1 {
		respondError(w, http.StatusBadRequest, "win_probability must be in (0, 1)", nil)
		return
	}

	decimal := req.DecimalOdds
	if decimal == 0 && req.AmericanOdds != 0 {
		d, err := oddsmath.AmericanToDecimal(req.AmericanOdds)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid american_odds", err)
			return
		}
		decimal = d
	}
	if decimal <= 1.0 {
		respondError(w, http.StatusBadRequest, "decimal_odds must exceed 1.0", nil)
		return
	}

	fraction := req.Fraction
	if fraction <= 0 || fraction > 1 {
		fraction = oddsmath.DefaultKellyFraction
	}
	maxPct := req.MaxPct
	if maxPct <= 0 || maxPct > 1 {
		maxPct = oddsmath.DefaultKellyMaxPct
	}

	fullKelly := oddsmath.KellyFraction(req.WinProbability, decimal)
	stakePct := oddsmath.FractionalKelly(req.WinProbability, decimal, fraction, maxPct)

	resp := map[string]interface{}{
		"full_kelly_pct":  fullKelly * 100,
		"recommended_pct": stakePct * 100,
		"fraction":        fraction,
		"max_pct":         maxPct * 100,
		"win_probability": req.WinProbability,
		"decimal_odds":    decimal,
	}

	// Attach a dollar amount when a bankroll is tracked
	if bankroll, err := h.store.GetBankroll(ctx, 0); err == nil && bankroll.Balance > 0 {
		resp["bankroll"] = bankroll.Balance
		resp["recommended_stake"] = bankroll.Balance * stakePct
	}

	respondJSON(w, http.StatusOK, resp)
}
