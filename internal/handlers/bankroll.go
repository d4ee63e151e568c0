package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const defaultBankroll = 1000.0

// GetBankroll returns the tracked bankroll, seeding the default on first
// call.
func (h *Handler) GetBankroll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bankroll, err := h.store.GetBankroll(ctx, defaultBankroll)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve bankroll", err)
		return
	}

	respondJSON(w, http.StatusOK, bankroll)
}

// UpdateBankroll replaces the tracked balance.
func (h *Handler) UpdateBankroll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req struct {
		Balance float64 `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Balance < 0 {
		respondError(w, http.StatusBadRequest, "balance must be non-negative", nil)
		return
	}

	bankroll, err := h.store.SetBankroll(ctx, req.Balance)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update bankroll", err)
		return
	}

	respondJSON(w, http.StatusOK, bankroll)
}
