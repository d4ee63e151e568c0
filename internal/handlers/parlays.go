package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Justraymond99/headcrackbot/internal/analyzer"
	"github.com/Justraymond99/headcrackbot/internal/parlay"
	"github.com/Justraymond99/headcrackbot/internal/store"
	"github.com/Justraymond99/headcrackbot/pkg/models"
)

func stampSport(parlays []models.RankedParlay, sport string) {
	for i := range parlays {
		parlays[i].Sport = sport
	}
}

// GetParlays retrieves stored parlays with optional filters.
// Query params: sport, min_score, same_game, limit
func (h *Handler) GetParlays(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filters := store.ParlayFilters{
		Sport:    r.URL.Query().Get("sport"),
		MinScore: parseFloatParam(r, "min_score", 0),
		Limit:    parseIntParam(r, "limit", 50),
	}

	if sgStr := r.URL.Query().Get("same_game"); sgStr != "" {
		if sg, err := strconv.ParseBool(sgStr); err == nil {
			filters.SameGame = &sg
		}
	}

	parlays, err := h.store.GetParlays(ctx, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve parlays", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"parlays": parlays,
		"count":   len(parlays),
	})
}

// GetParlay retrieves a single parlay by ID.
func (h *Handler) GetParlay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	idStr := chi.URLParam(r, "parlayID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid parlay id", err)
		return
	}

	p, err := h.store.GetParlayByID(ctx, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, "parlay not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to retrieve parlay", err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// LockParlay marks a parlay as locked in, removing it from the
// pending pool.
func (h *Handler) LockParlay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	idStr := chi.URLParam(r, "parlayID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid parlay id", err)
		return
	}

	if err := h.store.UpdateParlayStatus(ctx, id, models.ParlayLocked); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, "parlay not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to lock parlay", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":     id,
		"status": models.ParlayLocked,
	})
}

// GenerateRequest is the body of POST /parlays/generate.
type GenerateRequest struct {
	Sport      string `json:"sport"`
	LookaheadH int    `json:"lookahead_hours,omitempty"`

	MinLegs    int `json:"min_legs,omitempty"`
	MaxLegs    int `json:"max_legs,omitempty"`
	MaxResults int `json:"max_results,omitempty"`

	SameGame bool   `json:"same_game,omitempty"`
	GameRef  string `json:"game_ref,omitempty"`

	// Optional scoring weight overrides. Weights that do not sum to 1.0
	// are accepted with a warning in the response.
	Weights *parlay.Weights `json:"weights,omitempty"`
}

// GenerateParlays generates ranked parlays on demand from current odds.
func (h *Handler) GenerateParlays(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Sport == "" {
		respondError(w, http.StatusBadRequest, "sport is required", nil)
		return
	}
	if req.SameGame && req.GameRef == "" {
		respondError(w, http.StatusBadRequest, "game_ref is required for same-game parlays", nil)
		return
	}

	lookahead := 48 * time.Hour
	if req.LookaheadH > 0 {
		lookahead = time.Duration(req.LookaheadH) * time.Hour
	}

	games, err := h.store.GetUpcomingGames(ctx, req.Sport, lookahead)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve games", err)
		return
	}

	legs := analyzer.New(analyzer.DefaultMinConfidence).AnalyzeGames(games)

	cfg := parlay.DefaultConfig()
	if req.MinLegs > 0 {
		cfg.MinLegs = req.MinLegs
	}
	if req.MaxLegs > 0 {
		cfg.MaxLegs = req.MaxLegs
	}
	if req.MaxResults > 0 {
		cfg.MaxResults = req.MaxResults
	}

	var warning string
	if req.Weights != nil {
		cfg.Weights = *req.Weights
		if sum := req.Weights.Sum(); math.Abs(sum-1.0) > 1e-9 {
			warning = "weights do not sum to 1.0; scores are not comparable with defaults"
		}
	}

	gen := parlay.New(cfg)

	var parlays interface{}
	var count int
	if req.SameGame {
		results := gen.GenerateSameGame(legs, req.GameRef)
		stampSport(results, req.Sport)
		parlays, count = results, len(results)
	} else {
		results := gen.Generate(legs)
		stampSport(results, req.Sport)
		parlays, count = results, len(results)
	}

	resp := map[string]interface{}{
		"parlays":    parlays,
		"count":      count,
		"legs_found": len(legs),
	}
	if warning != "" {
		resp["warning"] = warning
	}

	respondJSON(w, http.StatusOK, resp)
}
