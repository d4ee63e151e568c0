package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// ParlayFilters narrows GetParlays results. Zero values mean no filter.
type ParlayFilters struct {
	Sport    string
	MinScore float64
	SameGame *bool
	Limit    int
}

// SaveParlay writes a ranked parlay and its legs in one transaction and
// returns the new row ID.
func (s *Store) SaveParlay(ctx context.Context, p *models.RankedParlay) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	parlayQuery := `
		INSERT INTO parlays (
			sport, num_legs, combined_odds, combined_decimal,
			implied_probability, expected_value, confidence_score,
			confidence_rating, score, correlation_penalty,
			diversification_bonus, is_same_game, has_props,
			recommended_stake_pct, status, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	var parlayID int64
	err = tx.QueryRowContext(ctx, parlayQuery,
		p.Sport,
		p.NumLegs,
		p.CombinedOdds,
		p.CombinedDecimal,
		p.ImpliedProbability,
		p.ExpectedValue,
		p.ConfidenceScore,
		p.ConfidenceRating,
		p.Score,
		p.CorrelationPenalty,
		p.DiversificationBonus,
		p.IsSameGame,
		p.HasProps,
		p.RecommendedStakePct,
		models.ParlayPending,
		p.GeneratedAt,
	).Scan(&parlayID)
	if err != nil {
		return 0, fmt.Errorf("insert parlay: %w", err)
	}

	legQuery := `
		INSERT INTO parlay_legs (
			parlay_id, game_ref, bet_type, selection, odds,
			implied_probability, true_probability, expected_value,
			confidence_score, player_name, prop_type, prop_line, reasoning, result
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	for _, leg := range p.Legs {
		_, err := tx.ExecContext(ctx, legQuery,
			parlayID,
			leg.GameRef,
			leg.BetType,
			leg.Selection,
			leg.Odds,
			leg.ImpliedProbability,
			leg.TrueProbability,
			leg.ExpectedValue,
			leg.ConfidenceScore,
			leg.PlayerName,
			leg.PropType,
			leg.PropLine,
			leg.Reasoning,
			models.ParlayPending,
		)
		if err != nil {
			return 0, fmt.Errorf("insert parlay leg: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return parlayID, nil
}

// SaveParlays writes a batch and returns the new IDs.
func (s *Store) SaveParlays(ctx context.Context, parlays []models.RankedParlay) ([]int64, error) {
	if len(parlays) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(parlays))
	for i := range parlays {
		id, err := s.SaveParlay(ctx, &parlays[i])
		if err != nil {
			return ids, fmt.Errorf("save parlay: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetParlays returns stored parlays ordered by score descending.
func (s *Store) GetParlays(ctx context.Context, filters ParlayFilters) ([]models.Parlay, error) {
	query := `
		SELECT id, sport, num_legs, combined_odds, combined_decimal,
		       implied_probability, expected_value, confidence_score,
		       confidence_rating, score, correlation_penalty,
		       diversification_bonus, is_same_game, has_props,
		       recommended_stake_pct, status, generated_at
		FROM parlays
		WHERE 1=1
	`
	args := []interface{}{}
	argN := 1

	if filters.Sport != "" {
		query += fmt.Sprintf(" AND sport = $%d", argN)
		args = append(args, filters.Sport)
		argN++
	}
	if filters.MinScore > 0 {
		query += fmt.Sprintf(" AND score >= $%d", argN)
		args = append(args, filters.MinScore)
		argN++
	}
	if filters.SameGame != nil {
		query += fmt.Sprintf(" AND is_same_game = $%d", argN)
		args = append(args, *filters.SameGame)
		argN++
	}

	query += " ORDER BY score DESC"

	limit := filters.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query += fmt.Sprintf(" LIMIT $%d", argN)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parlays: %w", err)
	}
	defer rows.Close()

	var parlays []models.Parlay
	for rows.Next() {
		var p models.Parlay
		err := rows.Scan(
			&p.ID, &p.Sport, &p.NumLegs, &p.CombinedOdds, &p.CombinedDecimal,
			&p.ImpliedProbability, &p.ExpectedValue, &p.ConfidenceScore,
			&p.ConfidenceRating, &p.Score, &p.CorrelationPenalty,
			&p.DiversificationBonus, &p.IsSameGame, &p.HasProps,
			&p.RecommendedStakePct, &p.Status, &p.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan parlay: %w", err)
		}
		parlays = append(parlays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parlays: %w", err)
	}

	for i := range parlays {
		legs, err := s.getParlayLegs(ctx, parlays[i].ID)
		if err != nil {
			return nil, err
		}
		parlays[i].Legs = legs
	}

	return parlays, nil
}

// GetParlayByID returns one stored parlay with its legs.
func (s *Store) GetParlayByID(ctx context.Context, id int64) (*models.Parlay, error) {
	query := `
		SELECT id, sport, num_legs, combined_odds, combined_decimal,
		       implied_probability, expected_value, confidence_score,
		       confidence_rating, score, correlation_penalty,
		       diversification_bonus, is_same_game, has_props,
		       recommended_stake_pct, status, generated_at
		FROM parlays
		WHERE id = $1
	`

	var p models.Parlay
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Sport, &p.NumLegs, &p.CombinedOdds, &p.CombinedDecimal,
		&p.ImpliedProbability, &p.ExpectedValue, &p.ConfidenceScore,
		&p.ConfidenceRating, &p.Score, &p.CorrelationPenalty,
		&p.DiversificationBonus, &p.IsSameGame, &p.HasProps,
		&p.RecommendedStakePct, &p.Status, &p.GeneratedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("parlay not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query parlay: %w", err)
	}

	legs, err := s.getParlayLegs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Legs = legs

	return &p, nil
}

func (s *Store) getParlayLegs(ctx context.Context, parlayID int64) ([]models.Leg, error) {
	query := `
		SELECT game_ref, bet_type, selection, odds, implied_probability,
		       true_probability, expected_value, confidence_score,
		       player_name, prop_type, prop_line, reasoning, result
		FROM parlay_legs
		WHERE parlay_id = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, parlayID)
	if err != nil {
		return nil, fmt.Errorf("query parlay legs: %w", err)
	}
	defer rows.Close()

	var legs []models.Leg
	for rows.Next() {
		var leg models.Leg
		err := rows.Scan(
			&leg.GameRef, &leg.BetType, &leg.Selection, &leg.Odds,
			&leg.ImpliedProbability, &leg.TrueProbability, &leg.ExpectedValue,
			&leg.ConfidenceScore, &leg.PlayerName, &leg.PropType,
			&leg.PropLine, &leg.Reasoning, &leg.Result,
		)
		if err != nil {
			return nil, fmt.Errorf("scan parlay leg: %w", err)
		}
		legs = append(legs, leg)
	}

	return legs, rows.Err()
}

// UpdateParlayStatus moves a parlay through its lifecycle.
func (s *Store) UpdateParlayStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE parlays SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update parlay status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("parlay not found: %d", id)
	}
	return nil
}
