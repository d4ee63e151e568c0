package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// UpsertGame inserts or refreshes a game row keyed by game_ref, then
// replaces its prop markets.
func (s *Store) UpsertGame(ctx context.Context, game *models.Game) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO games (
			game_ref, sport, home_team, away_team, game_date, status,
			home_moneyline, away_moneyline, spread, spread_home_odds,
			spread_away_odds, total, over_odds, under_odds, model_prob, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		ON CONFLICT (game_ref) DO UPDATE SET
			status = EXCLUDED.status,
			home_moneyline = EXCLUDED.home_moneyline,
			away_moneyline = EXCLUDED.away_moneyline,
			spread = EXCLUDED.spread,
			spread_home_odds = EXCLUDED.spread_home_odds,
			spread_away_odds = EXCLUDED.spread_away_odds,
			total = EXCLUDED.total,
			over_odds = EXCLUDED.over_odds,
			under_odds = EXCLUDED.under_odds,
			model_prob = COALESCE(EXCLUDED.model_prob, games.model_prob),
			updated_at = NOW()
	`

	_, err = tx.ExecContext(ctx, query,
		game.GameRef,
		game.Sport,
		game.HomeTeam,
		game.AwayTeam,
		game.GameDate,
		game.Status,
		game.HomeMoneyline,
		game.AwayMoneyline,
		game.Spread,
		game.SpreadHome,
		game.SpreadAway,
		game.Total,
		game.OverOdds,
		game.UnderOdds,
		game.ModelProb,
	)
	if err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM player_props WHERE game_ref = $1`, game.GameRef); err != nil {
		return fmt.Errorf("clear props: %w", err)
	}

	propQuery := `
		INSERT INTO player_props (
			game_ref, player_name, prop_type, line, over_odds, under_odds,
			yes_odds, market_key, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, prop := range game.Props {
		_, err := tx.ExecContext(ctx, propQuery,
			game.GameRef,
			prop.PlayerName,
			prop.PropType,
			prop.Line,
			prop.OverOdds,
			prop.UnderOdds,
			prop.YesOdds,
			prop.MarketKey,
			prop.Description,
		)
		if err != nil {
			return fmt.Errorf("insert prop: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetUpcomingGames returns scheduled games for a sport within the lookahead
// window, props attached.
func (s *Store) GetUpcomingGames(ctx context.Context, sport string, lookahead time.Duration) ([]models.Game, error) {
	query := `
		SELECT id, game_ref, sport, home_team, away_team, game_date, status,
		       home_moneyline, away_moneyline, spread, spread_home_odds,
		       spread_away_odds, total, over_odds, under_odds, model_prob, updated_at
		FROM games
		WHERE sport = $1
		  AND status = 'scheduled'
		  AND game_date BETWEEN NOW() AND NOW() + $2::interval
		ORDER BY game_date
	`

	interval := fmt.Sprintf("%d seconds", int(lookahead.Seconds()))

	rows, err := s.db.QueryContext(ctx, query, sport, interval)
	if err != nil {
		return nil, fmt.Errorf("query upcoming games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		err := rows.Scan(
			&g.ID, &g.GameRef, &g.Sport, &g.HomeTeam, &g.AwayTeam,
			&g.GameDate, &g.Status, &g.HomeMoneyline, &g.AwayMoneyline,
			&g.Spread, &g.SpreadHome, &g.SpreadAway, &g.Total,
			&g.OverOdds, &g.UnderOdds, &g.ModelProb, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}

	for i := range games {
		props, err := s.getProps(ctx, games[i].GameRef)
		if err != nil {
			return nil, err
		}
		games[i].Props = props
	}

	return games, nil
}

func (s *Store) getProps(ctx context.Context, gameRef string) ([]models.PlayerProp, error) {
	query := `
		SELECT id, game_ref, player_name, prop_type, line, over_odds,
		       under_odds, yes_odds, market_key, description
		FROM player_props
		WHERE game_ref = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, gameRef)
	if err != nil {
		return nil, fmt.Errorf("query props: %w", err)
	}
	defer rows.Close()

	var props []models.PlayerProp
	for rows.Next() {
		var p models.PlayerProp
		err := rows.Scan(
			&p.ID, &p.GameRef, &p.PlayerName, &p.PropType, &p.Line,
			&p.OverOdds, &p.UnderOdds, &p.YesOdds, &p.MarketKey, &p.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scan prop: %w", err)
		}
		props = append(props, p)
	}

	return props, rows.Err()
}

// MarkStaleGames flips scheduled games whose start time has passed to live.
func (s *Store) MarkStaleGames(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET status = 'live', updated_at = NOW()
		 WHERE status = 'scheduled' AND game_date < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("mark stale games: %w", err)
	}
	return res.RowsAffected()
}
