// Package store persists games, generated parlays, and bankroll state in
// PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Store wraps the PostgreSQL connection used by all services.
type Store struct {
	db *sql.DB
}

// New opens a PostgreSQL connection with pool settings tuned for a small
// fleet of services sharing one database.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if it does not exist. Idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id SERIAL PRIMARY KEY,
			game_ref TEXT UNIQUE NOT NULL,
			sport TEXT NOT NULL,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			game_date TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'scheduled',
			home_moneyline INTEGER,
			away_moneyline INTEGER,
			spread DOUBLE PRECISION,
			spread_home_odds INTEGER,
			spread_away_odds INTEGER,
			total DOUBLE PRECISION,
			over_odds INTEGER,
			under_odds INTEGER,
			model_prob DOUBLE PRECISION,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS player_props (
			id SERIAL PRIMARY KEY,
			game_ref TEXT NOT NULL REFERENCES games(game_ref) ON DELETE CASCADE,
			player_name TEXT NOT NULL,
			prop_type TEXT NOT NULL,
			line DOUBLE PRECISION,
			over_odds INTEGER,
			under_odds INTEGER,
			yes_odds INTEGER,
			market_key TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			UNIQUE (game_ref, player_name, prop_type, market_key)
		)`,
		`CREATE TABLE IF NOT EXISTS parlays (
			id SERIAL PRIMARY KEY,
			sport TEXT NOT NULL,
			num_legs INTEGER NOT NULL,
			combined_odds DOUBLE PRECISION NOT NULL,
			combined_decimal DOUBLE PRECISION NOT NULL,
			implied_probability DOUBLE PRECISION NOT NULL,
			expected_value DOUBLE PRECISION NOT NULL,
			confidence_score DOUBLE PRECISION NOT NULL,
			confidence_rating TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			correlation_penalty DOUBLE PRECISION NOT NULL,
			diversification_bonus DOUBLE PRECISION NOT NULL,
			is_same_game BOOLEAN NOT NULL DEFAULT FALSE,
			has_props BOOLEAN NOT NULL DEFAULT FALSE,
			recommended_stake_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			generated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS parlay_legs (
			id SERIAL PRIMARY KEY,
			parlay_id INTEGER NOT NULL REFERENCES parlays(id) ON DELETE CASCADE,
			game_ref TEXT NOT NULL,
			bet_type TEXT NOT NULL,
			selection TEXT NOT NULL,
			odds INTEGER NOT NULL,
			implied_probability DOUBLE PRECISION NOT NULL,
			true_probability DOUBLE PRECISION NOT NULL,
			expected_value DOUBLE PRECISION NOT NULL,
			confidence_score DOUBLE PRECISION NOT NULL,
			player_name TEXT NOT NULL DEFAULT '',
			prop_type TEXT NOT NULL DEFAULT '',
			prop_line DOUBLE PRECISION,
			reasoning TEXT NOT NULL DEFAULT '',
			result TEXT NOT NULL DEFAULT 'pending'
		)`,
		`CREATE TABLE IF NOT EXISTS bankroll (
			id SERIAL PRIMARY KEY,
			balance DOUBLE PRECISION NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_sport_date ON games(sport, game_date)`,
		`CREATE INDEX IF NOT EXISTS idx_parlays_sport_score ON parlays(sport, score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_parlay_legs_parlay ON parlay_legs(parlay_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}

	return nil
}
