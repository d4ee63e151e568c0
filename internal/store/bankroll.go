package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Justraymond99/headcrackbot/pkg/models"
)

// GetBankroll returns the current bankroll, seeding it with the default
// balance when no row exists yet.
func (s *Store) GetBankroll(ctx context.Context, defaultBalance float64) (*models.Bankroll, error) {
	var b models.Bankroll
	err := s.db.QueryRowContext(ctx,
		`SELECT id, balance, updated_at FROM bankroll ORDER BY id DESC LIMIT 1`,
	).Scan(&b.ID, &b.Balance, &b.UpdatedAt)

	if err == sql.ErrNoRows {
		err = s.db.QueryRowContext(ctx,
			`INSERT INTO bankroll (balance) VALUES ($1) RETURNING id, balance, updated_at`,
			defaultBalance,
		).Scan(&b.ID, &b.Balance, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("seed bankroll: %w", err)
		}
		return &b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query bankroll: %w", err)
	}

	return &b, nil
}

// SetBankroll replaces the tracked balance.
func (s *Store) SetBankroll(ctx context.Context, balance float64) (*models.Bankroll, error) {
	if balance < 0 {
		return nil, fmt.Errorf("balance must be non-negative, got %.2f", balance)
	}

	var b models.Bankroll
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO bankroll (balance) VALUES ($1) RETURNING id, balance, updated_at`,
		balance,
	).Scan(&b.ID, &b.Balance, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("set bankroll: %w", err)
	}

	return &b, nil
}
