package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the RewardsRepository port.
// The balance is a single row; AddCoins is atomic.
type PostgresRewardsRepository struct{ DB *sql.DB }

func NewPostgresRewardsRepository(db *sql.DB) *PostgresRewardsRepository {
	return &PostgresRewardsRepository{DB: db}
}

func (s *PostgresRewardsRepository) Balance(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("rewards repository: DB is nil")
	}

	var coins int64
	err := s.DB.QueryRowContext(ctx, `SELECT coins FROM rewards WHERE id = 1;`).Scan(&coins)
	if err != nil {
		return 0, fmt.Errorf("rewards balance: %w", err)
	}
	return coins, nil
}

func (s *PostgresRewardsRepository) AddCoins(ctx context.Context, coins int64) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("rewards repository: DB is nil")
	}

	query := `
	UPDATE rewards
	SET coins = coins + $1
	WHERE id = 1
	RETURNING coins;
	`

	var total int64
	if err := s.DB.QueryRowContext(ctx, query, coins).Scan(&total); err != nil {
		return 0, fmt.Errorf("rewards add coins: %w", err)
	}
	return total, nil
}
