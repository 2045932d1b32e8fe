package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sahay-labs/sahay/internal/models"
)

type StreakStore struct {
	pool *pgxpool.Pool
}

func NewStreakStore(pool *pgxpool.Pool) *StreakStore {
	return &StreakStore{pool: pool}
}

func (s *StreakStore) Get(ctx context.Context, userID uuid.UUID) (*models.Streak, error) {
	query := `SELECT user_id, streak, last_active FROM streaks WHERE user_id = $1`

	var st models.Streak
	err := s.pool.QueryRow(ctx, query, userID).Scan(&st.UserID, &st.Streak, &st.LastActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get streak: %w", err)
	}
	return &st, nil
}

func (s *StreakStore) Upsert(ctx context.Context, st *models.Streak) error {
	query := `
		INSERT INTO streaks (user_id, streak, last_active)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			streak = EXCLUDED.streak,
			last_active = EXCLUDED.last_active`

	if _, err := s.pool.Exec(ctx, query, st.UserID, st.Streak, st.LastActive); err != nil {
		return fmt.Errorf("upsert streak: %w", err)
	}
	return nil
}
