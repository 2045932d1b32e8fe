package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sahay-labs/sahay/internal/models"
)

type RatingStore struct {
	pool *pgxpool.Pool
}

func NewRatingStore(pool *pgxpool.Pool) *RatingStore {
	return &RatingStore{pool: pool}
}

func (s *RatingStore) Create(ctx context.Context, r *models.Rating) (*models.Rating, error) {
	query := `
		INSERT INTO ratings (mentor, mentee, rating, session_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, mentor, mentee, rating, session_date`

	var created models.Rating
	err := s.pool.QueryRow(ctx, query, r.Mentor, r.Mentee, r.Rating, r.SessionDate).Scan(
		&created.ID,
		&created.Mentor,
		&created.Mentee,
		&created.Rating,
		&created.SessionDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert rating: %w", err)
	}
	return &created, nil
}

func (s *RatingStore) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT mentor, AVG(rating)::float8, COUNT(*)
		FROM ratings
		GROUP BY mentor
		ORDER BY AVG(rating) DESC, COUNT(*) DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("aggregate leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0)
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.Mentor, &e.AvgRating, &e.Sessions); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}

	return entries, nil
}
