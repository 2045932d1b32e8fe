package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sahay-labs/sahay/internal/models"
	"github.com/sahay-labs/sahay/internal/repository"
)

type MatchStore struct {
	pool *pgxpool.Pool
}

func NewMatchStore(pool *pgxpool.Pool) *MatchStore {
	return &MatchStore{pool: pool}
}

func (s *MatchStore) Create(ctx context.Context, m *models.Match) (*models.Match, error) {
	query := `
		INSERT INTO matches (match_id, mentor_id, mentee_id, mentor_name, mentee_name, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING match_id, mentor_id, mentee_id, mentor_name, mentee_name, score, created_at`

	var created models.Match
	err := s.pool.QueryRow(ctx, query,
		m.ID, m.MentorID, m.MenteeID, m.MentorName, m.MenteeName, m.Score,
	).Scan(
		&created.ID,
		&created.MentorID,
		&created.MenteeID,
		&created.MentorName,
		&created.MenteeName,
		&created.Score,
		&created.CreatedAt,
	)
	if err != nil {
		// A unique violation on match_id means the partner confirmed the
		// same pairing between our existence check and this insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, repository.ErrDuplicateMatch
		}
		return nil, fmt.Errorf("insert match: %w", err)
	}
	return &created, nil
}

func (s *MatchStore) GetByID(ctx context.Context, matchID string) (*models.Match, error) {
	query := `
		SELECT match_id, mentor_id, mentee_id, mentor_name, mentee_name, score, created_at
		FROM matches
		WHERE match_id = $1`

	var m models.Match
	err := s.pool.QueryRow(ctx, query, matchID).Scan(
		&m.ID,
		&m.MentorID,
		&m.MenteeID,
		&m.MentorName,
		&m.MenteeName,
		&m.Score,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get match: %w", err)
	}
	return &m, nil
}
