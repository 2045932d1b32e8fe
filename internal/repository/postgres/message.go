package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sahay-labs/sahay/internal/models"
)

type MessageStore struct {
	pool *pgxpool.Pool
}

func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

func (s *MessageStore) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	query := `
		INSERT INTO messages (match_id, sender, body, file_url, file_type, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, match_id, sender, body, file_url, file_type, created_at`

	var created models.Message
	err := s.pool.QueryRow(ctx, query,
		m.MatchID, m.Sender, m.Body, m.FileURL, m.FileType,
	).Scan(
		&created.ID,
		&created.MatchID,
		&created.Sender,
		&created.Body,
		&created.FileURL,
		&created.FileType,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &created, nil
}

// ListByMatch returns the full thread oldest first. Clients re-fetch on
// every poll; there is no pagination because a session thread is short
// and dies with the session.
//
// ORDER BY id, not created_at: id is bigserial, so it preserves insertion
// order even when two messages land within the same second.
func (s *MessageStore) ListByMatch(ctx context.Context, matchID string) ([]models.Message, error) {
	query := `
		SELECT id, match_id, sender, body, file_url, file_type, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY id ASC`

	rows, err := s.pool.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(
			&m.ID,
			&m.MatchID,
			&m.Sender,
			&m.Body,
			&m.FileURL,
			&m.FileType,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

func (s *MessageStore) DeleteByMatch(ctx context.Context, matchID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM messages WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}
