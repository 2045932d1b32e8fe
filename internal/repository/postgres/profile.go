package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sahay-labs/sahay/internal/models"
)

type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

const profileColumns = `user_id, name, role, grade, grade_label, time_slot,
	strong_subjects, weak_subjects, languages, specific_topic, status, created_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.UserID,
		&p.Name,
		&p.Role,
		&p.Grade,
		&p.GradeLabel,
		&p.TimeSlot,
		&p.StrongSubjects,
		&p.WeakSubjects,
		&p.Languages,
		&p.SpecificTopic,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert replaces the user's profile row. ON CONFLICT resets every field
// including created_at, so re-registering restarts the waitlist clock.
func (s *ProfileStore) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'waiting', now())
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			grade = EXCLUDED.grade,
			grade_label = EXCLUDED.grade_label,
			time_slot = EXCLUDED.time_slot,
			strong_subjects = EXCLUDED.strong_subjects,
			weak_subjects = EXCLUDED.weak_subjects,
			languages = EXCLUDED.languages,
			specific_topic = EXCLUDED.specific_topic,
			status = 'waiting',
			created_at = now()
		RETURNING ` + profileColumns

	row := s.pool.QueryRow(ctx, query,
		p.UserID, p.Name, p.Role, p.Grade, p.GradeLabel, p.TimeSlot,
		p.StrongSubjects, p.WeakSubjects, p.Languages, p.SpecificTopic,
	)
	created, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return created, nil
}

func (s *ProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// ListCandidates pushes the role / slot / status pre-filter into the
// lookup so the finder only scores plausible candidates. Oldest first:
// on tied scores the longest-waiting candidate wins.
func (s *ProfileStore) ListCandidates(ctx context.Context, role, timeSlot string, exclude uuid.UUID) ([]*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE role = $1 AND time_slot = $2 AND status = 'waiting' AND user_id <> $3
		ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, role, timeSlot, exclude)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]*models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return candidates, nil
}

func (s *ProfileStore) SetStatus(ctx context.Context, userID uuid.UUID, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE profiles SET status = $1 WHERE user_id = $2`, status, userID)
	if err != nil {
		return fmt.Errorf("set profile status: %w", err)
	}
	return nil
}

func (s *ProfileStore) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM profiles WHERE status = 'waiting' AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale profiles: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *ProfileStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE role = $1`, role).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count profiles by role: %w", err)
	}
	return n, nil
}

func (s *ProfileStore) CountWaiting(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE status = 'waiting'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count waiting profiles: %w", err)
	}
	return n, nil
}

func (s *ProfileStore) ListAll(ctx context.Context) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}
