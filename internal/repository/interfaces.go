package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahay-labs/sahay/internal/models"
)

// AccountRepository handles login accounts.
type AccountRepository interface {
	// Create inserts an account and returns it with ID and CreatedAt
	// populated. A taken email returns ErrDuplicateEmail.
	Create(ctx context.Context, email, name, passwordHash string) (*models.Account, error)

	// GetByEmail returns nil, nil when no account exists for the email.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByID returns nil, nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)

	// Count returns the total number of registered accounts.
	Count(ctx context.Context) (int, error)
}

// ProfileRepository handles waitlist profiles.
type ProfileRepository interface {
	// Upsert replaces any existing profile for the user and inserts the
	// new one with status waiting. Re-registering restarts the waitlist
	// clock.
	Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error)

	// GetByUserID returns nil, nil when the user has no profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)

	// ListCandidates returns waiting profiles of the given role in the
	// given time slot, excluding the requesting user. Oldest first, so
	// tie-breaks favour whoever has waited longest.
	ListCandidates(ctx context.Context, role, timeSlot string, exclude uuid.UUID) ([]*models.Profile, error)

	// SetStatus flips a profile's status (waiting <-> matched).
	SetStatus(ctx context.Context, userID uuid.UUID, status string) error

	// DeleteStale removes waiting profiles created before the cutoff and
	// returns how many were removed.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)

	// Delete removes a user's profile. No-op if absent.
	Delete(ctx context.Context, userID uuid.UUID) error

	// CountByRole returns how many profiles exist for a role.
	CountByRole(ctx context.Context, role string) (int, error)

	// CountWaiting returns the current waitlist size.
	CountWaiting(ctx context.Context) (int, error)

	// ListAll returns every profile, newest first. Admin read.
	ListAll(ctx context.Context) ([]*models.Profile, error)
}

// MatchRepository handles confirmed pairings.
type MatchRepository interface {
	// Create inserts a match row. An insert for an id that already
	// exists returns ErrDuplicateMatch so callers can treat the
	// check-then-insert race as benign.
	Create(ctx context.Context, m *models.Match) (*models.Match, error)

	// GetByID returns nil, nil when not found.
	GetByID(ctx context.Context, matchID string) (*models.Match, error)
}

// MessageRepository handles chat persistence for a match session.
type MessageRepository interface {
	// Create appends a message and returns it with ID and CreatedAt populated.
	Create(ctx context.Context, m *models.Message) (*models.Message, error)

	// ListByMatch returns all messages for a match, oldest first.
	// Returns empty slice (not nil) so JSON serializes to [] not null.
	ListByMatch(ctx context.Context, matchID string) ([]models.Message, error)

	// DeleteByMatch purges the whole thread when a session ends.
	DeleteByMatch(ctx context.Context, matchID string) error
}

// RatingRepository handles append-only session feedback.
type RatingRepository interface {
	Create(ctx context.Context, r *models.Rating) (*models.Rating, error)

	// Leaderboard aggregates average rating and session count per mentor,
	// best average first.
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// StreakRepository handles daily activity streaks.
type StreakRepository interface {
	// Get returns nil, nil when the user has no streak row yet.
	Get(ctx context.Context, userID uuid.UUID) (*models.Streak, error)

	// Upsert writes the streak counter and last-active date.
	Upsert(ctx context.Context, s *models.Streak) error
}
