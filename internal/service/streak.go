package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sahay-labs/sahay/internal/models"
	"github.com/sahay-labs/sahay/internal/repository"
	"go.uber.org/zap"
)

// streakLevels maps minimum streak length to a level name, ascending.
var streakLevels = []struct {
	Days int
	Name string
}{
	{1, "Beginner"},
	{3, "Consistent Learner"},
	{6, "Study Champ"},
	{11, "Knowledge Warrior"},
	{21, "Legend"},
}

// StreakInfo is the read model for a user's streak.
type StreakInfo struct {
	Streak         int    `json:"streak"`
	Level          string `json:"level"`
	WeeklyProgress int    `json:"weekly_progress"`
}

// StreakService tracks consecutive days of practice activity.
type StreakService struct {
	streaks repository.StreakRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewStreakService(streaks repository.StreakRepository, logger *zap.Logger) *StreakService {
	return &StreakService{
		streaks: streaks,
		logger:  logger,
		now:     time.Now,
	}
}

// Touch records activity for today. The first activity of a day extends
// the streak when yesterday was active, otherwise resets it to 1; a
// second activity on the same day is a no-op. Returns whether the streak
// counter changed.
func (s *StreakService) Touch(ctx context.Context, userID uuid.UUID) (bool, error) {
	today := dateOnly(s.now())

	st, err := s.streaks.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load streak: %w", err)
	}
	if st == nil {
		st = &models.Streak{UserID: userID}
	}

	if st.LastActive != nil && dateOnly(*st.LastActive).Equal(today) {
		return false, nil
	}

	if st.LastActive != nil && today.Sub(dateOnly(*st.LastActive)) == 24*time.Hour {
		st.Streak++
	} else {
		st.Streak = 1
	}
	st.LastActive = &today

	if err := s.streaks.Upsert(ctx, st); err != nil {
		return false, fmt.Errorf("save streak: %w", err)
	}

	s.logger.Debug("streak updated",
		zap.String("user_id", userID.String()),
		zap.Int("streak", st.Streak),
	)
	return true, nil
}

// Get returns the user's streak with its level and weekly progress.
func (s *StreakService) Get(ctx context.Context, userID uuid.UUID) (*StreakInfo, error) {
	st, err := s.streaks.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}

	streak := 0
	if st != nil {
		streak = st.Streak
	}

	return &StreakInfo{
		Streak:         streak,
		Level:          LevelFor(streak),
		WeeklyProgress: weeklyProgress(streak),
	}, nil
}

// LevelFor returns the highest level the streak has reached.
func LevelFor(streak int) string {
	level := streakLevels[0].Name
	for _, l := range streakLevels {
		if streak >= l.Days {
			level = l.Name
		}
	}
	return level
}

// weeklyProgress maps a streak onto a 0..7 day-of-week meter; a streak
// that is a positive multiple of 7 shows a full week.
func weeklyProgress(streak int) int {
	if streak == 0 {
		return 0
	}
	p := streak % 7
	if p == 0 {
		p = 7
	}
	return p
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
