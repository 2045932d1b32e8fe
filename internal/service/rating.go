package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sahay-labs/sahay/internal/models"
	"github.com/sahay-labs/sahay/internal/repository"
	"go.uber.org/zap"
)

const (
	leaderboardCacheKey = "sahay:leaderboard"
	leaderboardCacheTTL = 60 * time.Second
)

// RatingService records session feedback and serves the mentor
// leaderboard. The leaderboard read is cache-aside over Redis; any cache
// failure degrades to a direct Postgres aggregation.
type RatingService struct {
	ratings repository.RatingRepository
	cache   *redis.Client
	logger  *zap.Logger
}

func NewRatingService(ratings repository.RatingRepository, cache *redis.Client, logger *zap.Logger) *RatingService {
	return &RatingService{
		ratings: ratings,
		cache:   cache,
		logger:  logger,
	}
}

// Submit appends one rating. Ratings are never updated, only appended.
func (s *RatingService) Submit(ctx context.Context, mentor, mentee string, rating int) (*models.Rating, error) {
	if mentor == "" || mentee == "" {
		return nil, fmt.Errorf("%w: mentor and mentee are required", ErrInvalid)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	}

	created, err := s.ratings.Create(ctx, &models.Rating{
		Mentor:      mentor,
		Mentee:      mentee,
		Rating:      rating,
		SessionDate: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	// Drop the cached leaderboard so the new rating shows up on the
	// next read. Failure only means up to one TTL of staleness.
	if s.cache != nil {
		if err := s.cache.Del(ctx, leaderboardCacheKey).Err(); err != nil {
			s.logger.Warn("leaderboard cache invalidation failed", zap.Error(err))
		}
	}

	return created, nil
}

// Leaderboard returns mentors ordered by average rating.
func (s *RatingService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, leaderboardCacheKey).Bytes()
		if err == nil {
			var entries []models.LeaderboardEntry
			if jsonErr := json.Unmarshal(cached, &entries); jsonErr == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("leaderboard cache read failed", zap.Error(err))
		}
	}

	entries, err := s.ratings.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				s.logger.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}
