package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sahay-labs/sahay/internal/matching"
	"github.com/sahay-labs/sahay/internal/models"
	"github.com/sahay-labs/sahay/internal/repository"
	"go.uber.org/zap"
)

// MatchmakingService owns the waitlist lifecycle: registration, the
// find-and-confirm pairing step, lazy expiry of stale profiles, and
// session teardown. It is the only writer of profile status.
type MatchmakingService struct {
	profiles repository.ProfileRepository
	matches  repository.MatchRepository
	messages repository.MessageRepository

	weights   matching.Weights
	threshold int
	timeout   time.Duration

	logger *zap.Logger
	now    func() time.Time
}

func NewMatchmakingService(
	profiles repository.ProfileRepository,
	matches repository.MatchRepository,
	messages repository.MessageRepository,
	weights matching.Weights,
	threshold int,
	timeout time.Duration,
	logger *zap.Logger,
) *MatchmakingService {
	return &MatchmakingService{
		profiles:  profiles,
		matches:   matches,
		messages:  messages,
		weights:   weights,
		threshold: threshold,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
	}
}

// MatchOutcome is what a find-match attempt produced. Matched=false is
// the normal "no match yet, retry later" outcome, not an error.
type MatchOutcome struct {
	Matched bool          `json:"matched"`
	Match   *models.Match `json:"match,omitempty"`
	Partner string        `json:"partner,omitempty"`
	Score   int           `json:"score,omitempty"`
	Reasons []string      `json:"reasons,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Register puts a profile on the waitlist with status waiting. It returns
// advisory warnings (a subject listed as both strong and weak) alongside
// the stored profile; warnings never block registration.
func (s *MatchmakingService) Register(ctx context.Context, p *models.Profile) (*models.Profile, []string, error) {
	if p.Name == "" {
		return nil, nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if p.Role != models.RoleStudent && p.Role != models.RoleTeacher {
		return nil, nil, fmt.Errorf("%w: role must be %s or %s", ErrInvalid, models.RoleStudent, models.RoleTeacher)
	}
	if p.TimeSlot == "" {
		return nil, nil, fmt.Errorf("%w: time slot is required", ErrInvalid)
	}
	if p.Role == models.RoleStudent && len(p.StrongSubjects) == 0 && len(p.WeakSubjects) == 0 {
		return nil, nil, fmt.Errorf("%w: select at least one strong or weak subject", ErrInvalid)
	}
	if p.Role == models.RoleTeacher && len(p.StrongSubjects) == 0 {
		return nil, nil, fmt.Errorf("%w: select at least one subject you teach", ErrInvalid)
	}

	var warnings []string
	for _, weak := range p.WeakSubjects {
		for _, strong := range p.StrongSubjects {
			if weak == strong {
				warnings = append(warnings, fmt.Sprintf("%s is listed as both strong and weak", weak))
			}
		}
	}

	p.Grade = matching.ParseGrade(p.GradeLabel)
	p.Status = models.StatusWaiting

	stored, err := s.profiles.Upsert(ctx, p)
	if err != nil {
		return nil, nil, fmt.Errorf("register profile: %w", err)
	}

	s.logger.Info("profile registered",
		zap.String("user_id", stored.UserID.String()),
		zap.String("role", stored.Role),
		zap.String("time_slot", stored.TimeSlot),
	)
	return stored, warnings, nil
}

// FindMatch runs one synchronous matching attempt for the user: expire
// stale waiters, load the candidate pool, pick the best pairing, confirm
// it. Returns Matched=false when nothing clears the threshold.
func (s *MatchmakingService) FindMatch(ctx context.Context, userID uuid.UUID) (*MatchOutcome, error) {
	// Lazy expiry instead of a background sweep: the waitlist is only
	// ever read here, so cleaning just before reading is enough.
	if err := s.ExpireStale(ctx); err != nil {
		s.logger.Warn("stale profile expiry failed", zap.Error(err))
	}

	me, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load own profile: %w", err)
	}
	if me == nil {
		return nil, fmt.Errorf("%w: no profile registered", ErrNotFound)
	}
	if me.Status != models.StatusWaiting {
		return nil, fmt.Errorf("%w: profile is not on the waitlist", ErrInvalid)
	}

	opposite := models.RoleTeacher
	if me.Role == models.RoleTeacher {
		opposite = models.RoleStudent
	}

	candidates, err := s.profiles.ListCandidates(ctx, opposite, me.TimeSlot, me.UserID)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	best := matching.FindBest(me, candidates, s.weights, s.threshold)
	if best == nil {
		return &MatchOutcome{
			Matched: false,
			Message: "no match yet, check back soon",
		}, nil
	}

	match, err := s.confirmMatch(ctx, best)
	if err != nil {
		return nil, err
	}

	partner := match.MentorName
	if match.MentorID == userID {
		partner = match.MenteeName
	}

	return &MatchOutcome{
		Matched: true,
		Match:   match,
		Partner: partner,
		Score:   best.Score,
		Reasons: best.Reasons,
	}, nil
}

// confirmMatch persists a pairing idempotently. The existence check and
// insert are not one transaction; the race where both sides confirm
// simultaneously resolves via the unique key on match_id, and the loser
// just adopts the winner's row.
func (s *MatchmakingService) confirmMatch(ctx context.Context, r *matching.Result) (*models.Match, error) {
	id := matching.MatchID(r.Mentor.UserID.String(), r.Mentee.UserID.String())

	existing, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check existing match: %w", err)
	}
	if existing == nil {
		created, err := s.matches.Create(ctx, &models.Match{
			ID:         id,
			MentorID:   r.Mentor.UserID,
			MenteeID:   r.Mentee.UserID,
			MentorName: r.Mentor.Name,
			MenteeName: r.Mentee.Name,
			Score:      r.Score,
		})
		switch {
		case errors.Is(err, repository.ErrDuplicateMatch):
			s.logger.Info("match already confirmed by partner", zap.String("match_id", id))
			existing, err = s.matches.GetByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("reload duplicate match: %w", err)
			}
		case err != nil:
			return nil, fmt.Errorf("create match: %w", err)
		default:
			existing = created
		}
	}

	for _, uid := range []uuid.UUID{r.Mentor.UserID, r.Mentee.UserID} {
		if err := s.profiles.SetStatus(ctx, uid, models.StatusMatched); err != nil {
			return nil, fmt.Errorf("mark profile matched: %w", err)
		}
	}

	s.logger.Info("match confirmed",
		zap.String("match_id", existing.ID),
		zap.Int("score", existing.Score),
	)
	return existing, nil
}

// ExpireStale removes waiting profiles older than the session timeout.
func (s *MatchmakingService) ExpireStale(ctx context.Context) error {
	cutoff := s.now().Add(-s.timeout)
	removed, err := s.profiles.DeleteStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("expire stale profiles: %w", err)
	}
	if removed > 0 {
		s.logger.Info("expired stale waiting profiles", zap.Int64("count", removed))
	}
	return nil
}

// EndSession tears down a live session: both participants' profiles and
// the whole message thread are deleted. Either participant may end;
// there is no handshake with the other side, whose next poll simply
// finds an empty thread. Profiles are deleted rather than reset, so both
// users re-register from scratch for their next match.
func (s *MatchmakingService) EndSession(ctx context.Context, matchID string, userID uuid.UUID) error {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if match.MentorID != userID && match.MenteeID != userID {
		return ErrForbidden
	}

	if err := s.messages.DeleteByMatch(ctx, matchID); err != nil {
		return fmt.Errorf("purge session messages: %w", err)
	}
	for _, uid := range []uuid.UUID{match.MentorID, match.MenteeID} {
		if err := s.profiles.Delete(ctx, uid); err != nil {
			return fmt.Errorf("delete participant profile: %w", err)
		}
	}

	s.logger.Info("session ended",
		zap.String("match_id", matchID),
		zap.String("ended_by", userID.String()),
	)
	return nil
}
