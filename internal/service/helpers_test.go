package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sahay-labs/sahay/internal/models"
	"github.com/sahay-labs/sahay/internal/repository"
)

// In-memory repository fakes. They mirror the documented contracts of
// the postgres stores: nil, nil for not-found, ErrDuplicateMatch on a
// match_id collision, empty slices instead of nil lists.

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (f *fakeProfileRepo) Upsert(_ context.Context, p *models.Profile) (*models.Profile, error) {
	cp := *p
	cp.Status = models.StatusWaiting
	cp.CreatedAt = time.Now()
	f.profiles[cp.UserID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) ListCandidates(_ context.Context, role, timeSlot string, exclude uuid.UUID) ([]*models.Profile, error) {
	out := make([]*models.Profile, 0)
	for _, p := range f.profiles {
		if p.UserID == exclude || p.Role != role || p.TimeSlot != timeSlot || p.Status != models.StatusWaiting {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProfileRepo) SetStatus(_ context.Context, userID uuid.UUID, status string) error {
	if p, ok := f.profiles[userID]; ok {
		p.Status = status
	}
	return nil
}

func (f *fakeProfileRepo) DeleteStale(_ context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for id, p := range f.profiles {
		if p.Status == models.StatusWaiting && p.CreatedAt.Before(cutoff) {
			delete(f.profiles, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, userID uuid.UUID) error {
	delete(f.profiles, userID)
	return nil
}

func (f *fakeProfileRepo) CountByRole(_ context.Context, role string) (int, error) {
	n := 0
	for _, p := range f.profiles {
		if p.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeProfileRepo) CountWaiting(_ context.Context) (int, error) {
	n := 0
	for _, p := range f.profiles {
		if p.Status == models.StatusWaiting {
			n++
		}
	}
	return n, nil
}

func (f *fakeProfileRepo) ListAll(_ context.Context) ([]*models.Profile, error) {
	out := make([]*models.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeMatchRepo struct {
	matches map[string]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string]*models.Match)}
}

func (f *fakeMatchRepo) Create(_ context.Context, m *models.Match) (*models.Match, error) {
	if _, ok := f.matches[m.ID]; ok {
		return nil, repository.ErrDuplicateMatch
	}
	cp := *m
	cp.CreatedAt = time.Now()
	f.matches[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, matchID string) (*models.Match, error) {
	m, ok := f.matches[matchID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

type fakeMessageRepo struct {
	messages []models.Message
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (f *fakeMessageRepo) Create(_ context.Context, m *models.Message) (*models.Message, error) {
	cp := *m
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.nextID++
	f.messages = append(f.messages, cp)
	out := cp
	return &out, nil
}

func (f *fakeMessageRepo) ListByMatch(_ context.Context, matchID string) ([]models.Message, error) {
	out := make([]models.Message, 0)
	for _, m := range f.messages {
		if m.MatchID == matchID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) DeleteByMatch(_ context.Context, matchID string) error {
	kept := f.messages[:0]
	for _, m := range f.messages {
		if m.MatchID != matchID {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

type fakeRatingRepo struct {
	ratings []models.Rating
	nextID  int64
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{nextID: 1}
}

func (f *fakeRatingRepo) Create(_ context.Context, r *models.Rating) (*models.Rating, error) {
	cp := *r
	cp.ID = f.nextID
	f.nextID++
	f.ratings = append(f.ratings, cp)
	out := cp
	return &out, nil
}

func (f *fakeRatingRepo) Leaderboard(_ context.Context) ([]models.LeaderboardEntry, error) {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range f.ratings {
		sums[r.Mentor] += r.Rating
		counts[r.Mentor]++
	}
	out := make([]models.LeaderboardEntry, 0, len(sums))
	for mentor, sum := range sums {
		out = append(out, models.LeaderboardEntry{
			Mentor:    mentor,
			AvgRating: float64(sum) / float64(counts[mentor]),
			Sessions:  counts[mentor],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgRating != out[j].AvgRating {
			return out[i].AvgRating > out[j].AvgRating
		}
		return out[i].Sessions > out[j].Sessions
	})
	return out, nil
}

type fakeStreakRepo struct {
	streaks map[uuid.UUID]*models.Streak
}

func newFakeStreakRepo() *fakeStreakRepo {
	return &fakeStreakRepo{streaks: make(map[uuid.UUID]*models.Streak)}
}

func (f *fakeStreakRepo) Get(_ context.Context, userID uuid.UUID) (*models.Streak, error) {
	s, ok := f.streaks[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStreakRepo) Upsert(_ context.Context, s *models.Streak) error {
	cp := *s
	f.streaks[cp.UserID] = &cp
	return nil
}

// fakeAI records the prompts it received and replies with a canned line.
type fakeAI struct {
	system    string
	user      string
	maxTokens int
	reply     string
	err       error
}

func (f *fakeAI) Complete(_ context.Context, system, user string, maxTokens int) (string, error) {
	f.system = system
	f.user = user
	f.maxTokens = maxTokens
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
