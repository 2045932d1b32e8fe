package matching

import (
	"github.com/sahay-labs/sahay/internal/models"
)

// Result is a scored pairing selected by FindBest, oriented so that
// Mentor is always the offering side.
type Result struct {
	Mentor  *models.Profile
	Mentee  *models.Profile
	Score   int
	Reasons []string
}

// MatchID builds the deterministic session identifier for an unordered
// pair of participants: the two ids sorted lexicographically, joined with
// "-". Both sides of a pairing compute the same id.
func MatchID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}

// FindBest scans the candidate pool, scores every eligible candidate
// against me, and returns the highest-scoring pairing at or above
// threshold, or nil if none clears it. Ties go to the first candidate
// seen. Pure: no side effects; the caller persists the result.
//
// Candidates are normally pre-filtered by the store (opposite role,
// status waiting, same time slot); the role and self checks here are
// repeated so the function stands on its own.
func FindBest(me *models.Profile, candidates []*models.Profile, w Weights, threshold int) *Result {
	var best *Result

	for _, cand := range candidates {
		if cand.UserID == me.UserID {
			continue
		}
		if cand.Role == me.Role {
			continue
		}
		if cand.Status != models.StatusWaiting {
			continue
		}

		mentor, mentee := Orient(me, cand)
		score, reasons := Score(mentor, mentee, w)
		if best == nil || score > best.Score {
			best = &Result{Mentor: mentor, Mentee: mentee, Score: score, Reasons: reasons}
		}
	}

	if best == nil || best.Score < threshold {
		return nil
	}
	return best
}

// Orient decides which side of a pairing is the mentor. The Teacher role
// always mentors; between two students the one with strong subjects
// mentors the one seeking help.
func Orient(a, b *models.Profile) (mentor, mentee *models.Profile) {
	if a.Role == models.RoleTeacher {
		return a, b
	}
	if b.Role == models.RoleTeacher {
		return b, a
	}
	if len(a.StrongSubjects) > 0 && len(b.WeakSubjects) > 0 {
		return a, b
	}
	return b, a
}
