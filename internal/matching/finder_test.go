package matching

import (
	"testing"

	"github.com/sahay-labs/sahay/internal/models"
)

func TestMatchIDSymmetric(t *testing.T) {
	a, b := "bbb-222", "aaa-111"

	id1 := MatchID(a, b)
	id2 := MatchID(b, a)

	if id1 != id2 {
		t.Fatalf("MatchID not symmetric: %q vs %q", id1, id2)
	}
	if id1 != "aaa-111-bbb-222" {
		t.Fatalf("MatchID = %q, want lexicographically sorted join", id1)
	}
}

func TestFindBestEmptyPool(t *testing.T) {
	me := menteeProfile()

	if got := FindBest(me, nil, DefaultWeights(), 40); got != nil {
		t.Fatalf("FindBest on empty pool = %+v, want nil", got)
	}
	if got := FindBest(me, []*models.Profile{}, DefaultWeights(), 40); got != nil {
		t.Fatalf("FindBest on empty slice = %+v, want nil", got)
	}
}

func TestFindBestExcludesSelfAndSameRole(t *testing.T) {
	me := menteeProfile()
	peer := menteeProfile() // same role, perfect on paper

	pool := []*models.Profile{me, peer}
	if got := FindBest(me, pool, DefaultWeights(), 1); got != nil {
		t.Fatalf("FindBest matched self or same role: %+v", got)
	}
}

func TestFindBestPicksArgmax(t *testing.T) {
	me := menteeProfile()

	weak := mentorProfile()
	weak.TimeSlot = "4-5 PM" // 50 + 20 grade = 70

	strong := mentorProfile() // 50 + 20 + 20 = 90

	got := FindBest(me, []*models.Profile{weak, strong}, DefaultWeights(), 40)
	if got == nil {
		t.Fatal("FindBest = nil, want a match")
	}
	if got.Mentor.UserID != strong.UserID {
		t.Fatalf("picked mentor %s, want the higher-scoring one", got.Mentor.Name)
	}
	if got.Score != 90 {
		t.Fatalf("score = %d, want 90", got.Score)
	}
}

func TestFindBestThreshold(t *testing.T) {
	me := menteeProfile()
	mentor := mentorProfile()

	if got := FindBest(me, []*models.Profile{mentor}, DefaultWeights(), 91); got != nil {
		t.Fatalf("FindBest = %+v, want nil below threshold", got)
	}
	if got := FindBest(me, []*models.Profile{mentor}, DefaultWeights(), 90); got == nil {
		t.Fatal("FindBest = nil, want a match at exactly the threshold")
	}
}

func TestFindBestTieFirstSeenWins(t *testing.T) {
	me := menteeProfile()
	first := mentorProfile()
	second := mentorProfile()

	got := FindBest(me, []*models.Profile{first, second}, DefaultWeights(), 40)
	if got == nil {
		t.Fatal("FindBest = nil, want a match")
	}
	if got.Mentor.UserID != first.UserID {
		t.Fatal("tie broken against the first candidate seen")
	}
}

func TestFindBestSkipsNonWaiting(t *testing.T) {
	me := menteeProfile()
	mentor := mentorProfile()
	mentor.Status = models.StatusMatched

	if got := FindBest(me, []*models.Profile{mentor}, DefaultWeights(), 40); got != nil {
		t.Fatalf("FindBest = %+v, want nil when the candidate is already matched", got)
	}
}

func TestOrient(t *testing.T) {
	teacher := mentorProfile()
	student := menteeProfile()

	m, s := Orient(student, teacher)
	if m.UserID != teacher.UserID || s.UserID != student.UserID {
		t.Fatal("Orient must put the Teacher on the mentor side")
	}

	helper := menteeProfile()
	helper.Role = models.RoleStudent
	helper.StrongSubjects = []string{"Science"}
	helper.WeakSubjects = nil

	m, s = Orient(helper, student)
	if m.UserID != helper.UserID {
		t.Fatal("Orient must mentor the strong-subject student")
	}
	if s.UserID != student.UserID {
		t.Fatal("Orient mentee mismatch")
	}
}
