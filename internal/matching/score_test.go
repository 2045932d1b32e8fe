package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sahay-labs/sahay/internal/models"
)

func mentorProfile() *models.Profile {
	return &models.Profile{
		UserID:         uuid.New(),
		Name:           "Aarav",
		Role:           models.RoleTeacher,
		Grade:          10,
		GradeLabel:     "Grade 10",
		TimeSlot:       "5-6 PM",
		StrongSubjects: []string{"Mathematics"},
		Status:         models.StatusWaiting,
	}
}

func menteeProfile() *models.Profile {
	return &models.Profile{
		UserID:       uuid.New(),
		Name:         "Diya",
		Role:         models.RoleStudent,
		Grade:        10,
		GradeLabel:   "Grade 10",
		TimeSlot:     "5-6 PM",
		WeakSubjects: []string{"Mathematics"},
		Status:       models.StatusWaiting,
	}
}

func TestScoreFullAgreement(t *testing.T) {
	score, reasons := Score(mentorProfile(), menteeProfile(), DefaultWeights())

	if score != 90 {
		t.Fatalf("score = %d, want 90 (50 subject + 20 grade + 20 slot)", score)
	}
	if len(reasons) != 3 {
		t.Fatalf("reasons = %v, want 3 entries", reasons)
	}
	if reasons[0] != "Mathematics subject match" {
		t.Fatalf("reasons[0] = %q", reasons[0])
	}
	if reasons[1] != "Same grade" || reasons[2] != "Same time slot" {
		t.Fatalf("reasons = %v, want grade then slot", reasons)
	}
}

func TestScoreSlotMismatchDropsExactlySlotBonus(t *testing.T) {
	w := DefaultWeights()
	mentee := menteeProfile()

	full, _ := Score(mentorProfile(), mentee, w)

	mentee.TimeSlot = "4-5 PM"
	dropped, _ := Score(mentorProfile(), mentee, w)

	if full-dropped != w.SlotBonus {
		t.Fatalf("slot mismatch dropped %d, want exactly %d", full-dropped, w.SlotBonus)
	}
	if dropped < w.SubjectBonus {
		t.Fatalf("score %d fell below the subject bonus %d", dropped, w.SubjectBonus)
	}
}

func TestScoreNoSubjectOverlapIsZero(t *testing.T) {
	mentee := menteeProfile()
	mentee.WeakSubjects = []string{"English"}

	score, reasons := Score(mentorProfile(), mentee, DefaultWeights())
	if score != 0 {
		t.Fatalf("score = %d, want 0 when the subject gate fails", score)
	}
	if len(reasons) != 0 {
		t.Fatalf("reasons = %v, want none", reasons)
	}
}

func TestScoreSubjectGateOffIsAdditive(t *testing.T) {
	w := DefaultWeights()
	w.RequireSubject = false

	mentee := menteeProfile()
	mentee.WeakSubjects = []string{"English"}

	score, _ := Score(mentorProfile(), mentee, w)
	if score != w.GradeBonus+w.SlotBonus {
		t.Fatalf("score = %d, want %d (grade + slot, no subject)", score, w.GradeBonus+w.SlotBonus)
	}
}

func TestScoreLanguageGate(t *testing.T) {
	w := DefaultWeights()
	w.RequireLanguage = true

	mentor := mentorProfile()
	mentee := menteeProfile()
	mentor.Languages = []string{"English", "Hindi"}
	mentee.Languages = []string{"Tamil"}

	if score, _ := Score(mentor, mentee, w); score != 0 {
		t.Fatalf("score = %d, want 0 with no shared language", score)
	}

	mentee.Languages = []string{"Hindi"}
	if score, _ := Score(mentor, mentee, w); score != 90 {
		t.Fatalf("score = %d, want 90 once a language is shared", score)
	}
}

func TestScoreTopicBonus(t *testing.T) {
	w := DefaultWeights()
	mentor := mentorProfile()
	mentee := menteeProfile()
	mentor.SpecificTopic = "Algebra and trigonometry"
	mentee.SpecificTopic = "algebra"

	score, reasons := Score(mentor, mentee, w)
	if score != 90+w.TopicBonus {
		t.Fatalf("score = %d, want %d with topic bonus", score, 90+w.TopicBonus)
	}
	if reasons[len(reasons)-1] != "Similar topic focus" {
		t.Fatalf("reasons = %v, want topic reason last", reasons)
	}
}

// Adding any single satisfied condition must never decrease the score.
func TestScoreMonotonic(t *testing.T) {
	w := DefaultWeights()
	base := func() (*models.Profile, *models.Profile) {
		mentor := mentorProfile()
		mentee := menteeProfile()
		mentor.Grade = 9
		mentor.TimeSlot = "4-5 PM"
		return mentor, mentee
	}

	mentor, mentee := base()
	before, _ := Score(mentor, mentee, w)

	improvements := []func(mentor, mentee *models.Profile){
		func(m, s *models.Profile) { m.Grade = s.Grade },
		func(m, s *models.Profile) { m.TimeSlot = s.TimeSlot },
		func(m, s *models.Profile) { s.WeakSubjects = append(s.WeakSubjects, "Science"); m.StrongSubjects = append(m.StrongSubjects, "Science") },
		func(m, s *models.Profile) { m.SpecificTopic = "fractions"; s.SpecificTopic = "Fractions" },
	}

	for i, improve := range improvements {
		mentor, mentee := base()
		improve(mentor, mentee)
		after, _ := Score(mentor, mentee, w)
		if after < before {
			t.Fatalf("improvement %d decreased score: %d -> %d", i, before, after)
		}
	}
}

func TestParseGrade(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"Grade 7", 7},
		{"Grade 12", 12},
		{"10", 10},
		{"  Grade 9  ", 9},
		{"Kindergarten", 0},
		{"", 0},
		{"Grade ten", 0},
	}
	for _, tc := range cases {
		if got := ParseGrade(tc.label); got != tc.want {
			t.Fatalf("ParseGrade(%q) = %d, want %d", tc.label, got, tc.want)
		}
	}
}
