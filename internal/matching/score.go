package matching

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahay-labs/sahay/internal/models"
)

// Weights is the scoring table for mentor/mentee compatibility.
//
// The subject bonus is granted once per weak subject the mentor covers;
// the remaining bonuses are flat. RequireSubject treats a pairing with no
// weak/strong overlap as worthless (score 0) instead of merely
// unrewarded; RequireLanguage does the same for pairs with no shared
// spoken language.
type Weights struct {
	SubjectBonus int
	GradeBonus   int
	SlotBonus    int
	TopicBonus   int

	RequireSubject  bool
	RequireLanguage bool
}

// DefaultWeights is the canonical weight table: one subject match alone
// (50) clears the default threshold of 40; grade and slot agreement are
// secondary signals.
func DefaultWeights() Weights {
	return Weights{
		SubjectBonus:   50,
		GradeBonus:     20,
		SlotBonus:      20,
		TopicBonus:     10,
		RequireSubject: true,
	}
}

// Score computes the compatibility between a mentor and a mentee.
// It returns a non-negative score and the ordered list of human-readable
// reasons backing it. Reasons are for display only; they never feed back
// into the score.
func Score(mentor, mentee *models.Profile, w Weights) (int, []string) {
	if w.RequireLanguage && !intersects(mentor.Languages, mentee.Languages) {
		return 0, nil
	}

	score := 0
	reasons := make([]string, 0, 4)

	matched := 0
	for _, weak := range mentee.WeakSubjects {
		if contains(mentor.StrongSubjects, weak) {
			score += w.SubjectBonus
			matched++
			reasons = append(reasons, fmt.Sprintf("%s subject match", weak))
		}
	}
	if w.RequireSubject && matched == 0 {
		return 0, nil
	}

	// Grade 0 means the label never parsed; it earns no bonus.
	if mentor.Grade != 0 && mentor.Grade == mentee.Grade {
		score += w.GradeBonus
		reasons = append(reasons, "Same grade")
	}

	if mentor.TimeSlot != "" && mentor.TimeSlot == mentee.TimeSlot {
		score += w.SlotBonus
		reasons = append(reasons, "Same time slot")
	}

	if topicOverlap(mentor.SpecificTopic, mentee.SpecificTopic) {
		score += w.TopicBonus
		reasons = append(reasons, "Similar topic focus")
	}

	return score, reasons
}

// ParseGrade extracts the trailing integer from a grade label such as
// "Grade 7". A label it cannot parse yields 0, never an error: the
// profile just forgoes the grade bonus.
func ParseGrade(label string) int {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// topicOverlap reports whether two free-text topic fields are both set
// and one contains the other, case-insensitively.
func topicOverlap(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}
