package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored on a profile. A Teacher offers subjects, a Student
// seeks help in their weak subjects. Students with strong subjects can
// still act as mentors for other students.
const (
	RoleStudent = "Student"
	RoleTeacher = "Teacher"
)

// Profile status values. A waiting profile is on the waitlist and
// eligible for matching; a matched profile is in a live session.
const (
	StatusWaiting = "waiting"
	StatusMatched = "matched"
)

// SenderAI is the sender name recorded on AI-generated hint messages.
const SenderAI = "AI Bot"

// Account is a registered login. Profiles reference accounts; an account
// outlives any number of tutoring sessions.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is one entry on the matchmaking waitlist.
//
// Grade holds the ordinal parsed from the label ("Grade 7" -> 7); 0 means
// the label could not be parsed and the profile simply never earns the
// grade bonus. StrongSubjects doubles as "subjects taught" for the
// Teacher role.
type Profile struct {
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Grade          int       `json:"grade"`
	GradeLabel     string    `json:"grade_label"`
	TimeSlot       string    `json:"time_slot"`
	StrongSubjects []string  `json:"strong_subjects"`
	WeakSubjects   []string  `json:"weak_subjects"`
	Languages      []string  `json:"languages"`
	SpecificTopic  string    `json:"specific_topic"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Match pairs a mentor with a mentee. The ID is the two account UUIDs
// sorted lexicographically and joined with "-", so both participants
// compute the same ID regardless of who confirmed the pairing.
type Match struct {
	ID         string    `json:"match_id"`
	MentorID   uuid.UUID `json:"mentor_id"`
	MenteeID   uuid.UUID `json:"mentee_id"`
	MentorName string    `json:"mentor_name"`
	MenteeName string    `json:"mentee_name"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// Message is a single chat message within a match session. Sender is a
// display name rather than an account reference so that AI hints can be
// recorded under SenderAI. Ordered by ID (bigserial), which is insertion
// order even when two messages land within the same second.
type Message struct {
	ID        int64     `json:"id"`
	MatchID   string    `json:"match_id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	FileURL   string    `json:"file_url,omitempty"`
	FileType  string    `json:"file_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Rating is append-only session feedback, aggregated for the leaderboard.
type Rating struct {
	ID          int64     `json:"id"`
	Mentor      string    `json:"mentor"`
	Mentee      string    `json:"mentee"`
	Rating      int       `json:"rating"`
	SessionDate time.Time `json:"session_date"`
}

// LeaderboardEntry is the read-side aggregation of ratings per mentor.
type LeaderboardEntry struct {
	Mentor    string  `json:"mentor"`
	AvgRating float64 `json:"avg_rating"`
	Sessions  int     `json:"sessions"`
}

// Streak tracks consecutive days of activity for one user. LastActive is
// nil until the first activity is recorded.
type Streak struct {
	UserID     uuid.UUID  `json:"user_id"`
	Streak     int        `json:"streak"`
	LastActive *time.Time `json:"last_active,omitempty"`
}
