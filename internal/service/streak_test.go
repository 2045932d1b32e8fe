package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newStreakFixture(start time.Time) (*StreakService, *time.Time) {
	now := start
	svc := NewStreakService(newFakeStreakRepo(), zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestTouchFirstActivity(t *testing.T) {
	svc, _ := newStreakFixture(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	user := uuid.New()

	changed, err := svc.Touch(context.Background(), user)
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	if !changed {
		t.Fatal("first activity should start a streak")
	}

	info, err := svc.Get(context.Background(), user)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if info.Streak != 1 || info.Level != "Beginner" {
		t.Fatalf("info = %+v, want streak 1 Beginner", info)
	}
}

func TestTouchSameDayIsNoOp(t *testing.T) {
	svc, now := newStreakFixture(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	user := uuid.New()
	ctx := context.Background()

	if _, err := svc.Touch(ctx, user); err != nil {
		t.Fatalf("touch: %v", err)
	}

	// Later the same day.
	*now = now.Add(8 * time.Hour)
	changed, err := svc.Touch(ctx, user)
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	if changed {
		t.Fatal("second activity on the same day changed the streak")
	}

	info, _ := svc.Get(ctx, user)
	if info.Streak != 1 {
		t.Fatalf("streak = %d, want 1", info.Streak)
	}
}

func TestTouchConsecutiveDaysExtend(t *testing.T) {
	svc, now := newStreakFixture(time.Date(2026, 8, 1, 23, 30, 0, 0, time.UTC))
	user := uuid.New()
	ctx := context.Background()

	for day := 0; day < 3; day++ {
		if _, err := svc.Touch(ctx, user); err != nil {
			t.Fatalf("day %d touch: %v", day, err)
		}
		*now = now.Add(24 * time.Hour)
	}

	info, _ := svc.Get(ctx, user)
	if info.Streak != 3 {
		t.Fatalf("streak = %d, want 3", info.Streak)
	}
	if info.Level != "Consistent Learner" {
		t.Fatalf("level = %q, want Consistent Learner", info.Level)
	}
}

func TestTouchGapResets(t *testing.T) {
	svc, now := newStreakFixture(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	user := uuid.New()
	ctx := context.Background()

	for day := 0; day < 4; day++ {
		if _, err := svc.Touch(ctx, user); err != nil {
			t.Fatalf("touch: %v", err)
		}
		*now = now.Add(24 * time.Hour)
	}

	// Skip a day.
	*now = now.Add(24 * time.Hour)
	if _, err := svc.Touch(ctx, user); err != nil {
		t.Fatalf("touch after gap: %v", err)
	}

	info, _ := svc.Get(ctx, user)
	if info.Streak != 1 {
		t.Fatalf("streak = %d, want reset to 1", info.Streak)
	}
}

func TestGetWithoutActivity(t *testing.T) {
	svc, _ := newStreakFixture(time.Now())

	info, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if info.Streak != 0 || info.WeeklyProgress != 0 {
		t.Fatalf("info = %+v, want zeroes", info)
	}
}

func TestLevelLadder(t *testing.T) {
	cases := map[int]string{
		0:   "Beginner",
		1:   "Beginner",
		2:   "Beginner",
		3:   "Consistent Learner",
		5:   "Consistent Learner",
		6:   "Study Champ",
		11:  "Knowledge Warrior",
		21:  "Legend",
		100: "Legend",
	}
	for streak, want := range cases {
		if got := LevelFor(streak); got != want {
			t.Fatalf("LevelFor(%d) = %q, want %q", streak, got, want)
		}
	}
}

func TestWeeklyProgress(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 6: 6, 7: 7, 8: 1, 14: 7}
	for streak, want := range cases {
		if got := weeklyProgress(streak); got != want {
			t.Fatalf("weeklyProgress(%d) = %d, want %d", streak, got, want)
		}
	}
}
