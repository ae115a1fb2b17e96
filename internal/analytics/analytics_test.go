package analytics

import (
	"testing"
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
)

var today = calendar.MustParse("2024-06-15")

func days(offsets ...int) []calendar.Date {
	out := make([]calendar.Date, len(offsets))
	for i, o := range offsets {
		out[i] = today.AddDays(o)
	}
	return out
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name     string
		progress []calendar.Date
		want     int
	}{
		{name: "empty", progress: nil, want: 0},
		{name: "today only", progress: days(0), want: 1},
		{name: "yesterday only", progress: days(-1), want: 1},
		{name: "three consecutive ending today", progress: days(0, -1, -2), want: 3},
		{name: "day before yesterday only", progress: days(-2), want: 0},
		{name: "unsorted input", progress: days(-2, 0, -1), want: 3},
		{name: "gap breaks the trailing run", progress: days(0, -1, -3, -4, -5), want: 2},
		{name: "ending yesterday", progress: days(-1, -2, -3), want: 3},
		{name: "old run with broken tail", progress: days(-10, -9, -8), want: 0},
		{name: "duplicates tolerated", progress: days(0, 0, -1), want: 2},
		{name: "future day does not count", progress: days(1, 0), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.progress, today); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakDoesNotModifyInput(t *testing.T) {
	progress := days(-2, 0, -1)
	before := make([]calendar.Date, len(progress))
	copy(before, progress)

	Streak(progress, today)

	for i := range progress {
		if progress[i] != before[i] {
			t.Fatalf("Streak() reordered its input: %v", progress)
		}
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name     string
		progress []calendar.Date
		want     int
	}{
		{name: "empty", progress: nil, want: 0},
		{name: "single day", progress: days(-30), want: 1},
		{name: "two runs picks longer", progress: days(-20, -19, -10, -9, -8, -7), want: 4},
		{name: "across month boundary", progress: []calendar.Date{
			calendar.MustParse("2024-01-30"),
			calendar.MustParse("2024-01-31"),
			calendar.MustParse("2024-02-01"),
		}, want: 3},
		{name: "duplicates do not inflate", progress: days(-3, -3, -2), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.progress); got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletionPercentage(t *testing.T) {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		deadline  time.Time
		completed bool
		now       time.Time
		want      float64
	}{
		{name: "at creation", createdAt: created, deadline: deadline, now: created, want: 0},
		{name: "halfway", createdAt: created, deadline: deadline, now: created.AddDate(0, 0, 5), want: 50},
		{name: "at deadline", createdAt: created, deadline: deadline, now: deadline, want: 100},
		{name: "past deadline clamps", createdAt: created, deadline: deadline, now: deadline.AddDate(0, 1, 0), want: 100},
		{name: "before creation clamps to zero", createdAt: created, deadline: deadline, now: created.AddDate(0, 0, -3), want: 0},
		{name: "completed overrides", createdAt: created, deadline: deadline, completed: true, now: created, want: 100},
		{name: "zero span uses one day", createdAt: created, deadline: created, now: created.Add(12 * time.Hour), want: 50},
		{name: "deadline before creation uses one day", createdAt: created, deadline: created.AddDate(0, 0, -5), now: created.Add(6 * time.Hour), want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionPercentage(tt.createdAt, tt.deadline, tt.completed, tt.now)
			if got != tt.want {
				t.Errorf("CompletionPercentage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompletionPercentageMonotonicAndBounded(t *testing.T) {
	created := time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC)
	deadline := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	prev := -1.0
	for h := -72; h < 24*90; h += 7 {
		now := created.Add(time.Duration(h) * time.Hour)
		got := CompletionPercentage(created, deadline, false, now)
		if got < 0 || got > 100 {
			t.Fatalf("CompletionPercentage() at %v = %v, out of [0, 100]", now, got)
		}
		if got < prev {
			t.Fatalf("CompletionPercentage() decreased from %v to %v at %v", prev, got, now)
		}
		prev = got

		if done := CompletionPercentage(created, deadline, true, now); done != 100 {
			t.Fatalf("completed goal at %v = %v, want 100", now, done)
		}
	}
}

func goalCreated(title string, daysAgo int, progress []calendar.Date, now time.Time) models.Goal {
	return models.Goal{
		ID:        title,
		Title:     title,
		CreatedAt: now.AddDate(0, 0, -daysAgo),
		Deadline:  calendar.FromTime(now, time.UTC).AddDays(30),
		Progress:  progress,
	}
}

func TestAggregateLongestStreakScansWholeHistory(t *testing.T) {
	now := today.Time(time.UTC).Add(10 * time.Hour)
	// Two separate 3-day runs, the latest ending three days ago.
	progress := days(-12, -11, -10, -5, -4, -3)
	g := goalCreated("Read", 20, progress, now)

	stats := Aggregate([]models.Goal{g}, now)
	if stats.LongestStreak != 3 {
		t.Errorf("Aggregate().LongestStreak = %d, want 3", stats.LongestStreak)
	}
	if s := Streak(g.Progress, today); s != 0 {
		t.Errorf("Streak() = %d, want 0 for broken trailing run", s)
	}
}

func TestAggregateMostConsistentGoal(t *testing.T) {
	now := today.Time(time.UTC).Add(10 * time.Hour)

	t.Run("strictly higher ratio wins", func(t *testing.T) {
		goals := []models.Goal{
			goalCreated("Run", 10, days(-1, -2), now),      // 20%
			goalCreated("Read", 10, days(-1, -2, -3), now), // 30%
		}
		stats := Aggregate(goals, now)
		if stats.MostConsistentGoal != "Read" {
			t.Errorf("MostConsistentGoal = %q, want %q", stats.MostConsistentGoal, "Read")
		}
	})

	t.Run("tie keeps first encountered", func(t *testing.T) {
		goals := []models.Goal{
			goalCreated("Run", 10, days(-1, -2), now),
			goalCreated("Read", 10, days(-4, -5), now),
		}
		stats := Aggregate(goals, now)
		if stats.MostConsistentGoal != "Run" {
			t.Errorf("MostConsistentGoal = %q, want %q", stats.MostConsistentGoal, "Run")
		}
	})

	t.Run("no elapsed lifetime yields sentinel", func(t *testing.T) {
		g := goalCreated("Future", 0, days(0), now)
		g.CreatedAt = now.Add(time.Hour)
		stats := Aggregate([]models.Goal{g}, now)
		if stats.MostConsistentGoal != constants.NotAvailable {
			t.Errorf("MostConsistentGoal = %q, want %q", stats.MostConsistentGoal, constants.NotAvailable)
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		stats := Aggregate(nil, now)
		if stats.TotalGoals != 0 || stats.LongestStreak != 0 || stats.MostConsistentGoal != constants.NotAvailable {
			t.Errorf("Aggregate(nil) = %+v", stats)
		}
	})
}

func TestAggregateCounts(t *testing.T) {
	now := today.Time(time.UTC)
	done := goalCreated("Done", 5, nil, now)
	done.Completed = true
	goals := []models.Goal{done, goalCreated("Open", 5, nil, now)}

	stats := Aggregate(goals, now)
	if stats.TotalGoals != 2 || stats.CompletedGoals != 1 {
		t.Errorf("Aggregate() counts = %d/%d, want 1/2", stats.CompletedGoals, stats.TotalGoals)
	}
}

func TestSummarize(t *testing.T) {
	now := today.Time(time.UTC).Add(9 * time.Hour)
	g := goalCreated("Run", 10, days(0, -1), now)

	s := Summarize(g, now, time.UTC)
	if s.Streak != 2 {
		t.Errorf("Streak = %d, want 2", s.Streak)
	}
	if !s.LoggedToday {
		t.Error("LoggedToday = false, want true")
	}
	if s.DaysRemaining != 30 {
		t.Errorf("DaysRemaining = %d, want 30", s.DaysRemaining)
	}
	if s.Percentage <= 0 || s.Percentage >= 100 {
		t.Errorf("Percentage = %v, want within (0, 100)", s.Percentage)
	}
}

func TestHistory(t *testing.T) {
	got := History(days(0, -2), today, 4)
	want := []bool{false, true, false, true}
	if len(got) != len(want) {
		t.Fatalf("len(History()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("History()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if History(nil, today, 0) != nil {
		t.Error("History() with zero days should be nil")
	}
}
