// Package analytics derives streaks, completion percentages and aggregate
// statistics from goal snapshots.
//
// Every function here is pure: inputs are never modified and "now" is always
// passed in, so results are reproducible in tests.
package analytics

import (
	"math"
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
)

const day = 24 * time.Hour

// Streak counts the consecutive days of progress ending today or yesterday.
//
// Only the trailing run is credited: if the latest logged day is older than
// yesterday the streak is broken and Streak returns 0, regardless of any
// earlier runs. Use LongestStreak for the best run anywhere in the history.
func Streak(progress []calendar.Date, today calendar.Date) int {
	sorted := calendar.Sorted(progress)
	if len(sorted) == 0 {
		return 0
	}

	anchor := sorted[len(sorted)-1]
	if anchor != today && anchor != today.AddDays(-1) {
		return 0
	}

	streak := 1
	for i := len(sorted) - 2; i >= 0; i-- {
		if sorted[i] != anchor.AddDays(-1) {
			break
		}
		streak++
		anchor = sorted[i]
	}
	return streak
}

// LongestStreak returns the longest run of consecutive days anywhere in the
// progress history.
func LongestStreak(progress []calendar.Date) int {
	sorted := calendar.Sorted(progress)
	if len(sorted) == 0 {
		return 0
	}

	longest, current := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sub(sorted[i-1]) == 1 {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}

// CompletionPercentage reports how much of the window between createdAt and
// deadline has elapsed at now, in [0, 100]. A completed goal is always 100.
//
// This measures elapsed time toward the deadline, not logged effort: a goal
// with no progress still climbs toward 100 as the deadline approaches.
func CompletionPercentage(createdAt, deadline time.Time, completed bool, now time.Time) float64 {
	if completed {
		return 100
	}

	totalDays := math.Max(1, float64(deadline.Sub(createdAt))/float64(day))
	daysPassed := math.Max(0, float64(now.Sub(createdAt))/float64(day))

	return math.Min(100, daysPassed/totalDays*100)
}

// GoalPercentage is CompletionPercentage for a goal whose deadline is read as
// midnight in loc.
func GoalPercentage(g models.Goal, now time.Time, loc *time.Location) float64 {
	return CompletionPercentage(g.CreatedAt, g.Deadline.Time(loc), g.Completed, now)
}

// Consistency returns the share of days since creation on which progress was
// logged, as a percentage. ok is false when the goal has no elapsed lifetime
// at now.
func Consistency(g models.Goal, now time.Time) (value float64, ok bool) {
	daysActive := float64(now.Sub(g.CreatedAt)) / float64(day)
	if daysActive <= 0 {
		return 0, false
	}
	return float64(len(calendar.Sorted(g.Progress))) / daysActive * 100, true
}

// Stats aggregates progress across a collection of goals.
type Stats struct {
	TotalGoals         int     `json:"total_goals" yaml:"total_goals"`
	CompletedGoals     int     `json:"completed_goals" yaml:"completed_goals"`
	LongestStreak      int     `json:"longest_streak" yaml:"longest_streak"`
	MostConsistentGoal string  `json:"most_consistent_goal" yaml:"most_consistent_goal"`
	MaxConsistency     float64 `json:"max_consistency" yaml:"max_consistency"`
}

// Aggregate computes the insight statistics for goals at now.
//
// LongestStreak scans each goal's entire history. MostConsistentGoal is the
// title of the goal with the strictly highest consistency, so ties keep the
// first goal encountered; it is constants.NotAvailable when no goal has both
// an elapsed lifetime and at least one logged day.
func Aggregate(goals []models.Goal, now time.Time) Stats {
	stats := Stats{
		TotalGoals:         len(goals),
		MostConsistentGoal: constants.NotAvailable,
	}

	for _, g := range goals {
		if g.Completed {
			stats.CompletedGoals++
		}

		if s := LongestStreak(g.Progress); s > stats.LongestStreak {
			stats.LongestStreak = s
		}

		// A goal with no logged days never displaces the N/A sentinel.
		if c, ok := Consistency(g, now); ok && c > stats.MaxConsistency {
			stats.MostConsistentGoal = g.Title
			stats.MaxConsistency = c
		}
	}

	return stats
}

// GoalSummary is what a goal card displays.
type GoalSummary struct {
	Streak        int     `json:"streak" yaml:"streak"`
	LongestStreak int     `json:"longest_streak" yaml:"longest_streak"`
	Percentage    float64 `json:"percentage" yaml:"percentage"`
	LoggedToday   bool    `json:"logged_today" yaml:"logged_today"`
	DaysRemaining int     `json:"days_remaining" yaml:"days_remaining"`
}

// Summarize computes the card values for g at now in loc.
func Summarize(g models.Goal, now time.Time, loc *time.Location) GoalSummary {
	today := calendar.FromTime(now, loc)
	return GoalSummary{
		Streak:        Streak(g.Progress, today),
		LongestStreak: LongestStreak(g.Progress),
		Percentage:    GoalPercentage(g, now, loc),
		LoggedToday:   g.HasProgress(today),
		DaysRemaining: g.Deadline.Sub(today),
	}
}

// History reports, for each of the days ending at end, whether progress was
// logged. The first element is the oldest day.
func History(progress []calendar.Date, end calendar.Date, days int) []bool {
	if days <= 0 {
		return nil
	}
	logged := make(map[calendar.Date]bool, len(progress))
	for _, d := range progress {
		logged[d] = true
	}

	out := make([]bool, days)
	start := end.AddDays(-(days - 1))
	for i := range out {
		out[i] = logged[start.AddDays(i)]
	}
	return out
}
