package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/momentum/internal/analytics"
	"github.com/julianstephens/momentum/internal/models"
)

const barWidth = 20

// ProgressBar renders pct (0-100) as a fixed-width text bar.
func ProgressBar(pct float64) string {
	filled := int(math.Round(pct / 100 * barWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// FormatDeadline describes the deadline relative to today.
func FormatDeadline(s analytics.GoalSummary) string {
	switch {
	case s.DaysRemaining > 1:
		return fmt.Sprintf("%d days left", s.DaysRemaining)
	case s.DaysRemaining == 1:
		return "due tomorrow"
	case s.DaysRemaining == 0:
		return "due today"
	default:
		return fmt.Sprintf("overdue by %d days", -s.DaysRemaining)
	}
}

// FormatGoalCard renders a goal the way `goal list` shows it.
func FormatGoalCard(g models.Goal, s analytics.GoalSummary, now time.Time) string {
	var b strings.Builder

	status := ""
	switch {
	case g.Completed:
		status = " ✓ completed"
	case s.LoggedToday:
		status = " • logged today"
	}
	fmt.Fprintf(&b, "%s [%s]%s\n", g.Title, g.Category, status)
	fmt.Fprintf(&b, "  ID: %s\n", g.ID)
	fmt.Fprintf(&b, "  %s %3.0f%%\n", ProgressBar(s.Percentage), s.Percentage)

	streak := fmt.Sprintf("%d day streak", s.Streak)
	if s.Streak == 1 {
		streak = "1 day streak"
	}
	fmt.Fprintf(&b, "  🔥 %s (best %d)  ·  %s  ·  started %s\n",
		streak, s.LongestStreak, deadlineText(g, s), humanize.RelTime(g.CreatedAt, now, "ago", "from now"))
	return b.String()
}

func deadlineText(g models.Goal, s analytics.GoalSummary) string {
	if g.Completed && g.CompletedAt != nil {
		return "finished " + g.CompletedAt.Format("Jan 2, 2006")
	}
	return FormatDeadline(s)
}

// FormatHistory renders logged days as a row of marks, oldest first.
func FormatHistory(days []bool) string {
	var b strings.Builder
	for _, logged := range days {
		if logged {
			b.WriteString("■ ")
		} else {
			b.WriteString("□ ")
		}
	}
	return strings.TrimSpace(b.String())
}
