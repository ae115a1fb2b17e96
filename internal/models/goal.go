package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
)

var (
	// ErrGoalCompleted is returned when progress is toggled on a completed goal.
	ErrGoalCompleted = errors.New("goal is already completed")
)

// Category groups goals into a fixed set of life areas.
type Category string

const (
	CategoryHealth        Category = "Health"
	CategoryWork          Category = "Work"
	CategoryRelationships Category = "Relationships"
	CategorySpiritual     Category = "Spiritual"
	CategoryFinancial     Category = "Financial"
	CategoryLearning      Category = "Learning"
	CategoryHobby         Category = "Hobby"
)

// Categories lists every goal category in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryWork,
	CategoryRelationships,
	CategorySpiritual,
	CategoryFinancial,
	CategoryLearning,
	CategoryHobby,
}

// ParseCategory matches s against the known categories, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q (valid: %s)", s, CategoryNames())
}

// CategoryNames returns the categories as a comma-separated list.
func CategoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Goal is a user-defined target with a deadline and a record of the days
// progress was logged.
type Goal struct {
	ID          string          `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Category    Category        `json:"category" yaml:"category"`
	Deadline    calendar.Date   `json:"deadline" yaml:"deadline"`
	CreatedAt   time.Time       `json:"created_at" yaml:"created_at"`
	Completed   bool            `json:"completed" yaml:"completed"`
	CompletedAt *time.Time      `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Progress    []calendar.Date `json:"progress" yaml:"progress"` // days with logged progress, no duplicates
}

// HasProgress reports whether progress was logged on day.
func (g *Goal) HasProgress(day calendar.Date) bool {
	return calendar.Contains(g.Progress, day)
}

// ToggleProgress removes day from the goal's progress if present and adds it
// otherwise. It reports whether the day was added.
func (g *Goal) ToggleProgress(day calendar.Date) (bool, error) {
	if g.Completed {
		return false, ErrGoalCompleted
	}
	for i, d := range g.Progress {
		if d == day {
			g.Progress = append(g.Progress[:i], g.Progress[i+1:]...)
			return false, nil
		}
	}
	g.Progress = append(g.Progress, day)
	return true, nil
}

// Complete marks the goal as done. Completion cannot be undone.
func (g *Goal) Complete(at time.Time) error {
	if g.Completed {
		return ErrGoalCompleted
	}
	g.Completed = true
	g.CompletedAt = &at
	return nil
}
