package validation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
)

// ConflictType represents the type of integrity problem found in stored data
type ConflictType string

const (
	ConflictDuplicateCheckIn    ConflictType = "duplicate_checkin"
	ConflictDuplicateGoalTitle  ConflictType = "duplicate_goal_title"
	ConflictProgressBeforeStart ConflictType = "progress_before_start"
	ConflictFutureProgress      ConflictType = "future_progress"
	ConflictOrphanJournalEntry  ConflictType = "orphan_journal_entry"
	ConflictInvalidRating       ConflictType = "invalid_rating"
	ConflictDeadlineBeforeStart ConflictType = "deadline_before_start"
)

// Conflict represents a detected problem in goals, journal entries or check-ins
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Goal titles or record IDs involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrTitleTooLong   = fmt.Errorf("title must be at most %d characters", constants.MaxGoalTitleLen)
	ErrEmptyContent   = errors.New("journal entry cannot be empty")
	ErrContentTooLong = fmt.Errorf("journal entry must be at most %d characters", constants.MaxJournalContentLen)
)

// ValidateGoal checks a new or edited goal. The deadline may be the creation
// day itself but not earlier, measured in loc.
func ValidateGoal(g models.Goal, loc *time.Location) error {
	title := strings.TrimSpace(g.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > constants.MaxGoalTitleLen {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(g.Description) > constants.MaxGoalDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", constants.MaxGoalDescriptionLen)
	}
	if _, err := models.ParseCategory(string(g.Category)); err != nil {
		return err
	}
	if g.Deadline.IsZero() {
		return errors.New("deadline is required")
	}
	if loc == nil {
		loc = time.Local
	}
	if start := calendar.FromTime(g.CreatedAt, loc); g.Deadline.Before(start) {
		return fmt.Errorf("deadline %s is before the goal's start date %s", g.Deadline, start)
	}
	return nil
}

// ValidateRating checks a single check-in value.
func ValidateRating(name string, v float64) error {
	if math.IsNaN(v) || v < constants.MinRating || v > constants.MaxRating {
		return fmt.Errorf("%s rating must be between %.1f and %.1f, got %v", name, constants.MinRating, constants.MaxRating, v)
	}
	steps := v / constants.RatingStep
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("%s rating must be a multiple of %.1f, got %v", name, constants.RatingStep, v)
	}
	return nil
}

// ValidateCheckIn checks all three ratings of a check-in.
func ValidateCheckIn(c models.CheckIn) error {
	if c.Day.IsZero() {
		return errors.New("check-in day is required")
	}
	for _, r := range []struct {
		name  string
		value float64
	}{
		{"physical", c.Physical},
		{"mental", c.Mental},
		{"spiritual", c.Spiritual},
	} {
		if err := ValidateRating(r.name, r.value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateJournalEntry checks entry content and type.
func ValidateJournalEntry(e models.JournalEntry) error {
	content := strings.TrimSpace(e.Content)
	if content == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > constants.MaxJournalContentLen {
		return ErrContentTooLong
	}
	if _, err := models.ParseJournalType(string(e.Type)); err != nil {
		return err
	}
	return nil
}

// Validator inspects stored data for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Check inspects goals, journal entries and check-ins together. today is the
// current day in the user's zone and is used to flag progress logged in the
// future.
func (v *Validator) Check(goals []models.Goal, entries []models.JournalEntry, checkIns []models.CheckIn, today calendar.Date, loc *time.Location) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if loc == nil {
		loc = time.Local
	}

	v.checkGoals(&result, goals, today, loc)
	v.checkJournal(&result, goals, entries)
	v.checkCheckIns(&result, checkIns)

	return result
}

func (v *Validator) checkGoals(result *ValidationResult, goals []models.Goal, today calendar.Date, loc *time.Location) {
	titles := make(map[string][]string)
	var order []string
	for _, g := range goals {
		key := strings.ToLower(strings.TrimSpace(g.Title))
		if key == "" {
			continue
		}
		if _, seen := titles[key]; !seen {
			order = append(order, key)
		}
		titles[key] = append(titles[key], g.ID)
	}
	for _, key := range order {
		if ids := titles[key]; len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateGoalTitle,
				Description: fmt.Sprintf("Duplicate goal title: %q (IDs: %v)", key, ids),
				Items:       ids,
			})
		}
	}

	for _, g := range goals {
		start := calendar.FromTime(g.CreatedAt, loc)
		if !g.Deadline.IsZero() && g.Deadline.Before(start) {
			result.add(Conflict{
				Type:        ConflictDeadlineBeforeStart,
				Description: fmt.Sprintf("Goal %q has deadline %s before its start %s", g.Title, g.Deadline, start),
				Date:        g.Deadline.String(),
				Items:       []string{g.ID},
			})
		}
		for _, d := range calendar.Sorted(g.Progress) {
			switch {
			case d.Before(start):
				result.add(Conflict{
					Type:        ConflictProgressBeforeStart,
					Description: fmt.Sprintf("Goal %q has progress on %s, before it was created", g.Title, d),
					Date:        d.String(),
					Items:       []string{g.ID},
				})
			case d.After(today):
				result.add(Conflict{
					Type:        ConflictFutureProgress,
					Description: fmt.Sprintf("Goal %q has progress logged in the future (%s)", g.Title, d),
					Date:        d.String(),
					Items:       []string{g.ID},
				})
			}
		}
	}
}

func (v *Validator) checkJournal(result *ValidationResult, goals []models.Goal, entries []models.JournalEntry) {
	known := make(map[string]bool, len(goals))
	for _, g := range goals {
		known[g.ID] = true
	}
	for _, e := range entries {
		if e.GoalID != nil && !known[*e.GoalID] {
			result.add(Conflict{
				Type:        ConflictOrphanJournalEntry,
				Description: fmt.Sprintf("Journal entry %s refers to a deleted goal (%s)", e.ID, *e.GoalID),
				Items:       []string{e.ID},
			})
		}
	}
}

func (v *Validator) checkCheckIns(result *ValidationResult, checkIns []models.CheckIn) {
	byDay := make(map[calendar.Date][]string)
	for _, c := range checkIns {
		byDay[c.Day] = append(byDay[c.Day], c.ID)
		if err := ValidateCheckIn(c); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidRating,
				Description: fmt.Sprintf("Check-in on %s is invalid: %v", c.Day, err),
				Date:        c.Day.String(),
				Items:       []string{c.ID},
			})
		}
	}

	days := make([]calendar.Date, 0, len(byDay))
	for d, ids := range byDay {
		if len(ids) > 1 {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	for _, d := range days {
		ids := byDay[d]
		result.add(Conflict{
			Type:        ConflictDuplicateCheckIn,
			Description: fmt.Sprintf("%d check-ins recorded on %s (IDs: %v)", len(ids), d, ids),
			Date:        d.String(),
			Items:       ids,
		})
	}
}
