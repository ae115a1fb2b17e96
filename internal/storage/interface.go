package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	// GetAllGoals returns every goal in creation order, each with its
	// progress sorted ascending.
	GetAllGoals() ([]models.Goal, error)
	// UpdateGoal rewrites the goal row and replaces its progress set.
	UpdateGoal(models.Goal) error
	// DeleteGoal removes the goal and all of its progress.
	DeleteGoal(id string) error
	// AddProgress records progress for day. Adding an existing day is a no-op.
	AddProgress(goalID string, day calendar.Date) error
	RemoveProgress(goalID string, day calendar.Date) error

	// Journal
	AddJournalEntry(models.JournalEntry) error
	// GetJournalEntries returns entries created at or after since, newest
	// first. A nil since returns every entry.
	GetJournalEntries(since *time.Time) ([]models.JournalEntry, error)

	// Check-ins
	AddCheckIn(models.CheckIn) error
	// GetCheckIn returns the earliest check-in recorded for day.
	GetCheckIn(day calendar.Date) (models.CheckIn, error)
	// GetCheckIns returns check-ins with start <= day <= end, oldest first.
	GetCheckIns(start, end calendar.Date) ([]models.CheckIn, error)

	// Conversations
	// AddConversation stores the conversation and its messages together.
	AddConversation(models.Conversation) error
	// GetAllConversations returns conversations oldest first, each with its
	// messages in send order.
	GetAllConversations() ([]models.Conversation, error)

	// Bulk Retrieval for Migration
	GetAllJournalEntries() ([]models.JournalEntry, error)
	GetAllCheckIns() ([]models.CheckIn, error)

	// Utils
	GetConfigPath() string
}
