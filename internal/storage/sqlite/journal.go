package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/momentum/internal/models"
)

func (s *Store) AddJournalEntry(entry models.JournalEntry) error {
	var goalID sql.NullString
	if entry.GoalID != nil {
		goalID = sql.NullString{String: *entry.GoalID, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO journal_entries (id, created_at, content, goal_id, type)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, formatTime(entry.CreatedAt), entry.Content, goalID, string(entry.Type))
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

func (s *Store) GetJournalEntries(since *time.Time) ([]models.JournalEntry, error) {
	query := "SELECT id, created_at, content, goal_id, type FROM journal_entries"
	var args []any
	if since != nil {
		query += " WHERE created_at >= ?"
		args = append(args, formatTime(*since))
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var createdAt, entryType string
		var goalID sql.NullString
		if err := rows.Scan(&e.ID, &createdAt, &e.Content, &goalID, &entryType); err != nil {
			return nil, err
		}
		e.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at of journal entry %s: %w", e.ID, err)
		}
		if goalID.Valid {
			id := goalID.String
			e.GoalID = &id
		}
		e.Type = models.JournalType(entryType)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetAllJournalEntries() ([]models.JournalEntry, error) {
	return s.GetJournalEntries(nil)
}
