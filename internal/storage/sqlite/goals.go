package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage"
)

const goalColumns = "id, title, description, category, deadline, created_at, completed, completed_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var category, deadline, createdAt string
	var completed int
	var completedAt sql.NullString

	if err := row.Scan(&g.ID, &g.Title, &g.Description, &category, &deadline, &createdAt, &completed, &completedAt); err != nil {
		return models.Goal{}, err
	}

	g.Category = models.Category(category)
	g.Completed = completed != 0

	var err error
	if g.Deadline, err = calendar.Parse(deadline); err != nil {
		return models.Goal{}, fmt.Errorf("failed to parse deadline of goal %s: %w", g.ID, err)
	}
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Goal{}, fmt.Errorf("failed to parse created_at of goal %s: %w", g.ID, err)
	}
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return models.Goal{}, fmt.Errorf("failed to parse completed_at of goal %s: %w", g.ID, err)
		}
		g.CompletedAt = &t
	}
	return g, nil
}

func nullTime(g models.Goal) sql.NullString {
	if g.CompletedAt == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*g.CompletedAt), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *Store) AddGoal(goal models.Goal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.Title, goal.Description, string(goal.Category), goal.Deadline.String(),
		formatTime(goal.CreatedAt), boolToInt(goal.Completed), nullTime(goal))
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	if err := insertProgress(tx, goal.ID, goal.Progress); err != nil {
		return err
	}

	return tx.Commit()
}

func insertProgress(tx *sql.Tx, goalID string, days []calendar.Date) error {
	if len(days) == 0 {
		return nil
	}
	stmt, err := tx.Prepare("INSERT OR IGNORE INTO goal_progress (goal_id, day) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range days {
		if _, err := stmt.Exec(goalID, d.String()); err != nil {
			return fmt.Errorf("failed to insert progress %s: %w", d, err)
		}
	}
	return nil
}

func (s *Store) GetGoal(id string) (models.Goal, error) {
	row := s.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	g, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Goal{}, fmt.Errorf("goal %s: %w", id, storage.ErrNotFound)
		}
		return models.Goal{}, err
	}

	progress, err := s.progressByGoal("WHERE goal_id = ?", id)
	if err != nil {
		return models.Goal{}, err
	}
	g.Progress = progress[g.ID]
	return g, nil
}

func (s *Store) GetAllGoals() ([]models.Goal, error) {
	rows, err := s.db.Query("SELECT " + goalColumns + " FROM goals ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	progress, err := s.progressByGoal("")
	if err != nil {
		return nil, err
	}
	for i := range goals {
		goals[i].Progress = progress[goals[i].ID]
	}
	return goals, nil
}

// progressByGoal loads progress rows grouped by goal ID in ascending day
// order. Rows whose day cannot be parsed are skipped with a warning.
func (s *Store) progressByGoal(where string, args ...any) (map[string][]calendar.Date, error) {
	rows, err := s.db.Query("SELECT goal_id, day FROM goal_progress "+where+" ORDER BY goal_id, day", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]calendar.Date)
	for rows.Next() {
		var goalID, day string
		if err := rows.Scan(&goalID, &day); err != nil {
			return nil, err
		}
		d, err := calendar.Parse(day)
		if err != nil {
			logger.Warn("Skipping malformed progress row", logger.KeyGoal, goalID, logger.KeyDay, day, logger.KeyError, err)
			continue
		}
		out[goalID] = append(out[goalID], d)
	}
	return out, rows.Err()
}

func (s *Store) UpdateGoal(goal models.Goal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE goals
		SET title = ?, description = ?, category = ?, deadline = ?, completed = ?, completed_at = ?
		WHERE id = ?`,
		goal.Title, goal.Description, string(goal.Category), goal.Deadline.String(),
		boolToInt(goal.Completed), nullTime(goal), goal.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("goal %s: %w", goal.ID, storage.ErrNotFound)
	}

	if _, err := tx.Exec("DELETE FROM goal_progress WHERE goal_id = ?", goal.ID); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	if err := insertProgress(tx, goal.ID, goal.Progress); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) DeleteGoal(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Progress cascades, but delete it explicitly for databases opened without
	// foreign key enforcement.
	if _, err := tx.Exec("DELETE FROM goal_progress WHERE goal_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	res, err := tx.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("goal %s: %w", id, storage.ErrNotFound)
	}

	return tx.Commit()
}

func (s *Store) AddProgress(goalID string, day calendar.Date) error {
	if _, err := s.GetGoal(goalID); err != nil {
		return err
	}
	_, err := s.db.Exec("INSERT OR IGNORE INTO goal_progress (goal_id, day) VALUES (?, ?)", goalID, day.String())
	if err != nil {
		return fmt.Errorf("failed to add progress: %w", err)
	}
	return nil
}

func (s *Store) RemoveProgress(goalID string, day calendar.Date) error {
	_, err := s.db.Exec("DELETE FROM goal_progress WHERE goal_id = ? AND day = ?", goalID, day.String())
	if err != nil {
		return fmt.Errorf("failed to remove progress: %w", err)
	}
	return nil
}
