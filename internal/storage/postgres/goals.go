package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage"
)

const goalColumns = "id, title, description, category, deadline, created_at, completed, completed_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var category string
	var deadline, createdAt time.Time
	var completedAt sql.NullTime

	if err := row.Scan(&g.ID, &g.Title, &g.Description, &category, &deadline, &createdAt, &g.Completed, &completedAt); err != nil {
		return models.Goal{}, err
	}

	g.Category = models.Category(category)
	g.Deadline = calendar.FromTime(deadline, time.UTC)
	g.CreatedAt = createdAt.UTC()
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		g.CompletedAt = &t
	}
	return g, nil
}

func completedAtArg(g models.Goal) sql.NullTime {
	if g.CompletedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: g.CompletedAt.UTC(), Valid: true}
}

func (s *Store) AddGoal(goal models.Goal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO goals (`+goalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		goal.ID, goal.Title, goal.Description, string(goal.Category), goal.Deadline.String(),
		goal.CreatedAt.UTC(), goal.Completed, completedAtArg(goal))
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
	stmt, err := tx.Prepare("INSERT INTO goal_progress (goal_id, day) VALUES ($1, $2) ON CONFLICT DO NOTHING")
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
	g, err := scanGoal(s.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Goal{}, fmt.Errorf("goal %s: %w", id, storage.ErrNotFound)
		}
		return models.Goal{}, err
	}

	progress, err := s.progressByGoal("WHERE goal_id = $1", id)
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

func (s *Store) progressByGoal(where string, args ...any) (map[string][]calendar.Date, error) {
	rows, err := s.db.Query("SELECT goal_id, day FROM goal_progress "+where+" ORDER BY goal_id, day", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]calendar.Date)
	for rows.Next() {
		var goalID string
		var day time.Time
		if err := rows.Scan(&goalID, &day); err != nil {
			return nil, err
		}
		out[goalID] = append(out[goalID], calendar.FromTime(day, time.UTC))
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
		SET title = $1, description = $2, category = $3, deadline = $4, completed = $5, completed_at = $6
		WHERE id = $7`,
		goal.Title, goal.Description, string(goal.Category), goal.Deadline.String(),
		goal.Completed, completedAtArg(goal), goal.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("goal %s: %w", goal.ID, storage.ErrNotFound)
	}

	if _, err := tx.Exec("DELETE FROM goal_progress WHERE goal_id = $1", goal.ID); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	if err := insertProgress(tx, goal.ID, goal.Progress); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteGoal(id string) error {
	res, err := s.db.Exec("DELETE FROM goals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("goal %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) AddProgress(goalID string, day calendar.Date) error {
	if _, err := s.GetGoal(goalID); err != nil {
		return err
	}
	_, err := s.db.Exec("INSERT INTO goal_progress (goal_id, day) VALUES ($1, $2) ON CONFLICT DO NOTHING", goalID, day.String())
	if err != nil {
		return fmt.Errorf("failed to add progress: %w", err)
	}
	return nil
}

func (s *Store) RemoveProgress(goalID string, day calendar.Date) error {
	_, err := s.db.Exec("DELETE FROM goal_progress WHERE goal_id = $1 AND day = $2", goalID, day.String())
	if err != nil {
		return fmt.Errorf("failed to remove progress: %w", err)
	}
	return nil
}
